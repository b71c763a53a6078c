// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/simplewallet/configuration"
	"github.com/bitmark-inc/simplewallet/fault"
)

type inboxType struct {
	Directory string  `gluamapper:"directory"`
	RateLimit float64 `gluamapper:"rate_limit"`
	Burst     int     `gluamapper:"burst"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	PidFile       string            `gluamapper:"pidfile"`
	Inbox         inboxType         `gluamapper:"inbox"`
	Levels        map[string]string `gluamapper:"levels"`
}

// write a configuration file into a fresh directory
func writeFile(t *testing.T, content string) (string, func()) {
	directory, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(directory, "test.conf")
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return fileName, func() {
		os.RemoveAll(directory)
	}
}

func TestParse(t *testing.T) {
	fileName, cleanup := writeFile(t, `
local M = {}
M.data_directory = "."
M.inbox = {
    directory = "in",
    rate_limit = 2.5,
    burst = 10,
}
M.levels = {
    main = "info",
    DEFAULT = "error",
}
return M
`)
	defer cleanup()

	c := &testConfiguration{
		PidFile: "default.pid",
	}
	err := configuration.ParseConfigurationFile(fileName, c)
	assert.Nil(t, err, "parse")

	assert.Equal(t, ".", c.DataDirectory, "data directory")
	assert.Equal(t, "default.pid", c.PidFile, "default overwritten")
	assert.Equal(t, "in", c.Inbox.Directory, "inbox directory")
	assert.Equal(t, 2.5, c.Inbox.RateLimit, "rate limit")
	assert.Equal(t, 10, c.Inbox.Burst, "burst")
	assert.Equal(t, "info", c.Levels["main"], "main level")
	assert.Equal(t, "error", c.Levels["DEFAULT"], "default level")
}

func TestParseArg(t *testing.T) {
	fileName, cleanup := writeFile(t, `
return {
    pidfile = arg[0] .. ".pid",
}
`)
	defer cleanup()

	c := &testConfiguration{}
	err := configuration.ParseConfigurationFile(fileName, c)
	assert.Nil(t, err, "parse")
	assert.Equal(t, fileName+".pid", c.PidFile, "pidfile from arg[0]")
}

func TestParseNotTable(t *testing.T) {
	fileName, cleanup := writeFile(t, `return "simplewallet"`)
	defer cleanup()

	err := configuration.ParseConfigurationFile(fileName, &testConfiguration{})
	assert.True(t, errors.Is(err, fault.ErrInvalidConfiguration), "error: %v", err)
}

func TestParseSyntaxError(t *testing.T) {
	fileName, cleanup := writeFile(t, `return {`)
	defer cleanup()

	err := configuration.ParseConfigurationFile(fileName, &testConfiguration{})
	assert.NotNil(t, err, "syntax error not detected")
}

func TestParseInvalidPointer(t *testing.T) {
	err := configuration.ParseConfigurationFile("unused.conf", testConfiguration{})
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non pointer")

	s := "string"
	err = configuration.ParseConfigurationFile("unused.conf", &s)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "pointer to non struct")
}
