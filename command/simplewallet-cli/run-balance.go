// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/simplewallet/address"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/storage"
	"github.com/bitmark-inc/simplewallet/wallet"
)

const (
	logFileName = "simplewallet-cli.log"
)

type balanceEntry struct {
	Identity string `json:"identity"`
	Address  string `json:"address"`
	Found    bool   `json:"found"`
	Balance  uint32 `json:"balance"`
}

// read balances directly from the state database
//
// the database is opened read only and its lock means the daemon
// must not be running
func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	database, err := checkDatabase(c.String("database"))
	if nil != err {
		return err
	}

	identities, err := identityArguments(c, m)
	if nil != err {
		return err
	}

	level := "critical"
	if m.verbose {
		level = "info"
	}
	logging := logger.Configuration{
		Directory: filepath.Dir(filepath.Clean(database)),
		File:      logFileName,
		Size:      1048576,
		Count:     2,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	}
	if err := logger.Initialise(logging); nil != err {
		return fmt.Errorf("logger: %s", err)
	}
	defer logger.Finalise()

	if err := storage.Initialise(database, storage.ReadOnly); nil != err {
		return err
	}
	defer storage.Finalise()

	session, err := storage.NewSession()
	if nil != err {
		return err
	}
	defer session.Abort()

	namespace := address.NewNamespace(handler.FamilyName)
	engine := wallet.New(namespace, session, logger.New("balance"))

	entries := make([]balanceEntry, len(identities))
	for i, identity := range identities {
		balance, found, err := engine.Balance(identity)
		if nil != err {
			return fmt.Errorf("balance: %q  error: %w", identity, err)
		}
		entries[i] = balanceEntry{
			Identity: identity,
			Address:  namespace.Derive(identity),
			Found:    found,
			Balance:  balance,
		}
	}

	return printJson(m.w, entries)
}
