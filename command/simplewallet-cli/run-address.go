// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/simplewallet/address"
	"github.com/bitmark-inc/simplewallet/handler"
)

type addressEntry struct {
	Identity string `json:"identity"`
	Address  string `json:"address"`
}

// addresses of the arguments, or of the global identity if there are none
func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	identities, err := identityArguments(c, m)
	if nil != err {
		return err
	}

	namespace := address.NewNamespace(handler.FamilyName)
	entries := make([]addressEntry, len(identities))
	for i, identity := range identities {
		entries[i] = addressEntry{
			Identity: identity,
			Address:  namespace.Derive(identity),
		}
	}

	return printJson(m.w, entries)
}

func identityArguments(c *cli.Context, m *metadata) ([]string, error) {
	if c.NArg() > 0 {
		return c.Args(), nil
	}
	if "" == m.identity {
		return nil, ErrRequiredIdentityArgs
	}
	return []string{m.identity}, nil
}
