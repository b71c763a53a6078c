// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	inbox    string
	identity string
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "simplewallet-cli"
	app.Usage = "queue simplewallet transactions and inspect accounts"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "inbox, d",
			Value:  "",
			Usage:  " daemon inbox `DIRECTORY`",
			EnvVar: "SIMPLEWALLET_INBOX",
		},
		cli.StringFlag{
			Name:   "identity, i",
			Value:  "",
			Usage:  " signer identity `NAME`",
			EnvVar: "SIMPLEWALLET_IDENTITY",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "deposit",
			Usage:     "queue a deposit to the identity's account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				amountFlag(),
				batchFlag(),
			},
			Action: runDeposit,
		},
		{
			Name:      "withdraw",
			Usage:     "queue a withdrawal from the identity's account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				amountFlag(),
				batchFlag(),
			},
			Action: runWithdraw,
		},
		{
			Name:      "transfer",
			Usage:     "queue a transfer from the identity to a receiver",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				amountFlag(),
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving identity `NAME`",
				},
				batchFlag(),
			},
			Action: runTransfer,
		},
		{
			Name:      "balance",
			Usage:     "display account balances from a stopped daemon's database",
			ArgsUsage: "[IDENTITY...]\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "database, f",
					Value: "",
					Usage: "*state database `DIRECTORY`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "address",
			Usage:     "display the state address of identities",
			ArgsUsage: "[IDENTITY...]",
			Action:    runAddress,
		},
		{
			Name:  "version",
			Usage: "display simplewallet-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			inbox:    c.GlobalString("inbox"),
			identity: c.GlobalString("identity"),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	return app
}

func amountFlag() cli.Flag {
	return cli.Uint64Flag{
		Name:  "amount, a",
		Value: 0,
		Usage: "*amount `N` as an unsigned 32 bit integer",
	}
}

func batchFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "batch, b",
		Value: "",
		Usage: " batch file `NAME` without extension [default: time based]",
	}
}
