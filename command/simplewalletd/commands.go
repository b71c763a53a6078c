// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/simplewallet/address"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/storage"
	"github.com/bitmark-inc/simplewallet/wallet"
)

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "address", "a":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing identity argument")
		}
		namespace := address.NewNamespace(handler.FamilyName)
		for _, identity := range arguments {
			fmt.Printf("%s  %s\n", namespace.Derive(identity), identity)
		}

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false

	case "balance", "b", "accounts":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")
		fmt.Printf("  address IDENTITY...        (a)      - display the state address of each identity\n")
		fmt.Printf("\n")
		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")
		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")
		fmt.Printf("  balance IDENTITY...        (b)      - display the balance of each identity\n")
		fmt.Printf("\n")
		fmt.Printf("  accounts                            - display the number of accounts\n")
		fmt.Printf("\n")
		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
//
// the state database is open so these commands can read it
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "balance", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing identity argument")
		}

		session, err := storage.NewSession()
		if nil != err {
			exitwithstatus.Message("session error: %s", err)
		}
		defer session.Abort()

		engine := wallet.New(address.NewNamespace(handler.FamilyName), session, log)
		for _, identity := range arguments {
			balance, found, err := engine.Balance(identity)
			if nil != err {
				exitwithstatus.Message("balance: %q  error: %s", identity, err)
			}
			if !found {
				fmt.Printf("%s: no account\n", identity)
				continue
			}
			fmt.Printf("%s: %d\n", identity, balance)
		}

	case "accounts":
		n, err := storage.Pool.State.Count()
		if nil != err {
			exitwithstatus.Message("count error: %s", err)
		}
		fmt.Printf("accounts: %d\n", n)

	default:
		exitwithstatus.Message("error: no such command: %q", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}
