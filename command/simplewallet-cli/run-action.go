// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/simplewallet/address"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/inbox"
	"github.com/bitmark-inc/simplewallet/payload"
)

type queued struct {
	Batch   string `json:"batch"`
	Signer  string `json:"signer"`
	Address string `json:"address"`
	Payload string `json:"payload"`
}

func runDeposit(c *cli.Context) error {
	return queueAction(c, payload.Deposit, "")
}

func runWithdraw(c *cli.Context) error {
	return queueAction(c, payload.Withdraw, "")
}

func runTransfer(c *cli.Context) error {
	receiver, err := checkReceiver(c.String("receiver"))
	if nil != err {
		return err
	}
	return queueAction(c, payload.Transfer, receiver)
}

// build a single transaction batch and drop it into the inbox
func queueAction(c *cli.Context, action payload.Action, counterparty string) error {

	m := c.App.Metadata["config"].(*metadata)

	identity, err := checkIdentity(m.identity)
	if nil != err {
		return err
	}

	directory, err := checkInbox(m.inbox)
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	name, err := checkBatchName(c.String("batch"), defaultBatchName(action, time.Now()))
	if nil != err {
		return err
	}

	p := &payload.Payload{
		Action:       action,
		Amount:       amount,
		Counterparty: counterparty,
	}

	// the daemon must decode exactly what was built here
	if _, err := payload.Parse(p.Bytes()); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", identity)
		fmt.Fprintf(m.e, "inbox: %s\n", directory)
		fmt.Fprintf(m.e, "payload: %s\n", p)
	}

	batch := []handler.Transaction{
		{
			Signer:  identity,
			Payload: p.Bytes(),
		},
	}
	fileName, err := inbox.WriteBatch(directory, name, batch)
	if nil != err {
		return err
	}

	return printJson(m.w, queued{
		Batch:   fileName,
		Signer:  identity,
		Address: address.Derive(handler.FamilyName, identity),
		Payload: p.String(),
	})
}

// time ordered so the inbox sees batches in submission order
func defaultBatchName(action payload.Action, now time.Time) string {
	return fmt.Sprintf("%020d-%s", now.UnixNano(), action)
}
