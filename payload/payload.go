// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payload - decode the comma separated transaction payload
//
//   action ++ "," ++ amount [ ++ "," ++ counterparty ]
//
// action is one of deposit, withdraw or transfer, amount is an
// unsigned 32 bit decimal and counterparty is the identity of the
// account receiving a transfer
package payload

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/simplewallet/fault"
)

const (
	separator = ","

	minimumTokens = 2
	maximumTokens = 3

	actionIndex       = 0
	amountIndex       = 1
	counterpartyIndex = 2
)

// Payload - a decoded transaction payload
type Payload struct {
	Action       Action `json:"action"`
	Amount       uint32 `json:"amount"`
	Counterparty string `json:"counterparty,omitempty"`
}

// Parse - split and validate a raw payload
//
// checks are made in order: token count, amount, action name, and
// finally the counterparty when the action needs one
func Parse(raw []byte) (*Payload, error) {
	tokens := strings.Split(string(raw), separator)
	n := len(tokens)
	if n < minimumTokens || n > maximumTokens {
		return nil, fault.NewMalformedPayload(n, "")
	}

	amount, err := strconv.ParseUint(tokens[amountIndex], 10, 32)
	if nil != err {
		return nil, fault.NewMalformedPayload(n, "amount: "+strconv.Quote(tokens[amountIndex])+" is not an unsigned 32 bit integer")
	}

	action, err := fromString(tokens[actionIndex])
	if nil != err {
		return nil, err
	}

	p := &Payload{
		Action: action,
		Amount: uint32(amount),
	}

	if maximumTokens == n {
		if "" == tokens[counterpartyIndex] {
			return nil, fault.NewMalformedPayload(n, "counterparty is empty")
		}
		p.Counterparty = tokens[counterpartyIndex]
	}

	if action.NeedsCounterparty() && !p.HasCounterparty() {
		return nil, fault.NewMalformedPayload(n, action.String()+" requires a counterparty")
	}

	return p, nil
}

// HasCounterparty - true if a third token was present
func (p *Payload) HasCounterparty() bool {
	return "" != p.Counterparty
}

// String - pack back into the wire form
func (p *Payload) String() string {
	s := p.Action.String() + separator + strconv.FormatUint(uint64(p.Amount), 10)
	if p.HasCounterparty() {
		s += separator + p.Counterparty
	}
	return s
}

// Bytes - packed payload as bytes
func (p *Payload) Bytes() []byte {
	return []byte(p.String())
}
