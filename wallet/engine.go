// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/simplewallet/address"
	"github.com/bitmark-inc/simplewallet/fault"
	"github.com/bitmark-inc/simplewallet/payload"
)

// Engine - applies one transaction to a state view
type Engine struct {
	namespace address.Namespace
	state     State
	log       *logger.L
}

// New - bind an engine to a state view
func New(namespace address.Namespace, state State, log *logger.L) *Engine {
	return &Engine{
		namespace: namespace,
		state:     state,
		log:       log,
	}
}

// Apply - perform the payload's action on behalf of the requester
//
// returns a *fault.Rejection for an invalid transaction, any other
// error is a failure of the state view
func (e *Engine) Apply(requester string, p *payload.Payload) error {
	if nil == p {
		return fault.NewMalformedPayload(0, "no payload")
	}
	if "" == requester {
		name := ""
		if p.Action.IsValid() {
			name = p.Action.String()
		}
		return fault.NewMissingRequester(name)
	}

	switch p.Action {
	case payload.Deposit:
		if p.HasCounterparty() {
			e.log.Debugf("deposit: ignoring counterparty: %q", p.Counterparty)
		}
		return e.Deposit(requester, p.Amount)

	case payload.Withdraw:
		if p.HasCounterparty() {
			e.log.Debugf("withdraw: ignoring counterparty: %q", p.Counterparty)
		}
		return e.Withdraw(requester, p.Amount)

	case payload.Transfer:
		return e.Transfer(requester, p.Counterparty, p.Amount)

	default:
		return fault.NewUnknownAction(fmt.Sprintf("action#%d", p.Action))
	}
}

// Balance - current balance of an identity
//
// found is false if the account was never created
func (e *Engine) Balance(identity string) (uint32, bool, error) {
	return e.read(e.namespace.Derive(identity))
}

// Deposit - add amount to the requester's balance, creating the account if necessary
func (e *Engine) Deposit(requester string, amount uint32) error {
	walletAddress := e.namespace.Derive(requester)
	e.log.Debugf("deposit: identity: %q  address: %s", requester, walletAddress)

	balance, found, err := e.read(walletAddress)
	if nil != err {
		return err
	}
	if !found {
		e.log.Infof("deposit: first deposit, creating account for: %q", requester)
	}

	if amount > math.MaxUint32-balance {
		return fault.NewBalanceOverflow(payload.Deposit.String(), requester, balance, amount)
	}

	e.log.Infof("deposit: amount: %d  to: %q", amount, requester)
	return e.write(walletAddress, balance+amount)
}

// Withdraw - remove amount from the requester's balance
func (e *Engine) Withdraw(requester string, amount uint32) error {
	action := payload.Withdraw.String()

	walletAddress := e.namespace.Derive(requester)
	e.log.Debugf("withdraw: identity: %q  address: %s", requester, walletAddress)

	balance, found, err := e.read(walletAddress)
	if nil != err {
		return err
	}
	if !found {
		return fault.NewAccountNotFound(action, requester)
	}

	if 0 == balance || balance < amount {
		return fault.NewInsufficientFunds(action, requester, balance, amount)
	}

	e.log.Infof("withdraw: amount: %d  from: %q", amount, requester)
	return e.write(walletAddress, balance-amount)
}

// Transfer - move amount from the requester to the counterparty
//
// the debit is written before the credit, the caller must discard
// the state view if the credit fails
func (e *Engine) Transfer(requester string, counterparty string, amount uint32) error {
	action := payload.Transfer.String()

	fromAddress := e.namespace.Derive(requester)
	toAddress := e.namespace.Derive(counterparty)
	e.log.Debugf("transfer: from: %q  address: %s", requester, fromAddress)
	e.log.Debugf("transfer: to: %q  address: %s", counterparty, toAddress)

	fromBalance, found, err := e.read(fromAddress)
	if nil != err {
		return err
	}
	if !found {
		return fault.NewAccountNotFound(action, requester)
	}

	toBalance, found, err := e.read(toAddress)
	if nil != err {
		return err
	}
	if !found {
		return fault.NewAccountNotFound(action, counterparty)
	}

	if fromBalance < amount {
		return fault.NewInsufficientFunds(action, requester, fromBalance, amount)
	}

	// same account: balance is unchanged
	if fromAddress == toAddress {
		e.log.Infof("transfer: amount: %d  from: %q to itself", amount, requester)
		return nil
	}

	if amount > math.MaxUint32-toBalance {
		return fault.NewBalanceOverflow(action, counterparty, toBalance, amount)
	}

	e.log.Infof("transfer: debiting: %d  from: %q", amount, requester)
	err = e.write(fromAddress, fromBalance-amount)
	if nil != err {
		return err
	}

	e.log.Infof("transfer: crediting: %d  to: %q", amount, counterparty)
	return e.write(toAddress, toBalance+amount)
}

// read and decode a balance
func (e *Engine) read(walletAddress string) (uint32, bool, error) {
	value, found, err := e.state.Get(walletAddress)
	if nil != err {
		e.log.Errorf("get: address: %s  error: %s", walletAddress, err)
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}

	balance, err := strconv.ParseUint(value, 10, 32)
	if nil != err {
		e.log.Errorf("get: address: %s  value: %q  error: %s", walletAddress, value, err)
		return 0, false, fmt.Errorf("%w: address: %s  value: %q", fault.ErrInvalidBalanceRecord, walletAddress, value)
	}
	return uint32(balance), true, nil
}

// encode and store a balance
func (e *Engine) write(walletAddress string, balance uint32) error {
	err := e.state.Set(walletAddress, strconv.FormatUint(uint64(balance), 10))
	if nil != err {
		e.log.Errorf("set: address: %s  error: %s", walletAddress, err)
	}
	return err
}
