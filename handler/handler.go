// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - registration of the simplewallet transaction family
//
// the handler carries no business logic: it reports the family
// metadata and binds a fresh engine to each incoming transaction
package handler

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/simplewallet/address"
	"github.com/bitmark-inc/simplewallet/payload"
	"github.com/bitmark-inc/simplewallet/wallet"
)

// family registration data
const (
	FamilyName    = "simplewallet"
	FamilyVersion = "1.0"
)

// Transaction - the parts of an incoming transaction used by the family
type Transaction struct {
	Signer  string
	Payload []byte
}

// Handler - family metadata and applicator factory
type Handler struct {
	namespace address.Namespace
	log       *logger.L
}

// New - create a handler, the namespace prefix is computed once here
func New(log *logger.L) *Handler {
	return &Handler{
		namespace: address.NewNamespace(FamilyName),
		log:       log,
	}
}

// FamilyName - name used to route transactions to this family
func (h *Handler) FamilyName() string {
	return FamilyName
}

// FamilyVersions - supported payload versions
func (h *Handler) FamilyVersions() []string {
	return []string{FamilyVersion}
}

// Namespaces - address prefixes this family may read or write
func (h *Handler) Namespaces() []string {
	return []string{h.namespace.String()}
}

// Namespace - the family's address prefix
func (h *Handler) Namespace() address.Namespace {
	return h.namespace
}

// Addresses - state addresses a transaction may read or write
//
// allows the caller to order or isolate transactions that share
// accounts; an unparsable payload touches only the signer's address
func (h *Handler) Addresses(tx Transaction) []string {
	addresses := []string{h.namespace.Derive(tx.Signer)}

	p, err := payload.Parse(tx.Payload)
	if nil == err && p.Action.NeedsCounterparty() {
		to := h.namespace.Derive(p.Counterparty)
		if to != addresses[0] {
			addresses = append(addresses, to)
		}
	}
	return addresses
}

// NewApplicator - bind a fresh engine to one transaction and its state view
func (h *Handler) NewApplicator(tx Transaction, state wallet.State) *Applicator {
	return &Applicator{
		tx:     tx,
		engine: wallet.New(h.namespace, state, h.log),
		log:    h.log,
	}
}

// Applicator - one transaction bound to one state view
type Applicator struct {
	tx     Transaction
	engine *wallet.Engine
	log    *logger.L
}

// Apply - decode the payload and run it against the state view
//
// returns a *fault.Rejection for an invalid transaction, any other
// error is a failure of the state view
func (a *Applicator) Apply() error {
	p, err := payload.Parse(a.tx.Payload)
	if nil != err {
		a.log.Warnf("signer: %q  payload: %q  rejected: %s", a.tx.Signer, a.tx.Payload, err)
		return err
	}

	a.log.Infof("signer: %q  payload: %s", a.tx.Signer, p)
	return a.engine.Apply(a.tx.Signer, p)
}
