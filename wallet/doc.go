// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - balance state transitions
//
// an Engine is bound to one transaction's view of state and applies a
// single deposit, withdraw or transfer to it
//
// balances are unsigned 32 bit values stored as plain decimal strings
// at the address derived from the account identity:
//
//   deposit   creates the account if absent, then adds the amount
//   withdraw  requires an existing account holding a non-zero balance
//             of at least the amount
//   transfer  requires both accounts to exist and the requester to hold
//             at least the amount; debits the requester then credits
//             the counterparty
//
// any credit that would exceed the 32 bit range is rejected, nothing
// is written for a rejected transaction
package wallet
