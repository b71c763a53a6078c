// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - serial driver for batches of transactions
//
// each transaction runs against its own session: the session is
// committed when the transaction applies cleanly and aborted when it is
// rejected or the store fails, so a partly applied transfer never
// persists
//
// batches handed to Submit are executed one at a time by the Run loop,
// which is started by the background package
package processor
