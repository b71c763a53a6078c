// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inbox - batch intake from a watched directory
//
// a batch is a JSON array of transactions:
//
//   [
//     {"signer": "alice", "payload": "deposit,100"},
//     {"signer": "alice", "payload": "transfer,30,bob"}
//   ]
//
// written into the inbox directory as NAME.batch; it should be written
// under another name and renamed into place so that it is never seen
// half written
//
// once processed a NAME.receipt file holding the results is written to
// the receipts directory and the batch file is removed; a batch that
// cannot be decoded is renamed to NAME.invalid
package inbox
