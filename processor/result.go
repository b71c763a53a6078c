// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

// Status - outcome of one transaction
type Status string

// possible outcomes
const (
	Committed Status = "committed" // state changes persisted
	Rejected  Status = "rejected"  // invalid transaction, no state change
	Failed    Status = "failed"    // store or intake failure, no state change
)

// Result - receipt entry for one transaction of a batch
type Result struct {
	Index     int      `json:"index"`
	Signer    string   `json:"signer"`
	Address   string   `json:"address,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
	Status    Status   `json:"status"`
	Reason    string   `json:"reason,omitempty"`
}
