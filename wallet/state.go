// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

// State - transaction scoped key/value view provided by the caller
//
// Get returns found == false for an address that was never written
type State interface {
	Get(address string) (value string, found bool, err error)
	Set(address string, value string) error
}
