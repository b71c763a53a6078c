// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/bitmark-inc/simplewallet/fault"
	"github.com/bitmark-inc/simplewallet/util"
)

// common errors - keep in alphabetic order
var (
	ErrAmountTooLarge        = fault.InvalidError("amount does not fit in 32 bits")
	ErrInvalidBatchName      = fault.InvalidError("batch name must not contain a directory")
	ErrRequiredAmount        = fault.InvalidError("amount is required")
	ErrRequiredDatabase      = fault.InvalidError("database is required")
	ErrRequiredIdentity      = fault.InvalidError("identity is required")
	ErrRequiredInbox         = fault.InvalidError("inbox directory is required")
	ErrRequiredReceiver      = fault.InvalidError("receiver is required")
	ErrRequiredIdentityArgs  = fault.InvalidError("at least one identity is required")
	ErrReceiverIsNotIdentity = fault.InvalidError("receiver is not a valid identity")
)

// identity is required
func checkIdentity(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}
	return name, nil
}

// receiving identity is required
//
// a comma would split the payload into extra tokens
func checkReceiver(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredReceiver
	}
	for _, r := range name {
		if ',' == r {
			return "", ErrReceiverIsNotIdentity
		}
	}
	return name, nil
}

// a non-zero amount that fits a payload
func checkAmount(amount uint64) (uint32, error) {
	if 0 == amount {
		return 0, ErrRequiredAmount
	}
	if amount > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrAmountTooLarge, amount)
	}
	return uint32(amount), nil
}

// inbox must be an existing directory
func checkInbox(directory string) (string, error) {
	if "" == directory {
		return "", ErrRequiredInbox
	}
	directory = os.ExpandEnv(directory)
	info, err := os.Stat(directory)
	if nil != err {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrRequiredInbox, directory)
	}
	return directory, nil
}

// optional batch name, must be usable as a file name in the inbox
func checkBatchName(name string, def string) (string, error) {
	if "" == name {
		return def, nil
	}
	if !util.IsPlainName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidBatchName, name)
	}
	return name, nil
}

// database directory is required
func checkDatabase(database string) (string, error) {
	if "" == database {
		return "", ErrRequiredDatabase
	}
	return os.ExpandEnv(database), nil
}
