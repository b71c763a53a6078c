// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/simplewallet/fault"
)

// Action - action enumeration
type Action uint8

// possible action values
const (
	Nothing      Action = iota // this must be the first value
	Deposit      Action = iota
	Withdraw     Action = iota
	Transfer     Action = iota
	maximumValue Action = iota // this must be the last value
	First        Action = Nothing + 1
	Last         Action = maximumValue - 1
)

// action names as they appear in the payload
const (
	depositName  = "deposit"
	withdrawName = "withdraw"
	transferName = "transfer"
)

// internal conversion
func toString(a Action) (string, error) {
	switch a {
	case Nothing:
		return "", nil
	case Deposit:
		return depositName, nil
	case Withdraw:
		return withdrawName, nil
	case Transfer:
		return transferName, nil
	default:
		return "", fault.ErrUnknownAction
	}
}

// convert a payload token to an action
//
// names are case sensitive
func fromString(in string) (Action, error) {
	switch in {
	case depositName:
		return Deposit, nil
	case withdrawName:
		return Withdraw, nil
	case transferName:
		return Transfer, nil
	default:
		return Nothing, fault.NewUnknownAction(in)
	}
}

// convert an action to its payload name
func (action Action) String() string {
	s, err := toString(action)
	if nil != err {
		logger.Panicf("invalid action enumeration: %d", action)
	}
	return s
}

// convert both enum value and name, for debugging
func (action Action) GoString() string {
	return fmt.Sprintf("<Action#%d:%q>", action, action.String())
}

// IsValid - valid action if in range of First to Last
// Nothing is not considered as valid
func (action Action) IsValid() bool {
	return action >= First && action <= Last
}

// NeedsCounterparty - only transfer involves a second account
func (action Action) NeedsCounterparty() bool {
	return Transfer == action
}

// MarshalText - convert action to its name
func (action Action) MarshalText() ([]byte, error) {
	s, err := toString(action)
	if nil != err {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText - convert name to action
func (action *Action) UnmarshalText(s []byte) error {
	a, err := fromString(string(s))
	if nil != err {
		return err
	}
	*action = a
	return nil
}
