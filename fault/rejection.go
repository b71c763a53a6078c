// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Rejection - a transaction that cannot be applied
//
// Kind is always one of the rejection instances above, the remaining
// fields are filled in where they apply to that kind
type Rejection struct {
	Kind     error
	Action   string
	Identity string
	Amount   uint32
	Balance  uint32
	Tokens   int
	Detail   string
}

// NewMalformedPayload - wrong number of tokens or a bad amount
func NewMalformedPayload(tokens int, detail string) *Rejection {
	return &Rejection{
		Kind:   ErrMalformedPayload,
		Tokens: tokens,
		Detail: detail,
	}
}

// NewUnknownAction - verb is not deposit, withdraw or transfer
func NewUnknownAction(action string) *Rejection {
	return &Rejection{
		Kind:   ErrUnknownAction,
		Action: action,
	}
}

// NewMissingRequester - transaction carried no signer identity
func NewMissingRequester(action string) *Rejection {
	return &Rejection{
		Kind:   ErrMissingRequester,
		Action: action,
	}
}

// NewAccountNotFound - the identity has never received a deposit
func NewAccountNotFound(action string, identity string) *Rejection {
	return &Rejection{
		Kind:     ErrAccountNotFound,
		Action:   action,
		Identity: identity,
	}
}

// NewInsufficientFunds - amount exceeds the available balance
func NewInsufficientFunds(action string, identity string, balance uint32, amount uint32) *Rejection {
	return &Rejection{
		Kind:     ErrInsufficientFunds,
		Action:   action,
		Identity: identity,
		Balance:  balance,
		Amount:   amount,
	}
}

// NewBalanceOverflow - crediting amount would exceed the balance range
func NewBalanceOverflow(action string, identity string, balance uint32, amount uint32) *Rejection {
	return &Rejection{
		Kind:     ErrBalanceOverflow,
		Action:   action,
		Identity: identity,
		Balance:  balance,
		Amount:   amount,
	}
}

// accepted payload token counts
const (
	minimumTokens = 2
	maximumTokens = 3
)

// Error - human readable reason
func (r *Rejection) Error() string {
	s := strings.Builder{}

	switch r.Kind {
	case ErrUnknownAction:
		fmt.Fprintf(&s, "%s: %q", r.Kind, r.Action)
	case ErrMalformedPayload:
		s.WriteString(r.Kind.Error())
		if r.Tokens < minimumTokens || r.Tokens > maximumTokens {
			fmt.Fprintf(&s, ": expected %d or %d tokens, got: %d", minimumTokens, maximumTokens, r.Tokens)
		}
	case ErrAccountNotFound:
		fmt.Fprintf(&s, "%s: %s: identity: %q", r.Action, r.Kind, r.Identity)
	case ErrInsufficientFunds, ErrBalanceOverflow:
		fmt.Fprintf(&s, "%s: %s: identity: %q  balance: %d  amount: %d", r.Action, r.Kind, r.Identity, r.Balance, r.Amount)
	default:
		if "" != r.Action {
			s.WriteString(r.Action)
			s.WriteString(": ")
		}
		s.WriteString(r.Kind.Error())
	}

	if "" != r.Detail {
		s.WriteString(": ")
		s.WriteString(r.Detail)
	}
	return s.String()
}

// Unwrap - expose the rejection instance to errors.Is
func (r *Rejection) Unwrap() error {
	return r.Kind
}

// AsRejection - extract a rejection from an error chain
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsRejection - true if the error rejects the transaction rather
// than reporting a failure of the state store
func IsRejection(err error) bool {
	_, ok := AsRejection(err)
	return ok
}
