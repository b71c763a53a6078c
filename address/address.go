// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - derive state storage keys
//
// an address is the first 6 hex characters of the family name digest
// followed by the first 64 hex characters of the identity digest
//
//   address = hex(sha512(family))[0:6] ++ hex(sha512(identity))[0:64]
package address

import (
	"github.com/bitmark-inc/simplewallet/digest"
)

// lengths in hex characters
const (
	NamespaceLength = 6
	IdentityLength  = 64
	Length          = NamespaceLength + IdentityLength
)

// Namespace - the prefix shared by every address of a family
type Namespace string

// NewNamespace - compute the namespace prefix for a family name
func NewNamespace(familyName string) Namespace {
	return Namespace(digest.HexString(familyName)[:NamespaceLength])
}

// Derive - address of an identity inside this namespace
func (ns Namespace) Derive(identity string) string {
	return string(ns) + digest.HexString(identity)[:IdentityLength]
}

// Contains - check that the address is a well formed member of this namespace
func (ns Namespace) Contains(address string) bool {
	return IsValid(address) && address[:NamespaceLength] == string(ns)
}

// String - the prefix itself
func (ns Namespace) String() string {
	return string(ns)
}

// Derive - address of an identity for a family name
//
// prefer Namespace.Derive where the namespace is already known
func Derive(familyName string, identity string) string {
	return NewNamespace(familyName).Derive(identity)
}

// IsValid - an address is exactly Length lowercase hex characters
func IsValid(address string) bool {
	if Length != len(address) {
		return false
	}
	for _, c := range address {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
