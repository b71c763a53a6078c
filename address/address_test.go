// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/simplewallet/address"
)

const (
	familyName = "simplewallet"

	expectedNamespace = "7e2664"
	aliceAddress      = "7e2664408b27d3097eea5a46bf2ab6433a7234a33d5e49957b13ec7acc2ca08e1a13c7"
	bobAddress        = "7e26640416a26ba554334286b1954918ecad7ba6c33575b49df915ff3367b5cef7ecd9"
)

func TestNamespace(t *testing.T) {
	ns := address.NewNamespace(familyName)
	assert.Equal(t, expectedNamespace, ns.String(), "wrong namespace")
	assert.Equal(t, address.NamespaceLength, len(ns), "wrong namespace length")
}

func TestDerive(t *testing.T) {
	ns := address.NewNamespace(familyName)

	items := []struct {
		identity string
		expected string
	}{
		{"alice", aliceAddress},
		{"bob", bobAddress},
	}
	for i, item := range items {
		actual := ns.Derive(item.identity)
		assert.Equal(t, item.expected, actual, "%d: wrong address for: %q", i, item.identity)
		assert.Equal(t, actual, address.Derive(familyName, item.identity), "%d: function and method differ", i)
		assert.Equal(t, address.Length, len(actual), "%d: wrong length", i)
		assert.True(t, ns.Contains(actual), "%d: not in namespace", i)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	ns := address.NewNamespace(familyName)
	seen := make(map[string]string)

	for i := 0; i < 200; i += 1 {
		identity := fmt.Sprintf("identity-%03d", i)
		a := ns.Derive(identity)
		assert.Equal(t, a, ns.Derive(identity), "second derivation differs for: %q", identity)
		assert.True(t, address.IsValid(a), "invalid address: %q", a)

		suffix := a[address.NamespaceLength:]
		if previous, ok := seen[suffix]; ok {
			t.Fatalf("identities: %q and %q share suffix: %s", previous, identity, suffix)
		}
		seen[suffix] = identity
	}
}

func TestIsValid(t *testing.T) {
	ns := address.NewNamespace(familyName)
	other := address.NewNamespace("intkey")

	assert.True(t, address.IsValid(aliceAddress), "valid address rejected")
	assert.False(t, address.IsValid(aliceAddress[1:]), "short address accepted")
	assert.False(t, address.IsValid(aliceAddress+"0"), "long address accepted")
	assert.False(t, address.IsValid("7E2664"+aliceAddress[6:]), "uppercase accepted")
	assert.False(t, address.IsValid("zz2664"+aliceAddress[6:]), "non hex accepted")

	assert.False(t, other.Contains(aliceAddress), "address accepted by a foreign namespace")
	assert.True(t, ns.Contains(aliceAddress), "address rejected by own namespace")
}
