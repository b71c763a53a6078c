// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// number of bytes in the digest
const Length = sha512.Size

// number of characters in the hex representation
const HexLength = 2 * Length

// Digest - type for a SHA-512 digest
type Digest [Length]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha512.Sum512(record)
}

// Hex - digest of a byte slice as lowercase hex
func Hex(record []byte) string {
	return NewDigest(record).String()
}

// HexString - digest of a string as lowercase hex
func HexString(s string) string {
	return Hex([]byte(s))
}

// convert a binary digest to hex string for use by the fmt package (for %s)
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// convert a binary digest to hex string for use by the fmt package (for %#v)
func (d Digest) GoString() string {
	return "<SHA-512:" + hex.EncodeToString(d[:]) + ">"
}

// MarshalText - convert digest to hex text
func (d Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, d[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (d *Digest) UnmarshalText(s []byte) error {
	if HexLength != len(s) {
		return fmt.Errorf("digest: hex length: %d  expected: %d", len(s), HexLength)
	}
	_, err := hex.Decode(d[:], s)
	return err
}
