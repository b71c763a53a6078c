// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk state store
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = 70 lowercase hex characters (namespace ++ identity digest)
// 4. balance      = unsigned decimal string, no sign, no leading zeros
//
// Version:
//
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32 (4 bytes)
//
// State:
//
//   S ++ address               - account balance
//                                data: balance
//
// Testing:
//
//   Z ++ key                   - testing data
//
// All writes go through a Session: a single LevelDB batch plus an
// overlay cache so that reads within the session see its own pending
// writes.  Nothing reaches the database until Commit, so an aborted
// session leaves no trace.
package storage
