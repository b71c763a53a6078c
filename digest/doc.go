// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - SHA-512 digests rendered as lowercase hex
//
// the hex form is what the address deriver slices into namespace
// and identity segments
package digest
