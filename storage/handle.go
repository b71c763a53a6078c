// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/simplewallet/fault"
)

// PoolHandle - handle for a storage pool
type PoolHandle struct {
	prefix   byte
	limit    []byte
	database *leveldb.DB
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair directly to the database
//
// bypasses any session, only for data outside a transaction
func (p *PoolHandle) Put(key []byte, value []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	return p.database.Put(p.prefixKey(key), value, nil)
}

// Delete - remove a key directly from the database
func (p *PoolHandle) Delete(key []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	return p.database.Delete(p.prefixKey(key), nil)
}

// Get - read a value for a given key
//
// second result is false if the key is not present
func (p *PoolHandle) Get(key []byte) ([]byte, bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return nil, false, fault.ErrNotInitialised
	}
	value, err := p.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return false, fault.ErrNotInitialised
	}
	return p.database.Has(p.prefixKey(key), nil)
}

// Count - number of keys in the pool
func (p *PoolHandle) Count() (int, error) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return 0, fault.ErrNotInitialised
	}

	iter := p.database.NewIterator(&maxRange, nil)
	n := 0
	for iter.Next() {
		n += 1
	}
	iter.Release()
	return n, iter.Error()
}
