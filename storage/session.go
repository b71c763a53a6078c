// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/simplewallet/fault"
)

// Session - transaction scoped read-modify-write view of the state pool
//
// only one session can be active; it must be ended by Commit or Abort
type Session struct {
	sync.Mutex
	active   bool
	pool     *PoolHandle
	database *leveldb.DB
	batch    *leveldb.Batch
	cache    Cache
}

func newSession(pool *PoolHandle, database *leveldb.DB) *Session {
	return &Session{
		active:   false,
		pool:     pool,
		database: database,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

// NewSession - start a session on the state pool
func NewSession() (*Session, error) {
	poolData.RLock()
	s := poolData.session
	poolData.RUnlock()

	if nil == s {
		return nil, fault.ErrNotInitialised
	}

	s.Lock()
	defer s.Unlock()

	if s.active {
		return nil, fault.ErrBatchAlreadyInUse
	}
	s.active = true
	return s, nil
}

// Get - balance string at an address, pending writes take priority
func (s *Session) Get(address string) (string, bool, error) {
	s.Lock()
	defer s.Unlock()

	if !s.active {
		return "", false, fault.ErrSessionNotActive
	}

	if value, found := s.cache.Get(address); found {
		return string(value), true, nil
	}

	value, found, err := s.pool.Get([]byte(address))
	if nil != err || !found {
		return "", false, err
	}
	return string(value), true, nil
}

// Set - buffer a write until Commit
func (s *Session) Set(address string, value string) error {
	s.Lock()
	defer s.Unlock()

	if !s.active {
		return fault.ErrSessionNotActive
	}

	s.cache.Set(address, []byte(value))
	s.batch.Put(s.pool.prefixKey([]byte(address)), []byte(value))
	return nil
}

// Commit - atomically write all buffered values and end the session
//
// the session is ended even if the write fails
func (s *Session) Commit() error {
	s.Lock()
	defer s.Unlock()

	if !s.active {
		return fault.ErrSessionNotActive
	}
	defer s.reset()

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}

	// nothing to write, e.g. a transfer to the same account
	if 0 == s.batch.Len() {
		return nil
	}
	return s.database.Write(s.batch, nil)
}

// Abort - discard all buffered values and end the session
func (s *Session) Abort() {
	s.Lock()
	defer s.Unlock()
	s.reset()
}

// must hold the lock
func (s *Session) reset() {
	s.batch.Reset()
	s.cache.Clear()
	s.active = false
}
