// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/simplewallet/fault"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/processor"
	"github.com/bitmark-inc/simplewallet/storage"
)

func TestProcessBatch(t *testing.T) {
	h := newTestHandler()
	store := newMemoryStore()
	p := processor.New(h, store.begin, nil, logger.New("processor"))

	batch := []handler.Transaction{
		tx("alice", "deposit,100"),
		tx("bob", "deposit,5"),
		tx("alice", "transfer,30,bob"),
		tx("alice", "withdraw,1000"),
		tx("alice", "foo,1"),
		tx("alice", "transfer,1,carol"),
	}

	expected := []processor.Status{
		processor.Committed,
		processor.Committed,
		processor.Committed,
		processor.Rejected,
		processor.Rejected,
		processor.Rejected,
	}

	results := p.Process(batch)
	assert.Equal(t, len(batch), len(results), "result count")

	for i, r := range results {
		assert.Equal(t, i, r.Index, "index")
		assert.Equal(t, batch[i].Signer, r.Signer, "signer")
		assert.Equal(t, h.Namespace().Derive(batch[i].Signer), r.Address, "address")
		assert.Equal(t, expected[i], r.Status, "tx[%d] status", i)
	}
	alice := h.Namespace().Derive("alice")
	bob := h.Namespace().Derive("bob")
	assert.Equal(t, []string{alice}, results[0].Addresses, "deposit addresses")
	assert.Equal(t, []string{alice, bob}, results[2].Addresses, "transfer addresses")
	assert.Equal(t, []string{alice}, results[4].Addresses, "unparsable payload addresses")

	assert.Contains(t, results[3].Reason, "insufficient funds", "withdraw reason")
	assert.Contains(t, results[4].Reason, "unknown action", "action reason")
	assert.Contains(t, results[5].Reason, "account not found", "transfer reason")

	assert.Equal(t, "70", store.balanceOf(h, "alice"), "alice")
	assert.Equal(t, "35", store.balanceOf(h, "bob"), "bob")
	assert.Equal(t, 3, store.commits, "commits")
	assert.Equal(t, 3, store.aborts, "aborts")
}

func TestProcessPartialTransferNotCommitted(t *testing.T) {
	h := newTestHandler()
	store := newMemoryStore()
	p := processor.New(h, store.begin, nil, logger.New("processor"))

	results := p.Process([]handler.Transaction{
		tx("alice", "deposit,100"),
		tx("bob", "deposit,5"),
	})
	assert.Equal(t, processor.Committed, results[1].Status, "setup")

	// credit write fails after the debit was buffered
	store.failSet = h.Namespace().Derive("bob")

	results = p.Process([]handler.Transaction{
		tx("alice", "transfer,30,bob"),
	})
	assert.Equal(t, processor.Failed, results[0].Status, "status")
	assert.Equal(t, errSetFailed.Error(), results[0].Reason, "reason")

	assert.Equal(t, "100", store.balanceOf(h, "alice"), "debit persisted")
	assert.Equal(t, "5", store.balanceOf(h, "bob"), "bob")
	assert.Equal(t, 1, store.aborts, "aborts")
}

func TestProcessBeginFailure(t *testing.T) {
	begin := func() (processor.Session, error) {
		return nil, fault.ErrBatchAlreadyInUse
	}
	p := processor.New(newTestHandler(), begin, nil, logger.New("processor"))

	results := p.Process([]handler.Transaction{tx("alice", "deposit,1")})
	assert.Equal(t, processor.Failed, results[0].Status, "status")
	assert.Equal(t, fault.ErrBatchAlreadyInUse.Error(), results[0].Reason, "reason")
}

func TestProcessCommitFailure(t *testing.T) {
	h := newTestHandler()
	store := newMemoryStore()
	store.failCommit = testError("disk full")
	p := processor.New(h, store.begin, nil, logger.New("processor"))

	results := p.Process([]handler.Transaction{tx("alice", "deposit,1")})
	assert.Equal(t, processor.Failed, results[0].Status, "status")
	assert.Equal(t, "disk full", results[0].Reason, "reason")
	assert.Equal(t, "", store.balanceOf(h, "alice"), "balance")
}

func TestProcessMissingSigner(t *testing.T) {
	store := newMemoryStore()
	p := processor.New(newTestHandler(), store.begin, nil, logger.New("processor"))

	results := p.Process([]handler.Transaction{tx("", "deposit,1")})
	assert.Equal(t, processor.Rejected, results[0].Status, "status")
	assert.Equal(t, "", results[0].Address, "address")
	assert.Nil(t, results[0].Addresses, "addresses")
	assert.Equal(t, 0, len(store.data), "state written")
}

func TestProcessRateLimit(t *testing.T) {
	store := newMemoryStore()

	// a zero burst can never grant a reservation
	limiter := rate.NewLimiter(rate.Limit(1), 0)
	p := processor.New(newTestHandler(), store.begin, limiter, logger.New("processor"))

	results := p.Process([]handler.Transaction{tx("alice", "deposit,1")})
	assert.Equal(t, processor.Failed, results[0].Status, "status")
	assert.Equal(t, fault.ErrRateLimiting.Error(), results[0].Reason, "reason")
	assert.Equal(t, 0, len(store.data), "state written")

	limiter = rate.NewLimiter(rate.Inf, 1)
	p = processor.New(newTestHandler(), store.begin, limiter, logger.New("processor"))
	results = p.Process([]handler.Transaction{tx("alice", "deposit,1"), tx("alice", "deposit,1")})
	assert.Equal(t, processor.Committed, results[1].Status, "status")
}

func TestSubmitAndRun(t *testing.T) {
	h := newTestHandler()
	store := newMemoryStore()
	p := processor.New(h, store.begin, nil, logger.New("processor"))

	shutdown := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		p.Run(nil, shutdown)
		close(finished)
	}()

	reply, err := p.Submit([]handler.Transaction{tx("alice", "deposit,7")})
	assert.Nil(t, err, "submit")

	select {
	case results := <-reply:
		assert.Equal(t, 1, len(results), "result count")
		assert.Equal(t, processor.Committed, results[0].Status, "status")
	case <-time.After(time.Second):
		t.Fatal("no reply")
	}
	assert.Equal(t, "7", store.balanceOf(h, "alice"), "balance")

	close(shutdown)
	<-finished

	_, err = p.Submit([]handler.Transaction{tx("alice", "deposit,7")})
	assert.Equal(t, fault.ErrProcessorStopped, err, "submit after stop")
}

func TestProcessWithStorage(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	defer func() {
		storage.Finalise()
		removeFiles()
	}()

	begin := func() (processor.Session, error) {
		return storage.NewSession()
	}

	h := newTestHandler()
	p := processor.New(h, begin, nil, logger.New("processor"))

	results := p.Process([]handler.Transaction{
		tx("alice", "deposit,100"),
		tx("bob", "deposit,5"),
		tx("alice", "transfer,30,bob"),
		tx("bob", "transfer,500,alice"),
		tx("alice", "withdraw,10"),
		tx("alice", "transfer,5,alice"),
	})
	assert.Equal(t, processor.Rejected, results[3].Status, "overdrawn transfer")
	assert.Equal(t, processor.Committed, results[4].Status, "withdraw")
	assert.Equal(t, processor.Committed, results[5].Status, "self transfer")

	value, found, err := storage.Pool.State.Get([]byte(h.Namespace().Derive("alice")))
	assert.Nil(t, err, "get")
	assert.True(t, found, "alice missing")
	assert.Equal(t, "60", string(value), "alice")

	value, found, err = storage.Pool.State.Get([]byte(h.Namespace().Derive("bob")))
	assert.Nil(t, err, "get")
	assert.True(t, found, "bob missing")
	assert.Equal(t, "35", string(value), "bob")
}
