// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/simplewallet/fault"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/wallet"
)

// Session - state view for a single transaction
type Session interface {
	wallet.State
	Commit() error
	Abort()
}

// BeginFunc - open a new session
type BeginFunc func() (Session, error)

type request struct {
	batch []handler.Transaction
	reply chan []Result
}

// Processor - executes transactions in order
type Processor struct {
	handler *handler.Handler
	begin   BeginFunc
	limiter *rate.Limiter
	log     *logger.L
	queue   chan request
	done    chan struct{}
}

// New - create a processor
//
// limiter may be nil for no intake limit
func New(h *handler.Handler, begin BeginFunc, limiter *rate.Limiter, log *logger.L) *Processor {
	return &Processor{
		handler: h,
		begin:   begin,
		limiter: limiter,
		log:     log,
		queue:   make(chan request),
		done:    make(chan struct{}),
	}
}

// Process - run each transaction of a batch in its own session
//
// not safe for concurrent use, batches from several sources must go
// through Submit
func (p *Processor) Process(batch []handler.Transaction) []Result {
	results := make([]Result, 0, len(batch))
	for i, tx := range batch {
		result := p.process(i, tx)
		p.log.Infof("tx[%d]: signer: %q  status: %s  reason: %s", i, tx.Signer, result.Status, result.Reason)
		results = append(results, result)
	}
	return results
}

func (p *Processor) process(index int, tx handler.Transaction) Result {
	result := Result{
		Index:  index,
		Signer: tx.Signer,
	}
	if "" != tx.Signer {
		result.Address = p.handler.Namespace().Derive(tx.Signer)
		result.Addresses = p.handler.Addresses(tx)
		p.log.Debugf("tx[%d]: addresses: %v", index, result.Addresses)
	}

	if err := p.limit(); nil != err {
		return fail(result, err)
	}

	session, err := p.begin()
	if nil != err {
		p.log.Errorf("tx[%d]: begin session error: %s", index, err)
		return fail(result, err)
	}

	err = p.handler.NewApplicator(tx, session).Apply()
	if nil != err {
		session.Abort()
		if fault.IsRejection(err) {
			result.Status = Rejected
			result.Reason = err.Error()
			return result
		}
		p.log.Errorf("tx[%d]: apply error: %s", index, err)
		return fail(result, err)
	}

	if err := session.Commit(); nil != err {
		p.log.Criticalf("tx[%d]: commit error: %s", index, err)
		return fail(result, err)
	}

	result.Status = Committed
	return result
}

func fail(result Result, err error) Result {
	result.Status = Failed
	result.Reason = err.Error()
	return result
}

// wait for the limiter to allow one more transaction
func (p *Processor) limit() error {
	if nil == p.limiter {
		return nil
	}
	r := p.limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// Submit - queue a batch for the Run loop
//
// the returned channel delivers exactly one set of results
func (p *Processor) Submit(batch []handler.Transaction) (<-chan []Result, error) {
	r := request{
		batch: batch,
		reply: make(chan []Result, 1),
	}
	select {
	case p.queue <- r:
		return r.reply, nil
	case <-p.done:
		return nil, fault.ErrProcessorStopped
	}
}

// Run - processing loop
func (p *Processor) Run(args interface{}, shutdown <-chan struct{}) {

	log := p.log

	defer close(p.done)

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case r := <-p.queue:
			log.Infof("received: batch of: %d", len(r.batch))
			r.reply <- p.Process(r.batch)
		}
	}
	log.Info("stopped")
}
