// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inbox_test

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/simplewallet/fault"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/inbox"
	"github.com/bitmark-inc/simplewallet/processor"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(result)
}

// accepts every transaction and records what it saw
type fakeSubmitter struct {
	sync.Mutex
	batches [][]handler.Transaction
}

func (f *fakeSubmitter) Submit(batch []handler.Transaction) (<-chan []processor.Result, error) {
	f.Lock()
	f.batches = append(f.batches, batch)
	f.Unlock()

	results := make([]processor.Result, len(batch))
	for i, tx := range batch {
		results[i] = processor.Result{
			Index:  i,
			Signer: tx.Signer,
			Status: processor.Committed,
		}
	}
	reply := make(chan []processor.Result, 1)
	reply <- results
	return reply, nil
}

func (f *fakeSubmitter) count() int {
	f.Lock()
	defer f.Unlock()
	return len(f.batches)
}

// start an inbox on fresh directories
func setup(t *testing.T, submitter inbox.Submitter, before func(directory string)) (string, string, func()) {
	base, err := ioutil.TempDir("", "inbox")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	directory := filepath.Join(base, "in")
	receipts := filepath.Join(base, "out")
	if nil != before {
		_ = os.MkdirAll(directory, 0700)
		before(directory)
	}

	in, err := inbox.New(directory, receipts, submitter, logger.New("inbox"))
	if nil != err {
		t.Fatalf("inbox new error: %s", err)
	}

	shutdown := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		in.Run(nil, shutdown)
		close(finished)
	}()

	return directory, receipts, func() {
		close(shutdown)
		<-finished
		os.RemoveAll(base)
	}
}

// write a batch file the way a client should: write aside, then rename
func putBatch(t *testing.T, directory string, name string, content string) {
	temporary := filepath.Join(directory, name+".tmp")
	if err := ioutil.WriteFile(temporary, []byte(content), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	if err := os.Rename(temporary, filepath.Join(directory, name)); nil != err {
		t.Fatalf("rename error: %s", err)
	}
}

// wait for a file to appear
func waitFor(fileName string) bool {
	for i := 0; i < 500; i += 1 {
		if _, err := os.Stat(fileName); nil == err {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// wait for a file to be removed
func waitForRemoval(fileName string) bool {
	for i := 0; i < 500; i += 1 {
		if _, err := os.Stat(fileName); os.IsNotExist(err) {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func readReceipt(t *testing.T, fileName string) []processor.Result {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		t.Fatalf("read receipt error: %s", err)
	}
	var results []processor.Result
	if err := json.Unmarshal(data, &results); nil != err {
		t.Fatalf("decode receipt error: %s", err)
	}
	return results
}

const twoTransactions = `[
  {"signer": "alice", "payload": "deposit,100"},
  {"signer": "alice", "payload": "transfer,30,bob"}
]`

func TestNewRequiresDirectory(t *testing.T) {
	_, err := inbox.New("", "", &fakeSubmitter{}, logger.New("inbox"))
	assert.Equal(t, fault.ErrRequiredInboxDirectory, err, "blank directory")
}

func TestReceiptName(t *testing.T) {
	assert.Equal(t, "x.receipt", inbox.ReceiptName("x.batch"), "receipt name")
	assert.Equal(t, "a.b.receipt", inbox.ReceiptName("a.b.batch"), "receipt name")
}

func TestWatchedBatch(t *testing.T) {
	submitter := &fakeSubmitter{}
	directory, receipts, teardown := setup(t, submitter, nil)
	defer teardown()

	putBatch(t, directory, "one.batch", twoTransactions)

	receipt := filepath.Join(receipts, "one.receipt")
	if !waitFor(receipt) {
		t.Fatalf("no receipt: %q", receipt)
	}

	results := readReceipt(t, receipt)
	assert.Equal(t, 2, len(results), "result count")
	assert.Equal(t, "alice", results[1].Signer, "signer")
	assert.Equal(t, processor.Committed, results[1].Status, "status")

	assert.True(t, waitForRemoval(filepath.Join(directory, "one.batch")), "batch file not removed")

	assert.Equal(t, 1, submitter.count(), "batches submitted")
	submitter.Lock()
	assert.Equal(t, []byte("transfer,30,bob"), submitter.batches[0][1].Payload, "payload")
	submitter.Unlock()
}

func TestExistingBatch(t *testing.T) {
	submitter := &fakeSubmitter{}
	before := func(directory string) {
		putBatch(t, directory, "early.batch", twoTransactions)
	}
	_, receipts, teardown := setup(t, submitter, before)
	defer teardown()

	receipt := filepath.Join(receipts, "early.receipt")
	if !waitFor(receipt) {
		t.Fatalf("no receipt: %q", receipt)
	}
	assert.Equal(t, 2, len(readReceipt(t, receipt)), "result count")
}

func TestInvalidBatch(t *testing.T) {
	submitter := &fakeSubmitter{}
	directory, _, teardown := setup(t, submitter, nil)
	defer teardown()

	putBatch(t, directory, "bad.batch", `{"signer": "alice"`)

	invalid := filepath.Join(directory, "bad.invalid")
	if !waitFor(invalid) {
		t.Fatalf("batch not marked invalid: %q", invalid)
	}
	assert.Equal(t, 0, submitter.count(), "invalid batch submitted")
}

func TestWriteBatch(t *testing.T) {
	submitter := &fakeSubmitter{}
	directory, receipts, teardown := setup(t, submitter, nil)
	defer teardown()

	batch := []handler.Transaction{
		{Signer: "carol", Payload: []byte("deposit,3")},
	}
	fileName, err := inbox.WriteBatch(directory, "written", batch)
	assert.Nil(t, err, "write batch")
	assert.Equal(t, filepath.Join(directory, "written.batch"), fileName, "file name")

	if !waitFor(filepath.Join(receipts, "written.receipt")) {
		t.Fatal("no receipt")
	}
	assert.Equal(t, 1, submitter.count(), "batches submitted")
	submitter.Lock()
	assert.Equal(t, batch, submitter.batches[0], "batch content")
	submitter.Unlock()
}

func TestWriteBatchErrors(t *testing.T) {
	_, err := inbox.WriteBatch("", "x", nil)
	assert.Equal(t, fault.ErrRequiredInboxDirectory, err, "blank directory")

	_, err = inbox.WriteBatch(os.TempDir(), "a/b", nil)
	assert.True(t, errors.Is(err, fault.ErrUnsupportedBatchFileName), "error: %v", err)
}

func TestIgnoresOtherFiles(t *testing.T) {
	submitter := &fakeSubmitter{}
	directory, receipts, teardown := setup(t, submitter, nil)
	defer teardown()

	putBatch(t, directory, "notes.txt", twoTransactions)
	putBatch(t, directory, "last.batch", twoTransactions)

	if !waitFor(filepath.Join(receipts, "last.receipt")) {
		t.Fatal("no receipt")
	}
	assert.Equal(t, 1, submitter.count(), "batches submitted")

	_, err := os.Stat(filepath.Join(directory, "notes.txt"))
	assert.Nil(t, err, "unrelated file touched")
}
