// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inbox

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/simplewallet/fault"
	"github.com/bitmark-inc/simplewallet/handler"
	"github.com/bitmark-inc/simplewallet/processor"
	"github.com/bitmark-inc/simplewallet/util"
)

// file name extensions
const (
	BatchExtension   = ".batch"
	ReceiptExtension = ".receipt"
	InvalidExtension = ".invalid"
)

// Submitter - accepts a batch and later delivers its results
type Submitter interface {
	Submit(batch []handler.Transaction) (<-chan []processor.Result, error)
}

// Entry - one transaction in a batch file
type Entry struct {
	Signer  string `json:"signer"`
	Payload string `json:"payload"`
}

// Inbox - directory watcher
type Inbox struct {
	log       *logger.L
	directory string
	receipts  string
	submitter Submitter
	watcher   *fsnotify.Watcher
}

// New - watch a directory for batch files
//
// receipts are written to the inbox directory if receipts is blank
func New(directory string, receipts string, submitter Submitter, log *logger.L) (*Inbox, error) {
	if "" == directory {
		return nil, fault.ErrRequiredInboxDirectory
	}
	if "" == receipts {
		receipts = directory
	}

	directory, err := absoluteDirectory(directory)
	if nil != err {
		return nil, err
	}
	receipts, err = absoluteDirectory(receipts)
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(directory)
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	return &Inbox{
		log:       log,
		directory: directory,
		receipts:  receipts,
		submitter: submitter,
		watcher:   watcher,
	}, nil
}

// absolute path of a directory, created if missing
func absoluteDirectory(path string) (string, error) {
	workingDirectory, err := os.Getwd()
	if nil != err {
		return "", err
	}
	return util.EnsureDirectory(workingDirectory, path)
}

// Run - process existing batches then wait for new ones
func (in *Inbox) Run(args interface{}, shutdown <-chan struct{}) {

	log := in.log
	defer in.watcher.Close()

	log.Infof("watching: %q", in.directory)

	for _, name := range in.pending() {
		in.process(name)
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-in.watcher.Events:
			if !ok {
				break loop
			}
			log.Debugf("file event: %v", event)
			if !isBatchEvent(event) {
				continue loop
			}
			in.process(event.Name)

		case err, ok := <-in.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}
	log.Info("stopped")
}

// batch files already present, sorted by name
func (in *Inbox) pending() []string {
	files, err := ioutil.ReadDir(in.directory)
	if nil != err {
		in.log.Errorf("read directory: %q  error: %s", in.directory, err)
		return nil
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.Mode().IsRegular() && BatchExtension == filepath.Ext(f.Name()) {
			names = append(names, filepath.Join(in.directory, f.Name()))
		}
	}
	sort.Strings(names)
	return names
}

func isBatchEvent(event fsnotify.Event) bool {
	if BatchExtension != filepath.Ext(event.Name) {
		return false
	}
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

// process one batch file
//
// a batch accepted by the submitter is always waited for, so a
// committed batch always gets its receipt
func (in *Inbox) process(fileName string) {
	log := in.log

	batch, err := readBatch(fileName)
	if os.IsNotExist(err) {
		log.Debugf("batch: %q  already processed", fileName)
		return
	}
	if nil != err {
		log.Errorf("batch: %q  error: %s", fileName, err)
		invalid := strings.TrimSuffix(fileName, BatchExtension) + InvalidExtension
		if err := os.Rename(fileName, invalid); nil != err {
			log.Errorf("rename: %q  error: %s", fileName, err)
		}
		return
	}
	if nil == batch {
		log.Debugf("batch: %q  is empty, wait for data", fileName)
		return
	}

	reply, err := in.submitter.Submit(batch)
	if nil != err {
		log.Errorf("batch: %q  submit error: %s", fileName, err)
		return
	}
	results := <-reply

	receipt := filepath.Join(in.receipts, ReceiptName(filepath.Base(fileName)))
	if err := writeReceipt(receipt, results); nil != err {
		log.Criticalf("receipt: %q  error: %s", receipt, err)
		return
	}

	if err := os.Remove(fileName); nil != err {
		log.Errorf("remove: %q  error: %s", fileName, err)
	}
	log.Infof("batch: %q  transactions: %d  receipt: %q", fileName, len(results), receipt)
}

// ReceiptName - receipt file name for a batch file name
func ReceiptName(batchName string) string {
	return strings.TrimSuffix(batchName, BatchExtension) + ReceiptExtension
}

// read and decode a batch file
//
// a zero length file gives a nil batch and no error
func readBatch(fileName string) ([]handler.Transaction, error) {
	if BatchExtension != filepath.Ext(fileName) {
		return nil, fmt.Errorf("%w: %q", fault.ErrUnsupportedBatchFileName, fileName)
	}

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	if 0 == len(data) {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); nil != err {
		return nil, err
	}

	batch := make([]handler.Transaction, len(entries))
	for i, e := range entries {
		batch[i] = handler.Transaction{
			Signer:  e.Signer,
			Payload: []byte(e.Payload),
		}
	}
	return batch, nil
}

// WriteBatch - place a batch in an inbox directory as NAME.batch
//
// the file is written under a temporary name and renamed into place so
// a watching inbox never reads it half written
func WriteBatch(directory string, name string, batch []handler.Transaction) (string, error) {
	if "" == directory {
		return "", fault.ErrRequiredInboxDirectory
	}
	if !util.IsPlainName(name) {
		return "", fmt.Errorf("%w: %q", fault.ErrUnsupportedBatchFileName, name)
	}

	entries := make([]Entry, len(batch))
	for i, tx := range batch {
		entries[i] = Entry{
			Signer:  tx.Signer,
			Payload: string(tx.Payload),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if nil != err {
		return "", err
	}

	fileName := filepath.Join(directory, name+BatchExtension)
	temporary := filepath.Join(directory, "."+name+".tmp")
	if err := ioutil.WriteFile(temporary, data, 0600); nil != err {
		return "", err
	}
	if err := os.Rename(temporary, fileName); nil != err {
		os.Remove(temporary)
		return "", err
	}
	return fileName, nil
}

func writeReceipt(fileName string, results []processor.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if nil != err {
		return err
	}

	// write then rename so readers never see a partial receipt
	temporary := fileName + ".new"
	if err := ioutil.WriteFile(temporary, data, 0600); nil != err {
		return err
	}
	return os.Rename(temporary, fileName)
}
