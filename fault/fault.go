// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type FundsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountNotFound          = NotFoundError("account not found")
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrBalanceOverflow          = FundsError("balance overflow")
	ErrBatchAlreadyInUse        = ExistsError("batch already in use")
	ErrConfigDirPath            = InvalidError("config is not a folder")
	ErrDatabaseVersion          = InvalidError("database version is not supported")
	ErrInsufficientFunds        = FundsError("insufficient funds")
	ErrInvalidBalanceRecord     = ProcessError("invalid balance record")
	ErrInvalidConfiguration     = InvalidError("invalid configuration")
	ErrInvalidDatabasePrefix    = InvalidError("invalid database prefix")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrMalformedPayload         = InvalidError("malformed payload")
	ErrMissingRequester         = InvalidError("missing requester identity")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrProcessorStopped         = ProcessError("processor stopped")
	ErrRateLimiting             = ProcessError("rate limiting")
	ErrRequiredInboxDirectory   = InvalidError("inbox directory is required")
	ErrSessionNotActive         = ProcessError("session is not active")
	ErrUnknownAction            = InvalidError("unknown action")
	ErrUnsupportedBatchFileName = InvalidError("unsupported batch file name")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e FundsError) Error() string    { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrFunds(e error) bool    { _, ok := e.(FundsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
