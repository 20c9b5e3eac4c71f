// Package resolver implements the record store contract: per-namehash
// address and text records.
//
// The resolver holds no ownership state of its own. Every write asks the
// registry for the current owner and compares it to the caller, so an
// ownership transfer in the registry revokes the previous owner's write
// access immediately, with no revocation bookkeeping here.
package resolver

import "errors"

var (
	// ErrAlreadyInitialized is returned by a second Init call.
	ErrAlreadyInitialized = errors.New("resolver: already initialized")

	// ErrNotInitialized is returned when the registry address is read or
	// a record is written before Init.
	ErrNotInitialized = errors.New("resolver: not initialized")

	// ErrNotOwner is returned when the caller does not own the name in
	// the registry. An unregistered name has no owner, so writes to it
	// fail the same way.
	ErrNotOwner = errors.New("resolver: caller does not own name")

	// ErrNotFound is returned when reading a record that was never set.
	ErrNotFound = errors.New("resolver: record not found")

	// ErrInvalidInput is returned for a zero record address or a text key
	// outside 1..256 bytes.
	ErrInvalidInput = errors.New("resolver: invalid input")
)
