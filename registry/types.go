// Package registry implements the naming registry contract: the
// authoritative mapping from namehash to {owner, resolver, expiry}.
//
// The registry is a leaf state machine. It never calls into the resolver
// or registrar; both of those read ownership from here and write expiry
// through the entry points below. A record is created by the first
// SetOwner and is never deleted; expiry is advisory here and only the
// registrar's availability policy interprets it.
package registry

import "errors"

var (
	// ErrNotFound is returned when reading a field of an unregistered
	// name, or a resolver that was never set.
	ErrNotFound = errors.New("registry: name not found")

	// ErrZeroAddress is returned when an owner or resolver argument is
	// the zero address.
	ErrZeroAddress = errors.New("registry: zero address")

	// ErrOverflow is returned when a renewal would push the expiry past
	// the maximum representable timestamp.
	ErrOverflow = errors.New("registry: expiry overflow")
)
