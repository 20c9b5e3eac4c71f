// Package nsdb defines the key-value database interfaces the name service
// state is persisted through.
package nsdb

import "errors"

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("nsdb: not found")

// KeyValueReader wraps the Has and Get method of a backing data store.
type KeyValueReader interface {
	// Has retrieves if a key is present in the key-value data store.
	Has(key []byte) (bool, error)

	// Get retrieves the given key if it's present in the key-value data store.
	Get(key []byte) ([]byte, error)
}

// KeyValueWriter wraps the Put and Delete methods of a backing data store.
type KeyValueWriter interface {
	// Put inserts the given value into the key-value data store.
	Put(key []byte, value []byte) error

	// Delete removes the key from the key-value data store.
	Delete(key []byte) error
}

// Iterator iterates over a database's key/value pairs in ascending key
// order. An iterator must be released after use.
type Iterator interface {
	// Next moves the iterator to the next key/value pair. It returns whether
	// the iterator is exhausted.
	Next() bool

	// Key returns the key of the current key/value pair, or nil if done.
	Key() []byte

	// Value returns the value of the current key/value pair, or nil if done.
	Value() []byte

	// Release releases associated resources.
	Release()

	// Error returns any accumulated error.
	Error() error
}

// Iteratee wraps the NewIterator method of a backing data store.
type Iteratee interface {
	// NewIterator creates an iterator over a subset of the database content
	// with a particular key prefix, starting at a particular initial key.
	NewIterator(prefix []byte, start []byte) Iterator
}

// KeyValueStore contains all the methods required to allow handling
// different key-value stores backing the name service state.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	Iteratee
	Close() error
}
