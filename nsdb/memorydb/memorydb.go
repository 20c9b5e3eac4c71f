// Package memorydb implements the key-value database layer based on memory maps.
package memorydb

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nsdb"
)

// ErrMemorydbClosed is returned if a memory database was already closed at
// the invocation of a data access operation.
var ErrMemorydbClosed = errors.New("memorydb: database closed")

// Database is an ephemeral key-value store. Apart from basic data storage
// functionality it also supports iteration, hence it can be used as a
// drop-in replacement of the leveldb backend in tests and tooling.
type Database struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// New returns a wrapped map with all the required database interface
// methods implemented.
func New() *Database {
	return &Database{db: make(map[string][]byte)}
}

// Close deallocates the internal map and ensures any consecutive data
// access operation fails with an error.
func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db = nil
	return nil
}

// Has retrieves if a key is present in the key-value store.
func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.db == nil {
		return false, ErrMemorydbClosed
	}
	_, ok := db.db[string(key)]
	return ok, nil
}

// Get retrieves the given key if it's present in the key-value store.
func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.db == nil {
		return nil, ErrMemorydbClosed
	}
	if entry, ok := db.db[string(key)]; ok {
		return common.CopyBytes(entry), nil
	}
	return nil, nsdb.ErrNotFound
}

// Put inserts the given value into the key-value store.
func (db *Database) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.db == nil {
		return ErrMemorydbClosed
	}
	db.db[string(key)] = common.CopyBytes(value)
	return nil
}

// Delete removes the key from the key-value store.
func (db *Database) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.db == nil {
		return ErrMemorydbClosed
	}
	delete(db.db, string(key))
	return nil
}

// Len returns the number of entries currently present in the memory database.
func (db *Database) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()

	return len(db.db)
}

// NewIterator creates an iterator over a subset of database content with a
// particular key prefix, starting at a particular initial key.
func (db *Database) NewIterator(prefix []byte, start []byte) nsdb.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var (
		pr     = string(prefix)
		st     = string(append(prefix, start...))
		keys   = make([]string, 0, len(db.db))
		values = make([][]byte, 0, len(db.db))
	)
	// Collect the keys from the memory database corresponding to the given
	// prefix and start.
	for key := range db.db {
		if !strings.HasPrefix(key, pr) {
			continue
		}
		if key >= st {
			keys = append(keys, key)
		}
	}
	// Sort the items and retrieve the associated values.
	sort.Strings(keys)
	for _, key := range keys {
		values = append(values, db.db[key])
	}
	return &iterator{keys: keys, values: values}
}

// iterator can walk over the (potentially partial) keyspace of a memory
// key-value store. Internally it is a deep copy of the entire iterated
// state, sorted by keys.
type iterator struct {
	inited bool
	keys   []string
	values [][]byte
}

func (it *iterator) Next() bool {
	if !it.inited {
		it.inited = true
		return len(it.keys) > 0
	}
	if len(it.keys) > 0 {
		it.keys = it.keys[1:]
		it.values = it.values[1:]
	}
	return len(it.keys) > 0
}

func (it *iterator) Key() []byte {
	if len(it.keys) > 0 {
		return []byte(it.keys[0])
	}
	return nil
}

func (it *iterator) Value() []byte {
	if len(it.values) > 0 {
		return it.values[0]
	}
	return nil
}

func (it *iterator) Release() {
	it.keys, it.values = nil, nil
}

func (it *iterator) Error() error { return nil }
