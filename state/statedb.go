// Package state provides the persistent word storage the contract packages
// mutate, with journal-based snapshot and revert.
//
// Storage is keyed by (contract address, slot hash) exactly the way the
// contract packages derive their slots. One action execution equals one
// snapshot scope: the executor takes a snapshot before dispatch and reverts
// it if the handler returns an error, discarding every write and every
// event the action produced (including those of nested contract calls).
package state

import (
	"encoding/json"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nsdb"
	"github.com/ScottyPoi/stellar-name-service/types"
)

// StateDB is the storage interface the contract packages are written
// against. The concrete implementation below is the only one in-tree, but
// handlers accept the interface so tests can wrap it.
type StateDB interface {
	GetState(contract common.Address, slot common.Hash) common.Hash
	SetState(contract common.Address, slot common.Hash, value common.Hash)
	AddEvent(ev *types.Event)
	Snapshot() int
	RevertToSnapshot(id int)
}

type storageKey struct {
	contract common.Address
	slot     common.Hash
}

// journalEntry is a modification to the state that can be reverted.
type journalEntry interface {
	revert(db *DB)
}

type storageChange struct {
	key  storageKey
	prev common.Hash
}

func (ch storageChange) revert(db *DB) {
	db.storage[ch.key] = ch.prev
}

type eventAppended struct{}

func (ch eventAppended) revert(db *DB) {
	db.events = db.events[:len(db.events)-1]
}

// DB implements StateDB over an optional nsdb backend. With a nil backend
// it is a pure in-memory state, which is what the tests use.
type DB struct {
	backend nsdb.KeyValueStore

	storage map[storageKey]common.Hash
	dirty   map[storageKey]struct{}
	events  []*types.Event

	journal        []journalEntry
	nextSnapshotID int
	snapshotIDs    map[int]int
}

// New creates a state database on top of backend. A nil backend yields an
// ephemeral in-memory state.
func New(backend nsdb.KeyValueStore) *DB {
	return &DB{
		backend:     backend,
		storage:     make(map[storageKey]common.Hash),
		dirty:       make(map[storageKey]struct{}),
		snapshotIDs: make(map[int]int),
	}
}

func storageDBKey(key storageKey) []byte {
	buf := make([]byte, 0, 3+common.AddressLength+common.HashLength)
	buf = append(buf, []byte("st:")...)
	buf = append(buf, key.contract.Bytes()...)
	buf = append(buf, key.slot.Bytes()...)
	return buf
}

// GetState retrieves the word stored at (contract, slot), loading it from
// the backend on first touch. Absent slots read as the zero word.
func (db *DB) GetState(contract common.Address, slot common.Hash) common.Hash {
	key := storageKey{contract, slot}
	if val, ok := db.storage[key]; ok {
		return val
	}
	var val common.Hash
	if db.backend != nil {
		if data, err := db.backend.Get(storageDBKey(key)); err == nil {
			val = common.BytesToHash(data)
		}
	}
	db.storage[key] = val
	return val
}

// SetState stores a word at (contract, slot), journaling the previous
// value so the write can be reverted.
func (db *DB) SetState(contract common.Address, slot common.Hash, value common.Hash) {
	key := storageKey{contract, slot}
	prev := db.GetState(contract, slot)
	if prev == value {
		return
	}
	db.journal = append(db.journal, storageChange{key: key, prev: prev})
	db.storage[key] = value
	db.dirty[key] = struct{}{}
}

// AddEvent appends an event to the log. Reverting a snapshot taken before
// the append removes the event again.
func (db *DB) AddEvent(ev *types.Event) {
	db.journal = append(db.journal, eventAppended{})
	db.events = append(db.events, ev)
}

// Events returns the events accumulated so far. Events removed by a revert
// are never observable here.
func (db *DB) Events() []*types.Event { return db.events }

// Snapshot returns an identifier for the current revision of the state.
func (db *DB) Snapshot() int {
	id := db.nextSnapshotID
	db.nextSnapshotID++
	db.snapshotIDs[id] = len(db.journal)
	return id
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (db *DB) RevertToSnapshot(id int) {
	mark, ok := db.snapshotIDs[id]
	if !ok {
		panic("state: revert to unknown snapshot")
	}
	for i := len(db.journal) - 1; i >= mark; i-- {
		db.journal[i].revert(db)
	}
	db.journal = db.journal[:mark]
	// Invalidate this and any later snapshot.
	for sid, m := range db.snapshotIDs {
		if sid >= id || m > mark {
			delete(db.snapshotIDs, sid)
		}
	}
}

// Commit flushes all dirty storage words and pending events to the backend
// and resets the journal. It is a no-op for backend-less states.
func (db *DB) Commit() error {
	if db.backend == nil {
		db.resetJournal()
		return nil
	}
	for key := range db.dirty {
		val := db.storage[key]
		if val.IsZero() {
			if err := db.backend.Delete(storageDBKey(key)); err != nil {
				return err
			}
		} else if err := db.backend.Put(storageDBKey(key), val.Bytes()); err != nil {
			return err
		}
	}
	db.dirty = make(map[storageKey]struct{})
	seq := db.eventSeq()
	for i, ev := range db.events {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if err := db.backend.Put(eventDBKey(seq+uint64(i)), data); err != nil {
			return err
		}
	}
	if len(db.events) > 0 {
		if err := db.setEventSeq(seq + uint64(len(db.events))); err != nil {
			return err
		}
	}
	db.events = nil
	db.resetJournal()
	return nil
}

func (db *DB) resetJournal() {
	db.journal = db.journal[:0]
	db.snapshotIDs = make(map[int]int)
}
