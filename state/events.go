package state

import (
	"encoding/binary"
	"encoding/json"

	"github.com/ScottyPoi/stellar-name-service/types"
)

var eventSeqKey = []byte("ev:seq")

func eventDBKey(seq uint64) []byte {
	buf := make([]byte, 3+8)
	copy(buf, "ev:")
	binary.BigEndian.PutUint64(buf[3:], seq)
	return buf
}

func (db *DB) eventSeq() uint64 {
	if db.backend == nil {
		return 0
	}
	data, err := db.backend.Get(eventSeqKey)
	if err != nil || len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func (db *DB) setEventSeq(seq uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return db.backend.Put(eventSeqKey, buf[:])
}

// StoredEvents reads back all committed events from the backend in emission
// order. It is a tooling helper; the contracts themselves never read the
// event log.
func (db *DB) StoredEvents() ([]*types.Event, error) {
	if db.backend == nil {
		return nil, nil
	}
	it := db.backend.NewIterator([]byte("ev:"), nil)
	defer it.Release()

	var out []*types.Event
	for it.Next() {
		if string(it.Key()) == string(eventSeqKey) {
			continue
		}
		var ev types.Event
		if err := json.Unmarshal(it.Value(), &ev); err != nil {
			return nil, err
		}
		out = append(out, &ev)
	}
	return out, it.Error()
}
