package state

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nsdb/memorydb"
	"github.com/ScottyPoi/stellar-name-service/types"
)

var (
	testContract = common.BytesToAddress([]byte{0x01})
	testSlot     = common.BytesToHash([]byte("slot"))
)

func TestGetStateDefaultsToZero(t *testing.T) {
	db := New(nil)
	require.True(t, db.GetState(testContract, testSlot).IsZero())
}

func TestSetGetRoundTrip(t *testing.T) {
	db := New(nil)
	val := common.BytesToHash([]byte("value"))
	db.SetState(testContract, testSlot, val)
	require.Equal(t, val, db.GetState(testContract, testSlot))
}

func TestSnapshotRevertStorage(t *testing.T) {
	db := New(nil)
	v1 := common.BytesToHash([]byte{1})
	v2 := common.BytesToHash([]byte{2})

	db.SetState(testContract, testSlot, v1)
	snap := db.Snapshot()
	db.SetState(testContract, testSlot, v2)
	require.Equal(t, v2, db.GetState(testContract, testSlot))

	db.RevertToSnapshot(snap)
	require.Equal(t, v1, db.GetState(testContract, testSlot))
}

func TestSnapshotRevertEvents(t *testing.T) {
	db := New(nil)
	db.AddEvent(types.NewEvent(testContract, types.EventRenew, testSlot, types.RenewData{ExpiresAt: 1}))
	snap := db.Snapshot()
	db.AddEvent(types.NewEvent(testContract, types.EventRenew, testSlot, types.RenewData{ExpiresAt: 2}))
	require.Len(t, db.Events(), 2)

	db.RevertToSnapshot(snap)
	require.Len(t, db.Events(), 1, "reverted action left an event behind: %s", spew.Sdump(db.Events()))
}

func TestNestedSnapshots(t *testing.T) {
	db := New(nil)
	v1 := common.BytesToHash([]byte{1})
	v2 := common.BytesToHash([]byte{2})
	v3 := common.BytesToHash([]byte{3})

	outer := db.Snapshot()
	db.SetState(testContract, testSlot, v1)
	inner := db.Snapshot()
	db.SetState(testContract, testSlot, v2)
	db.RevertToSnapshot(inner)
	require.Equal(t, v1, db.GetState(testContract, testSlot))

	db.SetState(testContract, testSlot, v3)
	db.RevertToSnapshot(outer)
	require.True(t, db.GetState(testContract, testSlot).IsZero())
}

func TestRevertInvalidatesLaterSnapshots(t *testing.T) {
	db := New(nil)
	outer := db.Snapshot()
	inner := db.Snapshot()
	db.RevertToSnapshot(outer)
	require.Panics(t, func() { db.RevertToSnapshot(inner) })
}

func TestCommitPersistsThroughBackend(t *testing.T) {
	backend := memorydb.New()
	defer backend.Close()

	db := New(backend)
	val := common.BytesToHash([]byte("persisted"))
	db.SetState(testContract, testSlot, val)
	db.AddEvent(types.NewEvent(testContract, types.EventRenew, testSlot, types.RenewData{ExpiresAt: 7}))
	require.NoError(t, db.Commit())

	// A fresh state over the same backend sees the committed word.
	reopened := New(backend)
	require.Equal(t, val, reopened.GetState(testContract, testSlot))

	evs, err := reopened.StoredEvents()
	require.NoError(t, err)
	require.Len(t, evs, 1)
	require.Equal(t, types.EventRenew, evs[0].Name)
	require.Equal(t, testSlot, evs[0].Topics[0])
}

func TestCommitDeletesZeroedWords(t *testing.T) {
	backend := memorydb.New()
	defer backend.Close()

	db := New(backend)
	db.SetState(testContract, testSlot, common.BytesToHash([]byte{1}))
	require.NoError(t, db.Commit())
	require.Equal(t, 1, backend.Len())

	db.SetState(testContract, testSlot, common.Hash{})
	require.NoError(t, db.Commit())
	require.True(t, New(backend).GetState(testContract, testSlot).IsZero())
}

func TestEventOrderSurvivesCommitCycles(t *testing.T) {
	backend := memorydb.New()
	defer backend.Close()

	db := New(backend)
	for i := uint64(1); i <= 3; i++ {
		db.AddEvent(types.NewEvent(testContract, types.EventRenew, testSlot, types.RenewData{ExpiresAt: i}))
		require.NoError(t, db.Commit())
	}
	evs, err := db.StoredEvents()
	require.NoError(t, err)
	require.Len(t, evs, 3)
}
