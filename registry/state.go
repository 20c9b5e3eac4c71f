package registry

import (
	"encoding/binary"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/crypto"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/state"
)

// --- slot derivation ---

func recordSlot(node common.Hash, field string) common.Hash {
	buf := make([]byte, 0, len(node)+1+len(field))
	buf = append(buf, node[:]...)
	buf = append(buf, 0x00)
	buf = append(buf, field...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

// --- record state ---

func getOwner(db state.StateDB, node common.Hash) common.Address {
	return common.Address(db.GetState(params.RegistryAddress, recordSlot(node, "owner")))
}

func setOwner(db state.StateDB, node common.Hash, owner common.Address) {
	db.SetState(params.RegistryAddress, recordSlot(node, "owner"), owner.Hash())
}

func getResolver(db state.StateDB, node common.Hash) common.Address {
	return common.Address(db.GetState(params.RegistryAddress, recordSlot(node, "resolver")))
}

func setResolver(db state.StateDB, node common.Hash, resolver common.Address) {
	db.SetState(params.RegistryAddress, recordSlot(node, "resolver"), resolver.Hash())
}

func getExpires(db state.StateDB, node common.Hash) uint64 {
	raw := db.GetState(params.RegistryAddress, recordSlot(node, "expires"))
	return binary.BigEndian.Uint64(raw[24:])
}

func setExpires(db state.StateDB, node common.Hash, at uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], at)
	db.SetState(params.RegistryAddress, recordSlot(node, "expires"), word)
}
