package resolver

import (
	"encoding/binary"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/crypto"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/state"
)

const textChunkSize = 32

// --- slot derivation ---

func configSlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("config"), field...)))
}

func addrSlot(node common.Hash) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append(node[:], "addr"...)))
}

// textSlot is the base slot of one text record. Key length is encoded
// ahead of the key bytes so distinct (node, key) pairs can never collide
// through concatenation.
func textSlot(node common.Hash, key []byte) common.Hash {
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(key)))
	buf := make([]byte, 0, len(node)+len("text")+8+len(key))
	buf = append(buf, node[:]...)
	buf = append(buf, "text"...)
	buf = append(buf, l[:]...)
	buf = append(buf, key...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

func textMetaSlot(base common.Hash, field string) common.Hash {
	buf := make([]byte, 0, len(base)+1+len(field))
	buf = append(buf, base[:]...)
	buf = append(buf, 0x00)
	buf = append(buf, field...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

func textChunkSlot(base common.Hash, index uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	buf := make([]byte, 0, len(base)+1+len("chunk")+8)
	buf = append(buf, base[:]...)
	buf = append(buf, 0x00)
	buf = append(buf, "chunk"...)
	buf = append(buf, idx[:]...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

// --- word helpers ---

func readUint64(db state.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.ResolverAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db state.StateDB, slot common.Hash, n uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], n)
	db.SetState(params.ResolverAddress, slot, word)
}

func readBool(db state.StateDB, slot common.Hash) bool {
	return db.GetState(params.ResolverAddress, slot)[31] != 0
}

func writeBool(db state.StateDB, slot common.Hash, v bool) {
	var word common.Hash
	if v {
		word[31] = 1
	}
	db.SetState(params.ResolverAddress, slot, word)
}

// --- singleton config ---

func getRegistry(db state.StateDB) common.Address {
	return common.Address(db.GetState(params.ResolverAddress, configSlot("registry")))
}

func setRegistry(db state.StateDB, registry common.Address) {
	db.SetState(params.ResolverAddress, configSlot("registry"), registry.Hash())
}

// --- address records ---

func getAddr(db state.StateDB, node common.Hash) common.Address {
	return common.Address(db.GetState(params.ResolverAddress, addrSlot(node)))
}

func setAddr(db state.StateDB, node common.Hash, addr common.Address) {
	db.SetState(params.ResolverAddress, addrSlot(node), addr.Hash())
}

// --- text records ---

func chunkCount(valueLen uint64) uint64 {
	if valueLen == 0 {
		return 0
	}
	return (valueLen + textChunkSize - 1) / textChunkSize
}

func readText(db state.StateDB, base common.Hash) []byte {
	valueLen := readUint64(db, textMetaSlot(base, "valueLen"))
	value := make([]byte, valueLen)
	for i := uint64(0); i < chunkCount(valueLen); i++ {
		word := db.GetState(params.ResolverAddress, textChunkSlot(base, i))
		start := i * textChunkSize
		end := start + textChunkSize
		if end > valueLen {
			end = valueLen
		}
		copy(value[start:end], word[:end-start])
	}
	return value
}

func writeText(db state.StateDB, base common.Hash, value []byte) {
	oldLen := readUint64(db, textMetaSlot(base, "valueLen"))
	newLen := uint64(len(value))
	for i := uint64(0); i < chunkCount(newLen); i++ {
		start := i * textChunkSize
		end := start + textChunkSize
		if end > newLen {
			end = newLen
		}
		var word common.Hash
		copy(word[:], value[start:end])
		db.SetState(params.ResolverAddress, textChunkSlot(base, i), word)
	}
	// Clear chunks the shorter value no longer covers.
	for i := chunkCount(newLen); i < chunkCount(oldLen); i++ {
		db.SetState(params.ResolverAddress, textChunkSlot(base, i), common.Hash{})
	}
	writeUint64(db, textMetaSlot(base, "valueLen"), newLen)
	writeBool(db, textMetaSlot(base, "exists"), true)
}
