package registrar

import (
	"encoding/binary"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/crypto"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/state"
)

const tldChunkSize = 32

// --- slot derivation ---

func configSlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("config"), field...)))
}

func commitmentSlot(commitment common.Hash, field string) common.Hash {
	buf := make([]byte, 0, len("commitment")+len(commitment)+len(field))
	buf = append(buf, "commitment"...)
	buf = append(buf, commitment[:]...)
	buf = append(buf, field...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

func tldChunkSlot(index uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	return common.BytesToHash(crypto.Keccak256(append([]byte("config.tldChunk"), idx[:]...)))
}

// --- word helpers ---

func readUint64(db state.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.RegistrarAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db state.StateDB, slot common.Hash, n uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], n)
	db.SetState(params.RegistrarAddress, slot, word)
}

func readBool(db state.StateDB, slot common.Hash) bool {
	return db.GetState(params.RegistrarAddress, slot)[31] != 0
}

func writeBool(db state.StateDB, slot common.Hash, v bool) {
	var word common.Hash
	if v {
		word[31] = 1
	}
	db.SetState(params.RegistrarAddress, slot, word)
}

// --- singleton config ---

func getRegistryAddr(db state.StateDB) common.Address {
	return common.Address(db.GetState(params.RegistrarAddress, configSlot("registry")))
}

func setRegistryAddr(db state.StateDB, registry common.Address) {
	db.SetState(params.RegistrarAddress, configSlot("registry"), registry.Hash())
}

func getAdmin(db state.StateDB) common.Address {
	return common.Address(db.GetState(params.RegistrarAddress, configSlot("admin")))
}

func setAdmin(db state.StateDB, admin common.Address) {
	db.SetState(params.RegistrarAddress, configSlot("admin"), admin.Hash())
}

func getTLD(db state.StateDB) []byte {
	tldLen := readUint64(db, configSlot("tldLen"))
	tld := make([]byte, tldLen)
	for i := uint64(0); i*tldChunkSize < tldLen; i++ {
		word := db.GetState(params.RegistrarAddress, tldChunkSlot(i))
		start := i * tldChunkSize
		end := start + tldChunkSize
		if end > tldLen {
			end = tldLen
		}
		copy(tld[start:end], word[:end-start])
	}
	return tld
}

func setTLD(db state.StateDB, tld []byte) {
	for i := uint64(0); i*tldChunkSize < uint64(len(tld)); i++ {
		start := i * tldChunkSize
		end := start + tldChunkSize
		if end > uint64(len(tld)) {
			end = uint64(len(tld))
		}
		var word common.Hash
		copy(word[:], tld[start:end])
		db.SetState(params.RegistrarAddress, tldChunkSlot(i), word)
	}
	writeUint64(db, configSlot("tldLen"), uint64(len(tld)))
}

func getParams(db state.StateDB) params.RegistrarParams {
	return params.RegistrarParams{
		MinLabelLen:        uint32(readUint64(db, configSlot("minLabelLen"))),
		MaxLabelLen:        uint32(readUint64(db, configSlot("maxLabelLen"))),
		CommitMinAgeSecs:   readUint64(db, configSlot("commitMinAge")),
		CommitMaxAgeSecs:   readUint64(db, configSlot("commitMaxAge")),
		RenewExtensionSecs: readUint64(db, configSlot("renewExtension")),
		GracePeriodSecs:    readUint64(db, configSlot("gracePeriod")),
	}
}

func setParams(db state.StateDB, p params.RegistrarParams) {
	writeUint64(db, configSlot("minLabelLen"), uint64(p.MinLabelLen))
	writeUint64(db, configSlot("maxLabelLen"), uint64(p.MaxLabelLen))
	writeUint64(db, configSlot("commitMinAge"), p.CommitMinAgeSecs)
	writeUint64(db, configSlot("commitMaxAge"), p.CommitMaxAgeSecs)
	writeUint64(db, configSlot("renewExtension"), p.RenewExtensionSecs)
	writeUint64(db, configSlot("gracePeriod"), p.GracePeriodSecs)
}

// --- commitment pool ---

func getCommitment(db state.StateDB, commitment common.Hash) (Commitment, bool) {
	if !readBool(db, commitmentSlot(commitment, "exists")) {
		return Commitment{}, false
	}
	return Commitment{
		CreatedAt: readUint64(db, commitmentSlot(commitment, "createdAt")),
		LabelLen:  uint32(readUint64(db, commitmentSlot(commitment, "labelLen"))),
	}, true
}

func putCommitment(db state.StateDB, commitment common.Hash, c Commitment) {
	writeUint64(db, commitmentSlot(commitment, "createdAt"), c.CreatedAt)
	writeUint64(db, commitmentSlot(commitment, "labelLen"), uint64(c.LabelLen))
	writeBool(db, commitmentSlot(commitment, "exists"), true)
}

func deleteCommitment(db state.StateDB, commitment common.Hash) {
	db.SetState(params.RegistrarAddress, commitmentSlot(commitment, "createdAt"), common.Hash{})
	db.SetState(params.RegistrarAddress, commitmentSlot(commitment, "labelLen"), common.Hash{})
	db.SetState(params.RegistrarAddress, commitmentSlot(commitment, "exists"), common.Hash{})
}
