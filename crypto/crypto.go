// Package crypto provides the hashing primitives used by the name service.
//
// SHA-256 is the protocol hash: namehash folding and registration
// commitments are defined over it. Keccak-256 is used only internally for
// storage-slot derivation, keeping the two key spaces disjoint.
package crypto

import (
	"crypto/sha256"

	"github.com/ScottyPoi/stellar-name-service/common"
	"golang.org/x/crypto/sha3"
)

// Sha256 calculates and returns the SHA-256 hash of the input data.
func Sha256(data ...[]byte) []byte {
	h := sha256.New()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Sha256Hash calculates and returns the SHA-256 hash of the input data,
// converting it to a common.Hash.
func Sha256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Sha256(data...))
}

// Keccak256 calculates and returns the Keccak-256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash calculates and returns the Keccak-256 hash of the input
// data, converting it to a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}
