// Package namehash derives the 32-byte identifier of a hierarchical name.
//
// The identifier is a SHA-256 fold over the label path from root to leaf:
//
//	node_0 = 0^32
//	node_i = H(node_{i-1} || H(label_i))
//
// Labels are hashed individually before being folded in. Hashing the label
// hash rather than the raw label keeps label boundaries and node boundaries
// in separate domains, so no concatenation of labels can collide with a
// different split of the same bytes.
package namehash

import (
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/crypto"
	"github.com/ScottyPoi/stellar-name-service/params"
)

// ErrInvalidLabel is returned for an empty label sequence, an empty label,
// or a label longer than params.MaxLabelLength bytes.
var ErrInvalidLabel = errors.New("namehash: invalid label")

// nameCache memoizes full-name hashes for the registrar's availability
// checks, which recompute the same TLD-qualified names repeatedly.
var nameCache, _ = lru.New(4096)

// Hash computes the namehash of the given label sequence. Labels run
// root-first: Hash([][]byte{tld, label}) hashes label under tld. Callers
// holding dotted names should use HashName instead.
func Hash(labels [][]byte) (common.Hash, error) {
	if len(labels) == 0 {
		return common.Hash{}, ErrInvalidLabel
	}
	var node common.Hash
	for _, label := range labels {
		if len(label) == 0 || len(label) > params.MaxLabelLength {
			return common.Hash{}, ErrInvalidLabel
		}
		labelHash := crypto.Sha256(label)
		node = crypto.Sha256Hash(node.Bytes(), labelHash)
	}
	return node, nil
}

// MustHash is like Hash but panics on invalid labels. It is intended for
// statically known names.
func MustHash(labels [][]byte) common.Hash {
	h, err := Hash(labels)
	if err != nil {
		panic(err)
	}
	return h
}

// HashLeaf extends an existing node hash by one label, placing the label
// directly under the parent node.
func HashLeaf(parent common.Hash, label []byte) (common.Hash, error) {
	if len(label) == 0 || len(label) > params.MaxLabelLength {
		return common.Hash{}, ErrInvalidLabel
	}
	return crypto.Sha256Hash(parent.Bytes(), crypto.Sha256(label)), nil
}

// Split parses a dotted name ("alice.stellar") into the root-first label
// sequence ([][]byte{"stellar", "alice"}) expected by Hash.
func Split(name string) ([][]byte, error) {
	if name == "" {
		return nil, ErrInvalidLabel
	}
	parts := strings.Split(name, ".")
	labels := make([][]byte, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" || len(parts[i]) > params.MaxLabelLength {
			return nil, ErrInvalidLabel
		}
		labels = append(labels, []byte(parts[i]))
	}
	return labels, nil
}

// HashName computes the namehash of a dotted name, memoizing results.
func HashName(name string) (common.Hash, error) {
	if cached, ok := nameCache.Get(name); ok {
		return cached.(common.Hash), nil
	}
	labels, err := Split(name)
	if err != nil {
		return common.Hash{}, err
	}
	h, err := Hash(labels)
	if err != nil {
		return common.Hash{}, err
	}
	nameCache.Add(name, h)
	return h, nil
}
