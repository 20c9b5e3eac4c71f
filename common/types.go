// Package common contains the fixed-size value types shared by every
// subsystem: 32-byte hashes (namehashes, commitments, storage slots) and
// 32-byte addresses (the canonical binary form of a Stellar account id).
package common

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashLength is the expected length of a hash, in bytes.
	HashLength = 32
	// AddressLength is the expected length of an address, in bytes.
	// Stellar account ids are 32-byte ed25519 public keys; this is the raw
	// form, not the human-readable strkey encoding.
	AddressLength = 32
)

// Hash represents a 32-byte value: a namehash, a commitment hash, or a
// derived storage slot.
type Hash [HashLength]byte

// BytesToHash sets b to hash, left-truncating if b is longer than 32 bytes
// and left-padding if shorter.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash parses a hex string (with or without 0x prefix) into a Hash.
func HexToHash(s string) Hash { return BytesToHash(fromHex(s)) }

// SetBytes sets the hash to the value of b. If b is larger than 32 bytes,
// b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hash as a 0x-prefixed hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// IsZero reports whether the hash is all zero bytes.
func (h Hash) IsZero() bool { return h == Hash{} }

// Format implements fmt.Formatter, forcing the byte slice to be formatted
// as is, without going through the stringer interface used for logging.
func (h Hash) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%"+string(c), h[:])
}

// Address represents the 32-byte canonical binary form of an account.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b, left-truncating or
// left-padding as needed.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress parses a hex string (with or without 0x prefix) into an
// Address.
func HexToAddress(s string) Address { return BytesToAddress(fromHex(s)) }

// SetBytes sets the address to the value of b. If b is larger than 32
// bytes, b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte { return a[:] }

// Hash converts the address to a Hash, useful when an address is stored in
// a 32-byte storage word.
func (a Address) Hash() Hash { return BytesToHash(a[:]) }

// Hex returns the address as a 0x-prefixed hex string.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// IsZero reports whether the address is the null address. The null address
// is never a valid owner or resolver.
func (a Address) IsZero() bool { return a == Address{} }

// IsHexAddress reports whether s is a valid hex encoding of an address.
func IsHexAddress(s string) bool {
	if has0xPrefix(s) {
		s = s[2:]
	}
	return len(s) == 2*AddressLength && isHex(s)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexCharacter(s[i]) {
			return false
		}
	}
	return true
}

func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}
