package crypto

import (
	"bytes"
	"testing"
)

func TestSha256KnownVector(t *testing.T) {
	// sha256("abc")
	want := "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := Sha256Hash([]byte("abc")).Hex(); got != want {
		t.Fatalf("sha256 mismatch: have %s want %s", got, want)
	}
}

func TestSha256MultiWriteEqualsConcat(t *testing.T) {
	a := Sha256([]byte("foo"), []byte("bar"))
	b := Sha256([]byte("foobar"))
	if !bytes.Equal(a, b) {
		t.Fatalf("split input hashed differently: %x vs %x", a, b)
	}
}

func TestKeccak256KnownVector(t *testing.T) {
	// keccak256("") — the well-known empty-input digest.
	want := "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := Keccak256Hash().Hex(); got != want {
		t.Fatalf("keccak256 mismatch: have %s want %s", got, want)
	}
}

func TestHashesAreDisjoint(t *testing.T) {
	in := []byte("alice")
	if bytes.Equal(Sha256(in), Keccak256(in)) {
		t.Fatal("sha256 and keccak256 collide on test input")
	}
}
