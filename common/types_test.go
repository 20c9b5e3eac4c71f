package common

import (
	"bytes"
	"testing"
)

func TestBytesToHashPadding(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02})
	if h[HashLength-1] != 0x02 || h[HashLength-2] != 0x01 {
		t.Fatalf("short input not right-aligned: %x", h)
	}
	for i := 0; i < HashLength-2; i++ {
		if h[i] != 0 {
			t.Fatalf("expected zero padding at %d: %x", i, h)
		}
	}
}

func TestBytesToHashCropping(t *testing.T) {
	long := make([]byte, HashLength+4)
	for i := range long {
		long[i] = byte(i)
	}
	h := BytesToHash(long)
	if !bytes.Equal(h.Bytes(), long[4:]) {
		t.Fatalf("long input not left-cropped: %x", h)
	}
}

func TestHexRoundTrip(t *testing.T) {
	in := "0x00000000000000000000000000000000000000000000000000000000deadbeef"
	if got := HexToHash(in).Hex(); got != in {
		t.Fatalf("hash hex round trip: have %s want %s", got, in)
	}
}

func TestAddressIsZero(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Fatal("zero address should report IsZero")
	}
	a[0] = 1
	if a.IsZero() {
		t.Fatal("non-zero address should not report IsZero")
	}
}

func TestIsHexAddress(t *testing.T) {
	valid := "0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000"[:62]
	if !IsHexAddress(valid) {
		t.Fatalf("expected %s to be a valid address", valid)
	}
	if IsHexAddress("0x1234") {
		t.Fatal("short string accepted as address")
	}
	if IsHexAddress("0xgg00000000000000000000000000000000000000000000000000000000000000") {
		t.Fatal("non-hex string accepted as address")
	}
}
