package namehash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/crypto"
)

func TestDeterministic(t *testing.T) {
	labels := [][]byte{[]byte("stellar"), []byte("alice")}
	a, err := Hash(labels)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := Hash(labels)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a != b {
		t.Fatalf("same labels hashed differently: %s vs %s", a, b)
	}
}

func TestSingleLabelFold(t *testing.T) {
	// One label under the zero root must equal H(0^32 || H(label)).
	var root common.Hash
	want := crypto.Sha256Hash(root.Bytes(), crypto.Sha256([]byte("stellar")))

	got, err := Hash([][]byte{[]byte("stellar")})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if got != want {
		t.Fatalf("fold mismatch: have %s want %s", got, want)
	}
}

func TestOrderSensitive(t *testing.T) {
	one, _ := Hash([][]byte{[]byte("foo"), []byte("bar")})
	two, _ := Hash([][]byte{[]byte("bar"), []byte("foo")})
	if one == two {
		t.Fatal("label order did not affect the hash")
	}
}

func TestLabelBoundarySeparation(t *testing.T) {
	// ["ab","c"] and ["a","bc"] concatenate identically; the two-step
	// hashing must still keep them apart.
	one, _ := Hash([][]byte{[]byte("ab"), []byte("c")})
	two, _ := Hash([][]byte{[]byte("a"), []byte("bc")})
	if one == two {
		t.Fatal("label boundary ambiguity")
	}
}

func TestRejectsEmptySequence(t *testing.T) {
	if _, err := Hash(nil); err != ErrInvalidLabel {
		t.Fatalf("empty sequence: want ErrInvalidLabel, got %v", err)
	}
}

func TestRejectsEmptyLabel(t *testing.T) {
	if _, err := Hash([][]byte{[]byte("stellar"), {}}); err != ErrInvalidLabel {
		t.Fatalf("empty label: want ErrInvalidLabel, got %v", err)
	}
}

func TestRejectsOverlongLabel(t *testing.T) {
	long := bytes.Repeat([]byte{'a'}, 64)
	if _, err := Hash([][]byte{long}); err != ErrInvalidLabel {
		t.Fatalf("64-byte label: want ErrInvalidLabel, got %v", err)
	}
	// 63 bytes is the maximum and must pass.
	if _, err := Hash([][]byte{long[:63]}); err != nil {
		t.Fatalf("63-byte label rejected: %v", err)
	}
}

func TestUnicodeLabelStability(t *testing.T) {
	label := []byte("stêllar🚀")
	a, _ := Hash([][]byte{label})
	b, _ := Hash([][]byte{label})
	if a != b {
		t.Fatal("utf-8 label hashed unstably")
	}
}

func TestHashLeafMatchesFullFold(t *testing.T) {
	tldNode, _ := Hash([][]byte{[]byte("stellar")})
	viaLeaf, err := HashLeaf(tldNode, []byte("alice"))
	if err != nil {
		t.Fatalf("leaf: %v", err)
	}
	full, _ := Hash([][]byte{[]byte("stellar"), []byte("alice")})
	if viaLeaf != full {
		t.Fatalf("leaf extension diverges from full fold: %s vs %s", viaLeaf, full)
	}
}

func TestSplitRootFirst(t *testing.T) {
	labels, err := Split("alice.stellar")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(labels) != 2 || string(labels[0]) != "stellar" || string(labels[1]) != "alice" {
		t.Fatalf("unexpected label order: %q", labels)
	}
}

func TestSplitRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", ".", "alice.", ".stellar", "alice..stellar", strings.Repeat("a", 64) + ".stellar"} {
		if _, err := Split(name); err != ErrInvalidLabel {
			t.Errorf("Split(%q): want ErrInvalidLabel, got %v", name, err)
		}
	}
}

func TestHashNameMatchesHash(t *testing.T) {
	viaName, err := HashName("alice.stellar")
	if err != nil {
		t.Fatalf("hash name: %v", err)
	}
	direct, _ := Hash([][]byte{[]byte("stellar"), []byte("alice")})
	if viaName != direct {
		t.Fatalf("HashName diverges: %s vs %s", viaName, direct)
	}
	// Second call comes from the cache and must agree.
	cached, _ := HashName("alice.stellar")
	if cached != direct {
		t.Fatalf("cached hash diverges: %s vs %s", cached, direct)
	}
}
