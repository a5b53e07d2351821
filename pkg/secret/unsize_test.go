package secret

import (
	"bytes"
	"testing"
)

func TestKeySliceBorrowsStorage(t *testing.T) {
	var k Key256
	view := k.Slice()
	view[0] = 0xFF
	if k[0] != 0xFF {
		t.Fatalf("slice view does not share the array's storage")
	}
	if len(view) != 32 {
		t.Fatalf("view length %d, want 32", len(view))
	}
}

func TestKeyWipe(t *testing.T) {
	var k Key128
	for i := range k {
		k[i] = byte(i + 1)
	}
	k.Wipe()
	if !bytes.Equal(k.Slice(), make([]byte, 16)) {
		t.Fatalf("wipe left residue: %x", k.Slice())
	}
}

func TestBufSliceBorrowsStorage(t *testing.T) {
	b := Buf[byte](make([]byte, 3))
	b.Slice()[1] = 7
	if b[1] != 7 {
		t.Fatalf("buf view does not share storage")
	}
}
