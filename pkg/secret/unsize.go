package secret

import "github.com/awnumar/memguard"

// Viewer is implemented by sized containers that can expose their contents
// as a borrowed slice sharing the same storage. Capability boundaries only
// ever accept the slice form: passing a sized array by value would leave a
// copy of its contents on the caller's stack.
type Viewer[E any] interface {
	Slice() []E
}

// Key128, Key192 and Key256 are fixed-size key buffers for the AES key
// lengths this module deals in. Slice is on the pointer receiver so the view
// borrows the original array rather than a copy.
type (
	Key128 [16]byte
	Key192 [24]byte
	Key256 [32]byte
)

func (k *Key128) Slice() []byte { return k[:] }
func (k *Key192) Slice() []byte { return k[:] }
func (k *Key256) Slice() []byte { return k[:] }

// Wipe overwrites the key with zero bytes.
func (k *Key128) Wipe() { memguard.WipeBytes(k[:]) }
func (k *Key192) Wipe() { memguard.WipeBytes(k[:]) }
func (k *Key256) Wipe() { memguard.WipeBytes(k[:]) }

// Buf is a growable buffer of E exposing itself as a borrowed view. A
// mutable text secret is a Buf[byte]; Go strings are immutable and have no
// sized specialization here.
type Buf[E any] []E

func (b Buf[E]) Slice() []E { return b }
