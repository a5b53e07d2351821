// Package secret holds sensitive byte material (keys, passwords) in pinned,
// self-wiping buffers and gates every access through explicit capability
// values.
//
// A Secret's storage is a single memguard locked buffer: one mmap'd,
// mlock'd, guard-paged allocation whose address never changes for its
// lifetime and whose contents are wiped when the owner calls Destroy. The
// container never hands out an owned copy of its contents; readers and
// updaters receive a borrowed slice view scoped to a single call.
package secret

import (
	"github.com/awnumar/memguard"
)

// Secret owns a fixed-size sensitive buffer. Construct with New, access via
// Read and Update, and Destroy when done. A Secret carries no locking: it
// belongs to one owner, and concurrent use requires the owner's own
// synchronization.
type Secret struct {
	buf *memguard.LockedBuffer
}

// New returns an n-byte Secret filled with zero bytes. The backing buffer is
// allocated at its final address immediately, so a reader invoked before the
// first update observes all zeros, never uninitialized memory. n must be
// positive.
func New(n int) *Secret {
	if n <= 0 {
		panic("secret: non-positive size")
	}
	return &Secret{buf: memguard.NewBuffer(n)}
}

// Read invokes r with a read-only borrowed view of the secret's contents and
// passes r's result and error through untouched. The underlying pages are
// made immutable for the span of the call: a reader that writes through the
// view faults instead of silently mutating key material.
func Read[A any](s *Secret, r Reader[A]) (A, error) {
	s.mustBeAlive()
	s.buf.Freeze()
	defer s.buf.Melt()
	return r.ReadSecret(s.buf.Bytes())
}

// Update invokes u with a mutable borrowed view of the secret's contents and
// passes u's result and error through untouched.
func Update[A any](s *Secret, u Updater[A]) (A, error) {
	s.mustBeAlive()
	return u.UpdateSecret(s.buf.Bytes())
}

// Clone returns an independent Secret with the same contents in its own
// locked buffer. Each clone carries its own wipe obligation; destroying one
// leaves the other intact.
func (s *Secret) Clone() *Secret {
	s.mustBeAlive()
	c := memguard.NewBuffer(s.buf.Size())
	copy(c.Bytes(), s.buf.Bytes())
	return &Secret{buf: c}
}

// Size reports the buffer length in bytes.
func (s *Secret) Size() int {
	s.mustBeAlive()
	return s.buf.Size()
}

// Destroy wipes the buffer and releases it. Idempotent. Every other
// operation panics once the Secret is destroyed.
func (s *Secret) Destroy() {
	s.buf.Destroy()
}

// Destroyed reports whether the buffer has been wiped and released.
func (s *Secret) Destroyed() bool {
	return !s.buf.IsAlive()
}

func (s *Secret) mustBeAlive() {
	if !s.buf.IsAlive() {
		panic("secret: use after destroy")
	}
}
