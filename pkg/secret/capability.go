package secret

import "crypto/subtle"

// Reader is the read capability: it is given a borrowed, read-only view of a
// secret's contents for the span of one call and produces a result of its
// own choosing.
//
// Obligations on every implementation, not enforceable at the type level:
// do not keep the view past the call, do not copy it into longer-lived
// storage, and do not leak it through logs, error text, or serialization.
type Reader[A any] interface {
	ReadSecret(view []byte) (A, error)
}

// Updater is the write capability: it is given a borrowed, mutable view of a
// secret's contents for the span of one call. The same retention and leak
// obligations as Reader apply.
type Updater[A any] interface {
	UpdateSecret(view []byte) (A, error)
}

// ReaderFunc lets a plain function act as a Reader.
type ReaderFunc[A any] func(view []byte) (A, error)

func (f ReaderFunc[A]) ReadSecret(view []byte) (A, error) { return f(view) }

// UpdaterFunc lets a plain function act as an Updater.
type UpdaterFunc[A any] func(view []byte) (A, error)

func (f UpdaterFunc[A]) UpdateSecret(view []byte) (A, error) { return f(view) }

// CopyFrom returns an updater that copies v's contents into the secret and
// reports the number of bytes copied. It never writes past the secret's end.
func CopyFrom(v Viewer[byte]) UpdaterFunc[int] {
	return func(dst []byte) (int, error) {
		return copy(dst, v.Slice()), nil
	}
}

// Equal returns a reader that compares the secret's contents to v in
// constant time.
func Equal(v Viewer[byte]) ReaderFunc[bool] {
	return func(view []byte) (bool, error) {
		return subtle.ConstantTimeCompare(view, v.Slice()) == 1, nil
	}
}
