package memzero

import "runtime"

// Wipe zeroes b in place. Meant for transient copies of sensitive data that
// live outside a locked secret buffer (derived keys, staging arrays). The
// noinline directive reduces the chance of the compiler eliding the writes.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
