package random

import (
	"crypto/rand"
	"io"
)

// Bytes returns n bytes from the system CSPRNG.
func Bytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic("random: system entropy unavailable: " + err.Error())
	}
	return b
}
