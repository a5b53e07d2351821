// Package box provides reader capabilities that use a secret's contents as a
// symmetric key: Sealer authenticated-encrypts a caller-supplied plaintext,
// Opener reverses it. The key never leaves the capability call.
package box

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/hg-anssi/secrust/pkg/compress"
	"github.com/hg-anssi/secrust/pkg/crypto/aead"
	"github.com/hg-anssi/secrust/pkg/secret"
)

// DefaultSuite is used when a Sealer or Sealed leaves the suite empty.
const DefaultSuite = "aes256-gcm"

// Sealed is an authenticated box. It is ordinary non-secret data: without
// the key it reveals nothing but lengths. Suite and Codec are bound to the
// ciphertext as associated data, so rewriting them fails authentication
// instead of steering Opener into a wrong transform.
type Sealed struct {
	Suite      string
	Codec      string
	Nonce      []byte
	Ciphertext []byte // includes the authentication tag
}

// associatedData is the canonical encoding of the box metadata
// authenticated alongside the ciphertext.
func associatedData(suite, codec string) []byte {
	return []byte("secrust.box.v1\x00" + suite + "\x00" + codec)
}

// Sealer encrypts its plaintext with the secret as key. A fresh nonce is
// drawn from the system CSPRNG on every call; reusing a Sealer value never
// reuses a nonce.
type Sealer struct {
	Suite     string // aead suite name, DefaultSuite when empty
	Codec     string // compression codec, "none" when empty
	Plaintext []byte
}

var _ secret.Reader[Sealed] = Sealer{}

func (s Sealer) ReadSecret(key []byte) (Sealed, error) {
	suite := s.Suite
	if suite == "" {
		suite = DefaultSuite
	}
	codecName := s.Codec
	if codecName == "" {
		codecName = "none"
	}
	a, err := aead.Get(suite, key)
	if err != nil {
		return Sealed{}, err
	}
	codec, err := compress.Get(codecName)
	if err != nil {
		return Sealed{}, err
	}
	pt, err := codec.Compress(s.Plaintext)
	if err != nil {
		return Sealed{}, err
	}
	nonce := make([]byte, a.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Sealed{}, err
	}
	return Sealed{
		Suite:      suite,
		Codec:      codecName,
		Nonce:      nonce,
		Ciphertext: a.Seal(nil, nonce, pt, associatedData(suite, codecName)),
	}, nil
}

// Opener decrypts a previously produced box with the secret as key. A
// tampered box, or a mismatched key or nonce, fails authentication; the AEAD
// error is returned as-is.
type Opener struct {
	Box Sealed
}

var _ secret.Reader[[]byte] = Opener{}

func (o Opener) ReadSecret(key []byte) ([]byte, error) {
	suite := o.Box.Suite
	if suite == "" {
		suite = DefaultSuite
	}
	codecName := o.Box.Codec
	if codecName == "" {
		codecName = "none"
	}
	a, err := aead.Get(suite, key)
	if err != nil {
		return nil, err
	}
	if len(o.Box.Nonce) != a.NonceSize() {
		return nil, fmt.Errorf("bad nonce length: got %d want %d", len(o.Box.Nonce), a.NonceSize())
	}
	codec, err := compress.Get(codecName)
	if err != nil {
		return nil, err
	}
	pt, err := a.Open(nil, o.Box.Nonce, o.Box.Ciphertext, associatedData(suite, codecName))
	if err != nil {
		return nil, err
	}
	return codec.Decompress(pt)
}
