package dh

import (
	"fmt"

	"github.com/cloudflare/circl/dh/x25519"

	"github.com/hg-anssi/secrust/pkg/secret"
	"github.com/hg-anssi/secrust/pkg/util/memzero"
)

// PublicKey derives the X25519 public key for a 32-byte private scalar held
// in a secret. The scalar itself never leaves the call: only the public key
// is returned.
type PublicKey struct{}

var _ secret.Reader[[]byte] = PublicKey{}

func (PublicKey) ReadSecret(view []byte) ([]byte, error) {
	if len(view) != x25519.Size {
		return nil, fmt.Errorf("bad private key length: got %d want %d", len(view), x25519.Size)
	}
	// KeyGen wants a sized array; the transient copy is wiped before return.
	var sk, pk x25519.Key
	copy(sk[:], view)
	x25519.KeyGen(&pk, &sk)
	memzero.Wipe(sk[:])
	return pk[:], nil
}
