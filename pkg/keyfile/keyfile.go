// Package keyfile provides updater capabilities that provision secret
// contents from external sources: a key file on disk, or a passphrase run
// through a KDF. Neither retains what it wrote past the call.
package keyfile

import (
	"errors"
	"io"
	"os"

	"golang.org/x/crypto/argon2"

	"github.com/hg-anssi/secrust/pkg/secret"
	"github.com/hg-anssi/secrust/pkg/util/memzero"
	"github.com/hg-anssi/secrust/pkg/util/perm"
)

// FromFile fills a secret with the leading bytes of a key file and reports
// how many bytes were read. It never reads more than the secret holds; a
// short read is not an error, the caller decides whether the count is
// acceptable. The file must be mode 0600.
type FromFile struct {
	Path string
}

var _ secret.Updater[int] = FromFile{}

func (u FromFile) UpdateSecret(dst []byte) (int, error) {
	if err := perm.Check0600(u.Path); err != nil {
		return 0, err
	}
	f, err := os.Open(u.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := f.Read(dst)
	if err == io.EOF {
		// empty file: a zero-byte short read
		return n, nil
	}
	return n, err
}

// Argon2id parameters, as used across this module for key derivation.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Passphrase fills a secret with an Argon2id digest of a passphrase, sized
// to the secret. The intermediate derived key is wiped before return.
type Passphrase struct {
	Pass []byte
	Salt []byte
}

var _ secret.Updater[int] = Passphrase{}

func (u Passphrase) UpdateSecret(dst []byte) (int, error) {
	if len(u.Salt) == 0 {
		return 0, errors.New("empty salt")
	}
	dk := argon2.IDKey(u.Pass, u.Salt, argonTime, argonMemory, argonThreads, uint32(len(dst)))
	n := copy(dst, dk)
	memzero.Wipe(dk)
	return n, nil
}
