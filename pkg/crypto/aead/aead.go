package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/ProtonMail/go-crypto/ocb"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeyLen is the key length shared by every suite in the registry.
const KeyLen = 32

// Get returns the named AEAD suite keyed with key.
func Get(name string, key []byte) (cipher.AEAD, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("bad key length: got %d want %d", len(key), KeyLen)
	}
	switch name {
	case "aes256-gcm":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case "aes256-ocb":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		// OCB with 15-byte nonce, 16-byte tag.
		return ocb.NewOCBWithNonceAndTagSize(block, 15, 16)
	case "chacha20poly1305":
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("unsupported suite: %s", name)
	}
}

// Suites lists the registered suite names.
func Suites() []string {
	return []string{"aes256-gcm", "aes256-ocb", "chacha20poly1305"}
}
