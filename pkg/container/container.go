// Package container defines the on-disk envelope for a sealed box: a magic
// prefix, a length-prefixed JSON header, then the ciphertext. The envelope
// carries no key material.
package container

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hg-anssi/secrust/pkg/crypto/box"
)

const magic = "SRT1"

// Version written into new envelopes.
const Version = 1

// maxHeaderLen caps the attacker-controlled header length field; headers are
// a few hundred bytes, so anything larger is a malformed or hostile envelope.
const maxHeaderLen = 8 << 10

type Header struct {
	Version int       `json:"v"`
	Created time.Time `json:"t"`
	Suite   string    `json:"sym"`
	Codec   string    `json:"c"`
	Nonce   []byte    `json:"n"`
}

// Write serializes a sealed box to w.
func Write(w io.Writer, sealed box.Sealed) error {
	h := Header{
		Version: Version,
		Created: time.Now().UTC(),
		Suite:   sealed.Suite,
		Codec:   sealed.Codec,
		Nonce:   sealed.Nonce,
	}
	hb, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(hb)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(hb); err != nil {
		return err
	}
	_, err = w.Write(sealed.Ciphertext)
	return err
}

// Read parses an envelope back into a sealed box.
func Read(r io.Reader) (box.Sealed, error) {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return box.Sealed{}, err
	}
	if string(m[:]) != magic {
		return box.Sealed{}, fmt.Errorf("bad magic")
	}
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return box.Sealed{}, err
	}
	hlen := binary.BigEndian.Uint32(lenBuf[:])
	if hlen > maxHeaderLen {
		return box.Sealed{}, fmt.Errorf("header length %d exceeds %d", hlen, maxHeaderLen)
	}
	hb := make([]byte, hlen)
	if _, err := io.ReadFull(r, hb); err != nil {
		return box.Sealed{}, err
	}
	var h Header
	if err := json.Unmarshal(hb, &h); err != nil {
		return box.Sealed{}, err
	}
	if h.Version != Version {
		return box.Sealed{}, fmt.Errorf("unsupported envelope version: %d", h.Version)
	}
	ct, err := io.ReadAll(r)
	if err != nil {
		return box.Sealed{}, err
	}
	return box.Sealed{
		Suite:      h.Suite,
		Codec:      h.Codec,
		Nonce:      h.Nonce,
		Ciphertext: ct,
	}, nil
}
