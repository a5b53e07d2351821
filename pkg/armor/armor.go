// Package armor wraps binary envelopes in an ASCII block for transports that
// mangle raw bytes.
package armor

import (
	"bytes"
	"encoding/base64"
)

const blockType = "SECRUST MESSAGE"

// Encode wraps raw bytes in an ASCII-armored block, base64 at 64 columns.
func Encode(raw []byte) []byte {
	b64 := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(b64, raw)

	var buf bytes.Buffer
	buf.WriteString("-----BEGIN " + blockType + "-----\n")
	for i := 0; i < len(b64); i += 64 {
		end := i + 64
		if end > len(b64) {
			end = len(b64)
		}
		buf.Write(b64[i:end])
		buf.WriteByte('\n')
	}
	buf.WriteString("-----END " + blockType + "-----\n")
	return buf.Bytes()
}

// Decode extracts the raw bytes from an armored block. ok is false when the
// input is not an armored message.
func Decode(in []byte) ([]byte, bool) {
	begin := []byte("-----BEGIN " + blockType + "-----")
	start := bytes.Index(in, begin)
	if start < 0 {
		return nil, false
	}
	in = in[start+len(begin):]
	end := bytes.Index(in, []byte("-----END "+blockType+"-----"))
	if end < 0 {
		return nil, false
	}

	lines := bytes.Fields(in[:end])
	b64 := bytes.Join(lines, nil)
	out := make([]byte, base64.StdEncoding.DecodedLen(len(b64)))
	n, err := base64.StdEncoding.Decode(out, b64)
	if err != nil {
		return nil, false
	}
	return out[:n], true
}
