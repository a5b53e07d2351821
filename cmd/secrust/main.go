package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/awnumar/memguard"

	"github.com/hg-anssi/secrust/pkg/armor"
	"github.com/hg-anssi/secrust/pkg/container"
	"github.com/hg-anssi/secrust/pkg/crypto/aead"
	"github.com/hg-anssi/secrust/pkg/crypto/box"
	"github.com/hg-anssi/secrust/pkg/crypto/dh"
	"github.com/hg-anssi/secrust/pkg/keyfile"
	"github.com/hg-anssi/secrust/pkg/secret"
	"github.com/hg-anssi/secrust/pkg/util/memzero"
	"github.com/hg-anssi/secrust/pkg/util/random"
)

var outPath string

func writeOut(b []byte) error {
	if outPath == "" {
		_, err := os.Stdout.Write(b)
		return err
	}
	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(b)
	return err
}

// Fatal exits go through memguard.SafeExit so every live locked buffer is
// wiped first; a plain os.Exit would skip the deferred Destroy calls and
// leave key material in memory.
func fatalIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		memguard.SafeExit(1)
	}
}

func fatalf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	memguard.SafeExit(1)
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "keygen":
			keygen(os.Args[2:])
			return
		case "open":
			open(os.Args[2:])
			return
		case "pub":
			pub(os.Args[2:])
			return
		}
	}
	seal(os.Args[1:])
}

// loadKey fills a pinned 32-byte secret from the key file at path. The
// caller owns the returned secret and must Destroy it.
func loadKey(path string) *secret.Secret {
	sec := secret.New(aead.KeyLen)
	n, err := secret.Update(sec, keyfile.FromFile{Path: path})
	if err != nil {
		sec.Destroy()
		fatalIf(err)
	}
	if n != aead.KeyLen {
		sec.Destroy()
		fatalf("short key file %s: got %d bytes, want %d", path, n, aead.KeyLen)
	}
	return sec
}

func readInput(rest []string) []byte {
	if len(rest) > 0 && rest[0] != "-" {
		b, err := os.ReadFile(rest[0])
		fatalIf(err)
		return b
	}
	b, err := io.ReadAll(os.Stdin)
	fatalIf(err)
	return b
}

func seal(args []string) {
	fs := flag.NewFlagSet("seal", flag.ExitOnError)
	var keyPath, suite, codec string
	var outArmor bool
	fs.StringVar(&keyPath, "key", "", "key file (32 raw bytes, mode 0600)")
	fs.StringVar(&suite, "suite", box.DefaultSuite, "aead suite: aes256-gcm|aes256-ocb|chacha20poly1305")
	fs.StringVar(&codec, "codec", "none", "compression: none|zip|zlib|bzip2")
	fs.BoolVar(&outArmor, "armor", false, "ASCII armor output (default: binary)")
	fs.StringVar(&outPath, "out", "", "output file (default: stdout)")
	fatalIf(fs.Parse(args))

	if keyPath == "" {
		fatalf("missing -key")
	}
	plaintext := readInput(fs.Args())

	sec := loadKey(keyPath)
	defer sec.Destroy()

	sealed, err := secret.Read(sec, box.Sealer{Suite: suite, Codec: codec, Plaintext: plaintext})
	fatalIf(err)

	var buf bytes.Buffer
	fatalIf(container.Write(&buf, sealed))
	if outArmor {
		fatalIf(writeOut(armor.Encode(buf.Bytes())))
	} else {
		fatalIf(writeOut(buf.Bytes()))
	}
}

func open(args []string) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	var keyPath string
	fs.StringVar(&keyPath, "key", "", "key file (32 raw bytes, mode 0600)")
	fs.StringVar(&outPath, "out", "", "output file (default: stdout)")
	fatalIf(fs.Parse(args))

	if keyPath == "" {
		fatalf("missing -key")
	}
	msg := readInput(fs.Args())
	if dec, ok := armor.Decode(msg); ok {
		msg = dec
	}
	sealed, err := container.Read(bytes.NewReader(msg))
	fatalIf(err)

	sec := loadKey(keyPath)
	defer sec.Destroy()

	plaintext, err := secret.Read(sec, box.Opener{Box: sealed})
	fatalIf(err)
	fatalIf(writeOut(plaintext))
}

func keygen(args []string) {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	var out string
	fs.StringVar(&out, "out", "", "key file to write (32 raw bytes, mode 0600)")
	fatalIf(fs.Parse(args))

	if out == "" {
		fatalf("missing -out")
	}
	key := random.Bytes(aead.KeyLen)
	defer memzero.Wipe(key)

	if dir := filepath.Dir(out); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	fatalIf(err)
	defer f.Close()
	_, err = f.Write(key)
	fatalIf(err)
}

func pub(args []string) {
	fs := flag.NewFlagSet("pub", flag.ExitOnError)
	var keyPath string
	fs.StringVar(&keyPath, "key", "", "key file (32 raw bytes, mode 0600)")
	fatalIf(fs.Parse(args))

	if keyPath == "" {
		fatalf("missing -key")
	}
	sec := loadKey(keyPath)
	defer sec.Destroy()

	pk, err := secret.Read(sec, dh.PublicKey{})
	fatalIf(err)
	fmt.Println(base64.StdEncoding.EncodeToString(pk))
}
