package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hg-anssi/secrust/pkg/armor"
	"github.com/hg-anssi/secrust/pkg/container"
	"github.com/hg-anssi/secrust/pkg/crypto/box"
	"github.com/hg-anssi/secrust/pkg/keyfile"
	"github.com/hg-anssi/secrust/pkg/secret"
)

func buildCLIBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "secrust")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	cmd := exec.Command("go", "build", "-o", bin)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	cmd.Dir = wd
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}
	return bin
}

func TestCLISealOpenRoundTrip(t *testing.T) {
	bin := buildCLIBinary(t)
	dir := t.TempDir()

	keyPath := filepath.Join(dir, "key")
	if out, err := exec.Command(bin, "keygen", "-out", keyPath).CombinedOutput(); err != nil {
		t.Fatalf("keygen failed: %v\n%s", err, out)
	}
	st, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Size() != 32 {
		t.Fatalf("key file is %d bytes, want 32", st.Size())
	}
	if runtime.GOOS != "windows" && st.Mode().Perm() != 0o600 {
		t.Fatalf("key file mode %o, want 0600", st.Mode().Perm())
	}

	plain := []byte("cli round trip body")
	plainPath := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(plainPath, plain, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sealedPath := filepath.Join(dir, "plain.srt")
	if out, err := exec.Command(bin, "-key", keyPath, "-codec", "zlib", "-out", sealedPath, plainPath).CombinedOutput(); err != nil {
		t.Fatalf("seal failed: %v\n%s", err, out)
	}
	openPath := filepath.Join(dir, "plain.out")
	if out, err := exec.Command(bin, "open", "-key", keyPath, "-out", openPath, sealedPath).CombinedOutput(); err != nil {
		t.Fatalf("open failed: %v\n%s", err, out)
	}
	got, err := os.ReadFile(openPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("decrypted output mismatch: got %q want %q", got, plain)
	}
}

func TestCLIFatalOnLooseKeyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix file modes")
	}
	bin := buildCLIBinary(t)
	dir := t.TempDir()

	keyPath := filepath.Join(dir, "key")
	if err := os.WriteFile(keyPath, make([]byte, 32), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cmd := exec.Command(bin, "-key", keyPath)
	cmd.Stdin = bytes.NewReader([]byte("x"))
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("seal with 0644 key file succeeded:\n%s", out)
	}
	if ee, ok := err.(*exec.ExitError); !ok || ee.ExitCode() != 1 {
		t.Fatalf("exit status = %v, want 1", err)
	}
	if !bytes.Contains(out, []byte("permissions")) {
		t.Fatalf("missing permissions diagnostic:\n%s", out)
	}
}

// Full flow: key file fixture -> pinned secret -> seal -> open.
func TestSealOpenEndToEnd(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(keyPath, []byte("0123456789abcdef0123456789abcdef"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sec := secret.New(32)
	defer sec.Destroy()
	n, err := secret.Update(sec, keyfile.FromFile{Path: keyPath})
	if err != nil {
		t.Fatalf("update from key file: %v", err)
	}
	if n != 32 {
		t.Fatalf("key file read %d bytes, want 32", n)
	}

	plaintext := []byte("secret message!!!")
	sealed, err := secret.Read(sec, box.Sealer{Plaintext: plaintext})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	got, err := secret.Read(sec, box.Opener{Box: sealed})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip: got %q, want %q", got, plaintext)
	}
}

// Same flow through the envelope and armor layers the CLI uses.
func TestEnvelopeArmorEndToEnd(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(keyPath, []byte("0123456789abcdef0123456789abcdef"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	sec := loadKey(keyPath)
	defer sec.Destroy()

	plaintext := []byte("secret message!!!")
	sealed, err := secret.Read(sec, box.Sealer{Suite: "chacha20poly1305", Codec: "zlib", Plaintext: plaintext})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	var buf bytes.Buffer
	if err := container.Write(&buf, sealed); err != nil {
		t.Fatalf("container write: %v", err)
	}
	armored := armor.Encode(buf.Bytes())

	raw, ok := armor.Decode(armored)
	if !ok {
		t.Fatalf("armor decode failed")
	}
	reread, err := container.Read(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("container read: %v", err)
	}
	got, err := secret.Read(sec, box.Opener{Box: reread})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip: got %q, want %q", got, plaintext)
	}
}
