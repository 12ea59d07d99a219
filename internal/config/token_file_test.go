package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForToken(t *testing.T, f *FileToken, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if f.Token() == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected token %q, got %q", want, f.Token())
}

func TestFileToken_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("first\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := NewFileToken(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	if f.Token() != "first" {
		t.Fatalf("expected token first, got %q", f.Token())
	}

	if err := os.WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitForToken(t, f, "second")

	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	waitForToken(t, f, "")
}

func TestFileToken_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := NewFileToken(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	tmp := filepath.Join(dir, "token.tmp")
	if err := os.WriteFile(tmp, []byte("rotated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	waitForToken(t, f, "rotated")
}

func TestNewFileToken_MissingFile(t *testing.T) {
	if _, err := NewFileToken(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing token file")
	}
}
