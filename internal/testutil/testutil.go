// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// Entry is one member of a fixture archive. Names ending in "/" become directory entries.
type Entry struct {
	Name string
	Body string
	// Mode sets the entry's permission bits; zero leaves them unset.
	Mode os.FileMode
}

// File returns a file entry with body.
func File(name string, body string) Entry {
	return Entry{Name: name, Body: body}
}

// Dir returns a directory entry; a trailing slash is added when missing.
func Dir(name string) Entry {
	if len(name) == 0 || name[len(name)-1] != '/' {
		name += "/"
	}
	return Entry{Name: name}
}

// BuildZip returns the bytes of a zip archive holding entries in order.
// Names are stored verbatim, so callers can build archives with hostile paths.
func BuildZip(t *testing.T, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		header := &zip.FileHeader{Name: entry.Name, Method: zip.Deflate}
		if entry.Mode != 0 {
			header.SetMode(entry.Mode)
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", entry.Name, err)
		}
		if entry.Body == "" {
			continue
		}
		if _, err := w.Write([]byte(entry.Body)); err != nil {
			t.Fatalf("write zip entry %s: %v", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a fixture archive into dir and returns its path.
func WriteZip(t *testing.T, dir string, name string, entries ...Entry) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildZip(t, entries...), 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

// Symlink creates link pointing at target, skipping the test where the platform or
// account cannot create symbolic links.
func Symlink(t *testing.T, target string, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}
