package install

import (
	"io"
	"os"
)

// System abstracts the filesystem operations used by extraction, rollback and preview.
// Tests substitute a fault-injecting implementation.
type System interface {
	Lstat(name string) (os.FileInfo, error)
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	Mkdir(path string, perm os.FileMode) error
	Remove(name string) error
	Create(name string, perm os.FileMode) (io.WriteCloser, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Lstat returns a FileInfo describing the named file without following symlinks.
func (RealSystem) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Mkdir creates a single directory; the parent must already exist.
func (RealSystem) Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// Remove removes a file or an empty directory.
func (RealSystem) Remove(name string) error {
	return os.Remove(name)
}

// Create creates or truncates the named file with perm.
func (RealSystem) Create(name string, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
}
