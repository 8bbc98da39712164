// Package lock serializes installs and cleans across modinst processes.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/project-echo/mod-installer/internal/messages"
)

// FileName is the lock file inside the state directory.
const FileName = "modinst.lock"

// ErrBusy is returned when another process holds the lock.
var ErrBusy = errors.New("install lock busy")

// Lock is an exclusive advisory lock held on an open file.
type Lock struct {
	file *os.File
}

// Acquire takes the lock at path without waiting. It returns ErrBusy when another
// process (or another Acquire in this process) already holds it.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		if errors.Is(err, ErrBusy) {
			return nil, fmt.Errorf(messages.LockBusyFmt, ErrBusy, path)
		}
		return nil, fmt.Errorf(messages.LockFmt, path, err)
	}
	return &Lock{file: file}, nil
}

// With acquires the lock at path, runs fn, and releases the lock.
func With(path string, fn func() error) error {
	l, err := Acquire(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Release()
	}()
	return fn()
}

// Release unlocks and closes the lock file. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil
	if err := unlockFile(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
