// Package state persists the record of the most recent install.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dchest/safefile"

	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/messages"
)

// FileName is the record file inside the state directory.
const FileName = "last-install.json"

// Store keeps a single install record on disk. Saving replaces whatever was stored.
type Store struct {
	Dir string
}

// Path returns the record file location.
func (s Store) Path() string {
	return filepath.Join(s.Dir, FileName)
}

// Load returns the stored record. ok is false when nothing is stored.
func (s Store) Load() (record install.Record, ok bool, err error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return install.Record{}, false, nil
		}
		return install.Record{}, false, fmt.Errorf(messages.StateReadFmt, path, err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return install.Record{}, false, fmt.Errorf(messages.StateDecodeFmt, path, err)
	}
	if record.IsZero() {
		return install.Record{}, false, nil
	}
	return record, true, nil
}

// Save atomically replaces the stored record.
func (s Store) Save(record install.Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.StateEncodeFmt, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf(messages.StateMkdirFmt, s.Dir, err)
	}
	path := s.Path()
	if err := safefile.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf(messages.StateWriteFmt, path, err)
	}
	return nil
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (s Store) Clear() error {
	path := s.Path()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(messages.StateRemoveFmt, path, err)
	}
	return nil
}
