package install

import (
	"errors"
	"io"
	"os"
)

var errInjected = errors.New("injected failure")

// faultSystem wraps RealSystem so tests can fail individual operations while the
// rest run against t.TempDir() fixtures.
type faultSystem struct {
	RealSystem

	LstatFunc  func(name string) (os.FileInfo, error)
	MkdirFunc  func(path string, perm os.FileMode) error
	RemoveFunc func(name string) error
	CreateFunc func(name string, perm os.FileMode) (io.WriteCloser, error)

	removed []string
}

func (s *faultSystem) Lstat(name string) (os.FileInfo, error) {
	if s.LstatFunc != nil {
		return s.LstatFunc(name)
	}
	return s.RealSystem.Lstat(name)
}

func (s *faultSystem) Mkdir(path string, perm os.FileMode) error {
	if s.MkdirFunc != nil {
		return s.MkdirFunc(path, perm)
	}
	return s.RealSystem.Mkdir(path, perm)
}

func (s *faultSystem) Remove(name string) error {
	s.removed = append(s.removed, name)
	if s.RemoveFunc != nil {
		return s.RemoveFunc(name)
	}
	return s.RealSystem.Remove(name)
}

func (s *faultSystem) Create(name string, perm os.FileMode) (io.WriteCloser, error) {
	if s.CreateFunc != nil {
		return s.CreateFunc(name, perm)
	}
	return s.RealSystem.Create(name, perm)
}

// failingWriter accepts the open but fails every write.
type failingWriter struct {
	io.WriteCloser
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errInjected
}
