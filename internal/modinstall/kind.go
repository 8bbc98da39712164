package modinstall

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"

	"github.com/project-echo/mod-installer/internal/fetch"
	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/placement"
	"github.com/project-echo/mod-installer/internal/release"
)

// ErrorKind classifies install and clean failures for callers.
type ErrorKind int

const (
	// KindUnknown is any failure not covered below.
	KindUnknown ErrorKind = iota
	// KindNoPlatformSelected means neither Steam nor Epic was chosen.
	KindNoPlatformSelected
	// KindAssetNotFound means the latest release has no zip for the platform.
	KindAssetNotFound
	// KindTransport is a network or HTTP failure.
	KindTransport
	// KindIo is a filesystem failure.
	KindIo
	// KindUnsafePath means the archive tried to write outside the install root.
	KindUnsafePath
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoPlatformSelected:
		return "NoPlatformSelected"
	case KindAssetNotFound:
		return "AssetNotFound"
	case KindTransport:
		return "Transport"
	case KindIo:
		return "Io"
	case KindUnsafePath:
		return "UnsafePath"
	default:
		return "Unknown"
	}
}

// KindOf returns the kind of err. Checks run from most to least specific, so a
// transport failure that wraps a filesystem error is still Transport. A download that
// is not a readable zip counts as Io.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	switch {
	case errors.Is(err, placement.ErrNoPlatformSelected):
		return KindNoPlatformSelected
	case errors.Is(err, release.ErrAssetNotFound):
		return KindAssetNotFound
	case errors.Is(err, install.ErrUnsafeEntryPath):
		return KindUnsafePath
	case errors.Is(err, release.ErrTransport), errors.Is(err, fetch.ErrTransport):
		return KindTransport
	case errors.Is(err, zip.ErrFormat), errors.Is(err, zip.ErrAlgorithm), errors.Is(err, zip.ErrChecksum):
		return KindIo
	}
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var syscallErr *os.SyscallError
	if errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &syscallErr) {
		return KindIo
	}
	return KindUnknown
}
