package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/project-echo/mod-installer/internal/messages"
)

// ErrUnsafeEntryPath is returned for archive entries that would land outside the install root.
var ErrUnsafeEntryPath = errors.New("unsafe archive entry path")

// entryDestination joins root with an archive entry name. Names that are absolute or
// that climb out of root are rejected; allowRoot permits a name that resolves to root
// itself (a "./" directory entry).
func entryDestination(root string, name string, allowRoot bool) (string, error) {
	rel := filepath.FromSlash(name)
	if strings.HasPrefix(name, "/") || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf(messages.InstallUnsafeEntryFmt, ErrUnsafeEntryPath, name, root)
	}
	dest := filepath.Join(root, rel)
	if samePath(dest, root) {
		if allowRoot {
			return dest, nil
		}
		return "", fmt.Errorf(messages.InstallUnsafeEntryFmt, ErrUnsafeEntryPath, name, root)
	}
	if !isWithin(root, dest) {
		return "", fmt.Errorf(messages.InstallUnsafeEntryFmt, ErrUnsafeEntryPath, name, root)
	}
	return dest, nil
}

// rejectSymlinks fails with ErrUnsafeEntryPath when an existing directory between root
// and dest is a symbolic link, since writing through it would land outside root.
// For directory entries dest itself is checked too; a symlink at a file destination is
// replaced rather than followed.
func rejectSymlinks(sys System, root string, name string, dest string, isDir bool) error {
	link, err := symlinkBelow(sys, root, dest, isDir)
	if err != nil {
		return err
	}
	if link != "" {
		return fmt.Errorf(messages.InstallSymlinkEntryFmt, ErrUnsafeEntryPath, name, link)
	}
	return nil
}

// symlinkBelow returns the first existing component of path below root that is a
// symbolic link, or "" when there is none. root itself may be a link. The leaf is only
// inspected when includeLeaf is set. The walk stops at the first missing component.
func symlinkBelow(sys System, root string, path string, includeLeaf bool) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || !isWithin(root, path) {
		return "", nil
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if !includeLeaf {
		parts = parts[:len(parts)-1]
	}
	current := filepath.Clean(root)
	for _, part := range parts {
		current = filepath.Join(current, part)
		info, err := sys.Lstat(current)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				return "", nil
			}
			return "", fmt.Errorf(messages.InstallStatFmt, current, err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return current, nil
		}
		if !info.IsDir() {
			return "", nil
		}
	}
	return "", nil
}

// isWithin reports whether path is a strict descendant of root.
func isWithin(root string, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

func samePath(a string, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// pathDepth counts the separators in the cleaned path.
func pathDepth(path string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(path)), "/")
}
