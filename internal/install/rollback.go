package install

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/project-echo/mod-installer/internal/messages"
)

// Rollback removes what record says an extraction created under root.
//
// Recorded files that still exist are deleted; missing ones are skipped. Recorded
// directories are then pruned deepest first, skipping root itself, anything outside
// root and directories that are no longer empty. Paths reached through a symlink below
// root are left alone. Running it again with the same record is a no-op.
func Rollback(record Record, root string, opts Options) error {
	if strings.TrimSpace(root) == "" {
		return errors.New(messages.InstallRootRequired)
	}
	sys := opts.System
	if sys == nil {
		return errors.New(messages.InstallSystemRequired)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf(messages.InstallResolveRootFmt, root, err)
	}
	log := opts.logger()

	removed := 0
	for _, file := range record.InstalledFiles {
		path := filepath.Clean(file)
		if !isWithin(absRoot, path) {
			log.Warn("skipping recorded file outside install root", "path", path, "root", absRoot)
			continue
		}
		link, err := symlinkBelow(sys, absRoot, path, false)
		if err != nil {
			return err
		}
		if link != "" {
			log.Warn("skipping recorded file behind a symlink", "path", path, "symlink", link)
			continue
		}
		info, err := sys.Lstat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf(messages.InstallStatFmt, path, err)
		}
		if info.IsDir() {
			log.Warn("skipping recorded file that is now a directory", "path", path)
			continue
		}
		if err := sys.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf(messages.InstallRollbackRemoveFmt, path, err)
		}
		removed++
	}

	pruned := 0
	for _, dir := range deepestFirst(record.CreatedDirs) {
		if samePath(dir, absRoot) || !isWithin(absRoot, dir) {
			continue
		}
		if link, err := symlinkBelow(sys, absRoot, dir, false); err != nil || link != "" {
			continue
		}
		info, err := sys.Lstat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := sys.Remove(dir); err != nil {
			log.Debug("leaving directory in place", "path", dir, "error", err)
			continue
		}
		pruned++
	}

	log.Info("rolled back install", "root", absRoot, "removed_files", removed, "removed_dirs", pruned)
	return nil
}

// deepestFirst returns cleaned, de-duplicated dirs ordered so that children come
// before their ancestors.
func deepestFirst(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		clean := filepath.Clean(dir)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	sort.Slice(out, func(i, j int) bool {
		left, right := pathDepth(out[i]), pathDepth(out[j])
		if left == right {
			return out[i] > out[j]
		}
		return left > right
	})
	return out
}
