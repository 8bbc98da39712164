package install

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/project-echo/mod-installer/internal/messages"
)

const (
	defaultFilePerm os.FileMode = 0o644
	defaultDirPerm  os.FileMode = 0o755
)

// Options carries the collaborators shared by Extract, Rollback and Preview.
type Options struct {
	System System
	Logger *slog.Logger
	// DiffMaxLines caps the unified diff rendered per file by Preview.
	DiffMaxLines int
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

type extractor struct {
	root string
	sys  System
	log  *slog.Logger
	rec  *recorder
}

// Extract unpacks the zip archive at archivePath under root and records every file and
// directory it creates.
//
// Existing files at entry destinations are replaced. If any entry fails, the files and
// directories written so far are removed again and no Record is returned.
func Extract(archivePath string, root string, opts Options) (Record, error) {
	if strings.TrimSpace(archivePath) == "" {
		return Record{}, errors.New(messages.InstallArchiveRequired)
	}
	if strings.TrimSpace(root) == "" {
		return Record{}, errors.New(messages.InstallRootRequired)
	}
	if opts.System == nil {
		return Record{}, errors.New(messages.InstallSystemRequired)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Record{}, fmt.Errorf(messages.InstallResolveRootFmt, root, err)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return Record{}, fmt.Errorf(messages.InstallOpenArchiveFmt, archivePath, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	ex := &extractor{
		root: absRoot,
		sys:  opts.System,
		log:  opts.logger(),
		rec:  newRecorder(),
	}
	for _, file := range reader.File {
		if err := ex.extractEntry(file); err != nil {
			ex.log.Warn("extraction failed, removing partial install", "entry", file.Name, "error", err)
			if cleanupErr := Rollback(ex.rec.record(absRoot), absRoot, opts); cleanupErr != nil {
				return Record{}, errors.Join(err, fmt.Errorf(messages.InstallPartialCleanupFmt, cleanupErr))
			}
			return Record{}, err
		}
	}

	record := ex.rec.record(absRoot)
	ex.log.Info("extracted archive", "archive", archivePath, "root", absRoot, "files", len(record.InstalledFiles), "created_dirs", len(record.CreatedDirs))
	return record, nil
}

func (ex *extractor) extractEntry(file *zip.File) error {
	isDir := isDirEntry(file)
	dest, err := entryDestination(ex.root, file.Name, isDir)
	if err != nil {
		return err
	}
	if err := rejectSymlinks(ex.sys, ex.root, file.Name, dest, isDir); err != nil {
		return err
	}
	if isDir {
		return ex.ensureDir(dest)
	}
	if err := ex.ensureDir(filepath.Dir(dest)); err != nil {
		return err
	}

	info, err := ex.sys.Lstat(dest)
	switch {
	case err == nil:
		if info.IsDir() {
			return &fs.PathError{Op: "create", Path: dest, Err: syscall.EISDIR}
		}
		if err := ex.sys.Remove(dest); err != nil {
			return fmt.Errorf(messages.InstallRemoveExistingFmt, dest, err)
		}
		ex.log.Debug("replacing existing file", "path", dest)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf(messages.InstallStatFmt, dest, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf(messages.InstallOpenEntryFmt, file.Name, err)
	}
	defer func() {
		_ = src.Close()
	}()

	out, err := ex.sys.Create(dest, entryPerm(file))
	if err != nil {
		return fmt.Errorf(messages.InstallCreateFileFmt, dest, err)
	}
	ex.rec.addFile(dest)
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.InstallWriteFileFmt, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.InstallCloseFileFmt, dest, err)
	}
	return nil
}

// ensureDir creates dir and any missing ancestors one level at a time, recording
// each directory it creates.
func (ex *extractor) ensureDir(dir string) error {
	missing, err := missingDirs(ex.sys, dir, nil)
	if err != nil {
		return err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		path := missing[i]
		if err := ex.sys.Mkdir(path, defaultDirPerm); err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return fmt.Errorf(messages.InstallCreateDirFmt, path, err)
		}
		ex.rec.addDir(path)
	}
	return nil
}

// missingDirs walks up from dir and returns the directories that do not exist yet,
// deepest first. Paths for which planned returns true are treated as missing
// without touching the filesystem.
func missingDirs(sys System, dir string, planned func(string) bool) ([]string, error) {
	var missing []string
	current := filepath.Clean(dir)
	for {
		if planned != nil && planned(current) {
			missing = append(missing, current)
		} else {
			info, err := sys.Stat(current)
			if err == nil {
				if !info.IsDir() {
					return nil, &fs.PathError{Op: "mkdir", Path: current, Err: syscall.ENOTDIR}
				}
				return missing, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf(messages.InstallStatFmt, current, err)
			}
			missing = append(missing, current)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return missing, nil
		}
		current = parent
	}
}

func isDirEntry(file *zip.File) bool {
	return strings.HasSuffix(file.Name, "/") || file.FileInfo().IsDir()
}

// entryPerm keeps the archive's permission bits but always leaves the owner able to
// read and replace the file.
func entryPerm(file *zip.File) os.FileMode {
	perm := file.Mode().Perm()
	if perm == 0 {
		return defaultFilePerm
	}
	return perm | 0o600
}
