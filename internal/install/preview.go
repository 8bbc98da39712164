package install

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/aymanbagabas/go-udiff"

	"github.com/project-echo/mod-installer/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown per file.
const DefaultDiffMaxLines = 40

// Action is what an extraction would do to one path.
type Action string

const (
	// ActionCreate writes a file that does not exist yet.
	ActionCreate Action = "create"
	// ActionOverwrite replaces an existing file with different content.
	ActionOverwrite Action = "overwrite"
	// ActionUnchanged replaces an existing file with identical content.
	ActionUnchanged Action = "unchanged"
	// ActionMkdir creates a directory.
	ActionMkdir Action = "mkdir"
)

// PreviewEntry describes the effect of extracting one archive path.
type PreviewEntry struct {
	Path   string
	Action Action
	// UnifiedDiff is set for overwritten files when both sides are text.
	UnifiedDiff string
	Truncated   bool
}

// Preview reports what Extract would do with the archive at archivePath without
// writing anything. Entries are returned in archive order, with directories listed
// before the first file that needs them.
func Preview(archivePath string, root string, opts Options) ([]PreviewEntry, error) {
	if strings.TrimSpace(archivePath) == "" {
		return nil, errors.New(messages.InstallArchiveRequired)
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.New(messages.InstallRootRequired)
	}
	if opts.System == nil {
		return nil, errors.New(messages.InstallSystemRequired)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallResolveRootFmt, root, err)
	}
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallOpenArchiveFmt, archivePath, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	p := &previewer{
		root:     absRoot,
		sys:      opts.System,
		maxLines: opts.DiffMaxLines,
		planned:  newRecorder(),
		byPath:   map[string]int{},
	}
	for _, file := range reader.File {
		if err := p.previewEntry(file); err != nil {
			return nil, err
		}
	}
	return p.entries, nil
}

type previewer struct {
	root     string
	sys      System
	maxLines int
	planned  *recorder
	entries  []PreviewEntry
	byPath   map[string]int
}

func (p *previewer) previewEntry(file *zip.File) error {
	isDir := isDirEntry(file)
	dest, err := entryDestination(p.root, file.Name, isDir)
	if err != nil {
		return err
	}
	if err := rejectSymlinks(p.sys, p.root, file.Name, dest, isDir); err != nil {
		return err
	}
	if isDir {
		return p.planDirs(dest)
	}
	if err := p.planDirs(filepath.Dir(dest)); err != nil {
		return err
	}

	incoming, err := readEntry(file)
	if err != nil {
		return err
	}
	entry := PreviewEntry{Path: dest, Action: ActionCreate}
	if !p.planned.hasDir(filepath.Dir(dest)) {
		current, exists, err := p.readExisting(dest)
		if err != nil {
			return err
		}
		if exists {
			entry = p.compare(dest, current, incoming)
		}
	}

	if index, ok := p.byPath[dest]; ok {
		// Duplicate entries: the last one in the archive wins.
		if p.entries[index].Action == ActionCreate {
			entry = PreviewEntry{Path: dest, Action: ActionCreate}
		}
		p.entries[index] = entry
		return nil
	}
	p.byPath[dest] = len(p.entries)
	p.entries = append(p.entries, entry)
	return nil
}

func (p *previewer) planDirs(dir string) error {
	missing, err := missingDirs(p.sys, dir, p.planned.hasDir)
	if err != nil {
		return err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		path := missing[i]
		if p.planned.hasDir(path) {
			continue
		}
		p.planned.addDir(path)
		p.entries = append(p.entries, PreviewEntry{Path: path, Action: ActionMkdir})
	}
	return nil
}

func (p *previewer) readExisting(dest string) ([]byte, bool, error) {
	info, err := p.sys.Lstat(dest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.InstallStatFmt, dest, err)
	}
	if info.IsDir() {
		return nil, false, &fs.PathError{Op: "create", Path: dest, Err: syscall.EISDIR}
	}
	data, err := p.sys.ReadFile(dest)
	if err != nil {
		return nil, false, fmt.Errorf(messages.InstallPreviewReadFmt, dest, err)
	}
	return data, true, nil
}

func (p *previewer) compare(dest string, current []byte, incoming []byte) PreviewEntry {
	if bytes.Equal(current, incoming) {
		return PreviewEntry{Path: dest, Action: ActionUnchanged}
	}
	entry := PreviewEntry{Path: dest, Action: ActionOverwrite}
	if !isText(current) || !isText(incoming) {
		return entry
	}
	rel, err := filepath.Rel(p.root, dest)
	if err != nil {
		rel = dest
	}
	name := filepath.ToSlash(rel)
	entry.UnifiedDiff, entry.Truncated = renderTruncatedUnifiedDiff(
		name+" (current)",
		name+" (archive)",
		string(current),
		string(incoming),
		p.maxLines,
	)
	return entry
}

func readEntry(file *zip.File) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf(messages.InstallOpenEntryFmt, file.Name, err)
	}
	defer func() {
		_ = src.Close()
	}()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallOpenEntryFmt, file.Name, err)
	}
	return data, nil
}

func isText(data []byte) bool {
	return utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := lines[:limit]
	truncated = append(truncated, fmt.Sprintf(messages.InstallDiffTruncatedFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
