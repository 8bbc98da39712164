package install

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Source describes where an installed archive came from.
type Source struct {
	Repo     string `json:"repo,omitempty"`
	Platform string `json:"platform,omitempty"`
	AssetURL string `json:"asset_url,omitempty"`
}

// Record is everything needed to undo one extraction.
//
// InstalledFiles lists every file the extraction created or overwrote, in archive
// order and without duplicates. CreatedDirs lists every directory the extraction
// created; directories that already existed are never included.
type Record struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Root           string    `json:"root"`
	Source         Source    `json:"source"`
	InstalledFiles []string  `json:"installed_files"`
	CreatedDirs    []string  `json:"created_dirs"`
}

// IsZero reports whether r records nothing.
func (r Record) IsZero() bool {
	return r.ID == "" && r.Root == "" && len(r.InstalledFiles) == 0 && len(r.CreatedDirs) == 0
}

// recorder accumulates the paths an extraction creates.
type recorder struct {
	files     []string
	seenFiles map[string]struct{}
	dirs      map[string]struct{}
}

func newRecorder() *recorder {
	return &recorder{
		seenFiles: map[string]struct{}{},
		dirs:      map[string]struct{}{},
	}
}

func (r *recorder) addFile(path string) {
	path = filepath.Clean(path)
	if _, ok := r.seenFiles[path]; ok {
		return
	}
	r.seenFiles[path] = struct{}{}
	r.files = append(r.files, path)
}

func (r *recorder) addDir(path string) {
	r.dirs[filepath.Clean(path)] = struct{}{}
}

func (r *recorder) hasDir(path string) bool {
	_, ok := r.dirs[filepath.Clean(path)]
	return ok
}

func (r *recorder) record(root string) Record {
	dirs := make([]string, 0, len(r.dirs))
	for dir := range r.dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	files := make([]string, len(r.files))
	copy(files, r.files)
	return Record{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Root:           root,
		InstalledFiles: files,
		CreatedDirs:    dirs,
	}
}
