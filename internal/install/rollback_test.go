package install

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-echo/mod-installer/internal/testutil"
)

func TestRollback_RestoresEmptyRoot(t *testing.T) {
	root := t.TempDir()
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip",
		testutil.File("a/b.txt", "hi"),
		testutil.Dir("a/c/"),
	)
	record, err := Extract(archive, root, realOpts())
	require.NoError(t, err)

	require.NoError(t, Rollback(record, root, realOpts()))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRollback_IsIdempotent(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "Among Us.exe"), "game")
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip",
		testutil.File("BepInEx/plugins/Mod.dll", "dll"),
		testutil.File("winhttp.dll", "proxy"),
	)
	record, err := Extract(archive, root, realOpts())
	require.NoError(t, err)

	require.NoError(t, Rollback(record, root, realOpts()))
	sys := &faultSystem{}
	require.NoError(t, Rollback(record, root, Options{System: sys}))
	assert.Empty(t, sys.removed, "second rollback should not remove anything")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Among Us.exe", entries[0].Name())
}

func TestRollback_KeepsUntrackedFilesAndTheirDirs(t *testing.T) {
	root := t.TempDir()
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip",
		testutil.File("BepInEx/config/mod.cfg", "cfg"),
		testutil.File("BepInEx/plugins/Mod.dll", "dll"),
	)
	record, err := Extract(archive, root, realOpts())
	require.NoError(t, err)
	testutil.WriteFile(t, filepath.Join(root, "BepInEx", "config", "user.cfg"), "mine")

	require.NoError(t, Rollback(record, root, realOpts()))

	_, err = os.Stat(filepath.Join(root, "BepInEx", "config", "user.cfg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "BepInEx", "plugins"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, err = os.Stat(filepath.Join(root, "BepInEx", "config", "mod.cfg"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRollback_NeverTouchesPathsOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "game")
	outsideFile := filepath.Join(parent, "outside.txt")
	outsideDir := filepath.Join(parent, "outside-dir")
	testutil.WriteFile(t, outsideFile, "keep")
	require.NoError(t, os.Mkdir(outsideDir, 0o755))
	testutil.WriteFile(t, filepath.Join(root, "inside.txt"), "remove")

	record := Record{
		InstalledFiles: []string{
			outsideFile,
			filepath.Join(root, "..", "outside.txt"),
			filepath.Join(root, "inside.txt"),
			root,
		},
		CreatedDirs: []string{parent, outsideDir, root},
	}
	require.NoError(t, Rollback(record, root, realOpts()))

	_, err := os.Stat(outsideFile)
	require.NoError(t, err)
	_, err = os.Stat(outsideDir)
	require.NoError(t, err)
	info, err := os.Stat(root)
	require.NoError(t, err, "root must survive even when it is recorded")
	assert.True(t, info.IsDir())
	_, err = os.Stat(filepath.Join(root, "inside.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRollback_UsesTheRootArgument(t *testing.T) {
	installed := t.TempDir()
	other := t.TempDir()
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip", testutil.File("mods/a.dll", "a"))
	record, err := Extract(archive, installed, realOpts())
	require.NoError(t, err)

	require.NoError(t, Rollback(record, other, realOpts()))

	_, err = os.Stat(filepath.Join(installed, "mods", "a.dll"))
	assert.NoError(t, err, "files outside the given root are left alone")
}

func TestRollback_RemoveFailureIsReported(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "a.dll"), "a")
	sys := &faultSystem{RemoveFunc: func(string) error { return errInjected }}

	err := Rollback(Record{InstalledFiles: []string{filepath.Join(root, "a.dll")}}, root, Options{System: sys})
	require.ErrorIs(t, err, errInjected)
}

func TestRollback_DirectoryRemoveFailureIsIgnored(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "plugins")
	require.NoError(t, os.Mkdir(dir, 0o755))
	sys := &faultSystem{RemoveFunc: func(string) error { return errInjected }}

	require.NoError(t, Rollback(Record{CreatedDirs: []string{dir}}, root, Options{System: sys}))
	assert.Equal(t, []string{dir}, sys.removed)
}

func TestRollback_SkipsRecordedFileReplacedByDirectory(t *testing.T) {
	root := t.TempDir()
	pluginsDir := filepath.Join(root, "plugins")
	require.NoError(t, os.Mkdir(pluginsDir, 0o755))
	testutil.WriteFile(t, filepath.Join(pluginsDir, "user.dll"), "mine")

	require.NoError(t, Rollback(Record{InstalledFiles: []string{pluginsDir}}, root, realOpts()))
	_, err := os.Stat(filepath.Join(pluginsDir, "user.dll"))
	require.NoError(t, err)
}

func TestRollback_Validation(t *testing.T) {
	require.Error(t, Rollback(Record{}, "", realOpts()))
	require.Error(t, Rollback(Record{}, t.TempDir(), Options{}))
}

func TestDeepestFirst(t *testing.T) {
	got := deepestFirst([]string{"/r/a", "/r/a/b/c", "/r/z", "/r/a/b", "/r/a/b/", "/r/y/q"})
	assert.Equal(t, []string{"/r/a/b/c", "/r/y/q", "/r/a/b", "/r/z", "/r/a"}, got)
}

func TestRollback_SkipsPathsBehindSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	victim := filepath.Join(outside, "victim.txt")
	testutil.WriteFile(t, victim, "user data")
	require.NoError(t, os.Mkdir(filepath.Join(outside, "plugins"), 0o755))
	testutil.Symlink(t, outside, filepath.Join(root, "BepInEx"))
	testutil.WriteFile(t, filepath.Join(root, "own.txt"), "mod")

	record := Record{
		InstalledFiles: []string{
			filepath.Join(root, "BepInEx", "victim.txt"),
			filepath.Join(root, "own.txt"),
		},
		CreatedDirs: []string{filepath.Join(root, "BepInEx", "plugins")},
	}
	require.NoError(t, Rollback(record, root, realOpts()))

	_, err := os.Stat(victim)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outside, "plugins"))
	assert.NoError(t, err)
	_, err = os.Lstat(filepath.Join(root, "BepInEx"))
	assert.NoError(t, err, "the link itself was never recorded")
	_, err = os.Stat(filepath.Join(root, "own.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRollback_RandomArchivesRestoreTheTree(t *testing.T) {
	for seed := uint64(1); seed <= 48; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 0x6d6f64))
			parent := t.TempDir()
			root := filepath.Join(parent, "game")
			require.NoError(t, os.Mkdir(root, 0o755))
			outsideFile := filepath.Join(parent, "outside.txt")
			outsideDir := filepath.Join(parent, "outside-dir")
			testutil.WriteFile(t, outsideFile, "keep")
			require.NoError(t, os.Mkdir(outsideDir, 0o755))

			populated := seed%4 != 0
			if populated {
				for i := range rng.IntN(4) {
					dir := filepath.FromSlash(randomDirName(rng))
					testutil.WriteFile(t, filepath.Join(root, dir, fmt.Sprintf("user%d.cfg", i)), "user")
				}
				for range rng.IntN(3) {
					testutil.WriteFile(t, filepath.Join(root, filepath.FromSlash(randomFileName(rng))), "old")
				}
			}
			before := snapshotTree(t, root)

			var entries []testutil.Entry
			for i := range 1 + rng.IntN(8) {
				if rng.IntN(3) == 0 {
					if dir := randomDirName(rng); dir != "" {
						entries = append(entries, testutil.Dir(dir))
					}
					continue
				}
				entries = append(entries, testutil.File(randomFileName(rng), fmt.Sprintf("body %d", i)))
			}
			archive := testutil.WriteZip(t, t.TempDir(), "mod.zip", entries...)

			record, err := Extract(archive, root, realOpts())
			require.NoError(t, err)
			overwritten := map[string]bool{}
			for _, file := range record.InstalledFiles {
				rel, err := filepath.Rel(root, file)
				require.NoError(t, err)
				overwritten[filepath.ToSlash(rel)] = true
			}

			record.InstalledFiles = append(record.InstalledFiles, outsideFile, filepath.Join(root, "..", "outside.txt"))
			record.CreatedDirs = append(record.CreatedDirs, outsideDir, parent, root)
			require.NoError(t, Rollback(record, root, realOpts()))

			expected := map[string]string{}
			for rel, content := range before {
				if !overwritten[rel] {
					expected[rel] = content
				}
			}
			after := snapshotTree(t, root)
			assert.Equal(t, expected, after)
			if !populated {
				assert.Empty(t, after)
			}
			_, err = os.Stat(outsideFile)
			assert.NoError(t, err)
			_, err = os.Stat(outsideDir)
			assert.NoError(t, err)

			require.NoError(t, Rollback(record, root, realOpts()))
			assert.Equal(t, after, snapshotTree(t, root))
		})
	}
}

// randomDirName returns a slash-separated directory path up to three levels deep,
// or "" for the root.
func randomDirName(rng *rand.Rand) string {
	parts := make([]string, rng.IntN(4))
	for i := range parts {
		parts[i] = fmt.Sprintf("d%d", rng.IntN(3))
	}
	return path.Join(parts...)
}

func randomFileName(rng *rand.Rand) string {
	return path.Join(randomDirName(rng), fmt.Sprintf("f%d.txt", rng.IntN(3)))
}

// snapshotTree maps every path under root to its content, or "/" for directories.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if d.IsDir() {
			tree[filepath.ToSlash(rel)] = "/"
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}
