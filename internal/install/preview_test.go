package install

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-echo/mod-installer/internal/testutil"
)

func TestPreview_ClassifiesEntries(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "BepInEx", "config", "mod.cfg"), "speed = 1\n")
	testutil.WriteFile(t, filepath.Join(root, "doorstop_config.ini"), "enabled=true\n")
	testutil.WriteFile(t, filepath.Join(root, "winhttp.dll"), "old\x00binary")
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip",
		testutil.File("BepInEx/config/mod.cfg", "speed = 2\n"),
		testutil.File("doorstop_config.ini", "enabled=true\n"),
		testutil.File("winhttp.dll", "new\x00binary"),
		testutil.File("BepInEx/plugins/Mod.dll", "dll"),
	)

	entries, err := Preview(archive, root, realOpts())
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, filepath.Join(root, "BepInEx", "config", "mod.cfg"), entries[0].Path)
	assert.Equal(t, ActionOverwrite, entries[0].Action)
	assert.Contains(t, entries[0].UnifiedDiff, "-speed = 1")
	assert.Contains(t, entries[0].UnifiedDiff, "+speed = 2")
	assert.Contains(t, entries[0].UnifiedDiff, "BepInEx/config/mod.cfg (current)")

	assert.Equal(t, ActionUnchanged, entries[1].Action)

	assert.Equal(t, ActionOverwrite, entries[2].Action)
	assert.Empty(t, entries[2].UnifiedDiff, "binary files get no diff")

	assert.Equal(t, PreviewEntry{Path: filepath.Join(root, "BepInEx", "plugins"), Action: ActionMkdir}, entries[3])
	assert.Equal(t, PreviewEntry{Path: filepath.Join(root, "BepInEx", "plugins", "Mod.dll"), Action: ActionCreate}, entries[4])
}

func TestPreview_WritesNothing(t *testing.T) {
	root := t.TempDir()
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip",
		testutil.Dir("a/"),
		testutil.File("a/b/c.txt", "c"),
		testutil.File("a/b/c.txt", "again"),
	)

	entries, err := Preview(archive, root, realOpts())
	require.NoError(t, err)
	assert.Equal(t, []PreviewEntry{
		{Path: filepath.Join(root, "a"), Action: ActionMkdir},
		{Path: filepath.Join(root, "a", "b"), Action: ActionMkdir},
		{Path: filepath.Join(root, "a", "b", "c.txt"), Action: ActionCreate},
	}, entries)

	dirEntries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, dirEntries)
}

func TestPreview_RejectsUnsafeEntries(t *testing.T) {
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip", testutil.File("../../x.dll", "x"))
	_, err := Preview(archive, t.TempDir(), realOpts())
	require.ErrorIs(t, err, ErrUnsafeEntryPath)
}

func TestPreview_RejectsEntriesThroughSymlinks(t *testing.T) {
	root := t.TempDir()
	testutil.Symlink(t, t.TempDir(), filepath.Join(root, "BepInEx"))
	archive := testutil.WriteZip(t, t.TempDir(), "mod.zip", testutil.File("BepInEx/Mod.dll", "x"))
	_, err := Preview(archive, root, realOpts())
	require.ErrorIs(t, err, ErrUnsafeEntryPath)
}

func TestRenderTruncatedUnifiedDiff(t *testing.T) {
	var from, to strings.Builder
	for i := 0; i < 30; i++ {
		from.WriteString("old line\n")
		to.WriteString("new line\n")
	}

	rendered, truncated := renderTruncatedUnifiedDiff("a", "b", from.String(), to.String(), 10)
	assert.True(t, truncated)
	lines := splitDiffLines(rendered)
	require.Len(t, lines, 11)
	assert.Equal(t, "... (truncated to 10 lines)", lines[10])

	rendered, truncated = renderTruncatedUnifiedDiff("a", "b", "x\n", "y\n", 0)
	assert.False(t, truncated)
	assert.True(t, strings.HasSuffix(rendered, "\n"))
}

func TestEnsureTrailingNewline(t *testing.T) {
	assert.Equal(t, "", ensureTrailingNewline(""))
	assert.Equal(t, "a\n", ensureTrailingNewline("a"))
	assert.Equal(t, "a\n", ensureTrailingNewline("a\n"))
}
