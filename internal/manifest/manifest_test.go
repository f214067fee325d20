package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "RetroFE")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "layouts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "settings.conf"), []byte("key=value"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "layouts", "layout.xml"), []byte("<layout/>"), 0o644))
	return root
}

func TestGenerateAndRoundTrip(t *testing.T) {
	root := buildTree(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	m, err := Generate("run-1", "linux", "full", "abc123", root, started, 1500*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 2, m.FileCount)
	assert.Equal(t, int64(len("key=value")+len("<layout/>")), m.TotalBytes)
	assert.Equal(t, int64(1500), m.Duration)
	assert.Contains(t, m.Files, "settings.conf")
	assert.Contains(t, m.Files, "layouts/layout.xml")

	path := filepath.Join(t.TempDir(), "RetroFE.manifest.json")
	require.NoError(t, m.Write(path))

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, restored)
}

func TestVerifyCleanTree(t *testing.T) {
	root := buildTree(t)
	m, err := Generate("run-1", "linux", "full", "", root, time.Now(), 0)
	require.NoError(t, err)

	mismatches, err := m.Verify(root)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestVerifyDetectsDrift(t *testing.T) {
	root := buildTree(t)
	m, err := Generate("run-1", "linux", "full", "", root, time.Now(), 0)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "settings.conf"), []byte("tampered"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(root, "layouts", "layout.xml")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "extra.bin"), []byte("x"), 0o644))

	mismatches, err := m.Verify(root)
	require.NoError(t, err)
	require.Len(t, mismatches, 3)

	reasons := map[string]string{}
	for _, mm := range mismatches {
		reasons[mm.Path] = mm.Reason
	}
	assert.Equal(t, "content changed", reasons["settings.conf"])
	assert.Equal(t, "missing", reasons["layouts/layout.xml"])
	assert.Equal(t, "unexpected file", reasons["extra.bin"])
}

func TestHashTreeRecordsSymlinkTargets(t *testing.T) {
	root := buildTree(t)
	require.NoError(t, os.Symlink("settings.conf", filepath.Join(root, "link")))
	// Dangling link must not fail the walk.
	require.NoError(t, os.Symlink("gone", filepath.Join(root, "dangling")))

	files, _, err := HashTree(root)
	require.NoError(t, err)
	assert.Contains(t, files, "link")
	assert.Contains(t, files, "dangling")
}

func TestPathFor(t *testing.T) {
	out := filepath.Join("Artifacts", "linux", "RetroFE")
	assert.Equal(t, out+".manifest.json", PathFor(out))
}
