package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndListRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, store.Append(ctx, Run{
			ID:         id,
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			Target:     "linux",
			Profile:    "full",
			FileCount:  10 + i,
			TotalBytes: 1024,
			DurationMS: 500,
			Status:     "success",
		}))
	}

	runs, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
	assert.Equal(t, base.Add(2*time.Hour), runs[0].Timestamp)
	assert.Equal(t, 12, runs[0].FileCount)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), ".packager", "history.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(context.Background(), Run{
		ID:        "run-1",
		Timestamp: time.Now(),
		Target:    "mac",
		Profile:   "core",
		Status:    "success",
	}))

	runs, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestListRecentEmpty(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
