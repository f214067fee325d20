package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherTriggersRepackageOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "layouts"), 0o755))

	done := make(chan struct{}, 1)
	w, err := New([]string{root}, func(ctx context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, err)
	w.debounceTime = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "layouts", "layout.xml"), []byte("<layout/>"), 0o644))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("repackage callback was not invoked after a file change")
	}
}

func TestWatcherFailsWithNoWatchableRoots(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "missing")}, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	err = w.Start(context.Background())
	require.Error(t, err)
	_ = w.Stop()
}
