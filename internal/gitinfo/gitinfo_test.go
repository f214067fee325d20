package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadCommitOutsideRepository(t *testing.T) {
	commit, err := HeadCommit(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, commit)
}

func TestHeadCommitEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commit, err := HeadCommit(dir)
	require.NoError(t, err)
	assert.Empty(t, commit)
}

func TestHeadCommitResolvesHead(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("content"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("file.txt")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	commit, err := HeadCommit(dir)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), commit)

	// Subdirectories resolve through DetectDotGit.
	sub := filepath.Join(dir, "Package", "Environment")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	commit, err = HeadCommit(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), commit)
}
