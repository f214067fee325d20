// Package gitinfo resolves the source revision a package was built from.
package gitinfo

import (
	"errors"

	git "github.com/go-git/go-git/v5"
)

// HeadCommit returns the HEAD commit hash of the repository at or above
// path. A path outside any repository yields an empty string, not an error:
// packaging an unversioned checkout is legitimate, the manifest simply
// carries no revision.
func HeadCommit(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		// A fresh repository has no commits yet; treat it like no repository.
		return "", nil
	}
	return head.Hash().String(), nil
}
