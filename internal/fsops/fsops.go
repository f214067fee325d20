// Package fsops implements the filesystem primitives used to assemble an
// output tree: recursive tree copy, byte-for-byte file copy, idempotent
// directory creation, and a symlink-preserving copy for application bundles.
package fsops

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/retrofe/packager/internal/logfields"
)

// EnsureDir creates path along with any missing ancestors. A path that
// already exists as a directory is success; a path component that exists as
// a non-directory is an error. The trace line is emitted before the create
// call resolves, so it appears even for pre-existing directories.
func EnsureDir(path string) error {
	slog.Info("Creating directory", logfields.Path(path))
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// CopyFile copies the bytes of src to dst, carrying over src's permission
// bits. The parent directory of dst must already exist.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	from, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer from.Close()

	slog.Info("Copying file", logfields.Dest(dst))

	to, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(to, from); err != nil {
		_ = to.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := to.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	// Creation mode is subject to umask; chmod makes the executable bit stick.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}

// CopyTree mirrors src onto dst. Directories are created as needed and every
// entry is copied recursively; a file src is copied directly to dst. Symlinks
// are followed, not preserved (use CopyBundle where links matter). Any
// filesystem error aborts the copy.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if !info.IsDir() {
		return CopyFile(src, dst)
	}

	if _, err := os.Stat(dst); os.IsNotExist(err) {
		if err := EnsureDir(dst); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", src, err)
	}
	for _, entry := range entries {
		if err := CopyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// CopyBundle copies src onto dst preserving symbolic links. Links are
// recreated with their original targets, so dangling links survive the copy
// instead of failing it. Used for the macOS application bundle, whose
// Contents/Frameworks trees rely on relative symlinks.
func CopyBundle(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("lstat %s: %w", src, err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return fmt.Errorf("readlink %s: %w", src, err)
		}
		if err := os.Symlink(target, dst); err != nil {
			return fmt.Errorf("symlink %s: %w", dst, err)
		}
		return nil

	case info.IsDir():
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dst, err)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return fmt.Errorf("read directory %s: %w", src, err)
		}
		for _, entry := range entries {
			if err := CopyBundle(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		return CopyFile(src, dst)
	}
}

// Exists reports whether path exists in any form.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
