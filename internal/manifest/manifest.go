// Package manifest records what a packaging run produced: identity, inputs
// and a content hash for every file in the output tree. The manifest is
// written next to the output tree, never inside it, so the distributed tree
// stays clean.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// PackageManifest represents a complete record of one packaging run.
type PackageManifest struct {
	ID           string            `json:"id"`
	Timestamp    time.Time         `json:"timestamp"`
	Target       string            `json:"target"`
	Profile      string            `json:"profile"`
	SourceCommit string            `json:"source_commit,omitempty"`
	Files        map[string]string `json:"files"` // relative path -> sha256
	FileCount    int               `json:"file_count"`
	TotalBytes   int64             `json:"total_bytes"`
	Duration     int64             `json:"duration_ms"`
}

// ToJSON serializes the manifest to JSON.
func (m *PackageManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write persists the manifest to path.
func (m *PackageManifest) Write(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest from path.
func Load(path string) (*PackageManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromJSON(data)
}

// HashTree walks root and returns the sha256 of every regular file keyed by
// slash-separated relative path, plus the byte total. Symlinks are recorded
// by the hash of their target string, so bundle manifests stay stable even
// when a link dangles.
func HashTree(root string) (map[string]string, int64, error) {
	files := make(map[string]string)
	var total int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			files[rel] = fmt.Sprintf("%x", sha256.Sum256([]byte(target)))
			return nil
		}

		h := sha256.New()
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		n, err := io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return err
		}
		total += n
		files[rel] = fmt.Sprintf("%x", h.Sum(nil))
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("hash tree %s: %w", root, err)
	}
	return files, total, nil
}

// Generate builds a manifest for the output tree at root.
func Generate(id, target, profile, commit string, root string, started time.Time, duration time.Duration) (*PackageManifest, error) {
	files, total, err := HashTree(root)
	if err != nil {
		return nil, err
	}
	return &PackageManifest{
		ID:           id,
		Timestamp:    started.UTC(),
		Target:       target,
		Profile:      profile,
		SourceCommit: commit,
		Files:        files,
		FileCount:    len(files),
		TotalBytes:   total,
		Duration:     duration.Milliseconds(),
	}, nil
}

// Mismatch describes one difference found by Verify.
type Mismatch struct {
	Path   string
	Reason string
}

// Verify re-hashes the tree at root and compares it against the manifest.
// It returns every difference rather than stopping at the first.
func (m *PackageManifest) Verify(root string) ([]Mismatch, error) {
	actual, _, err := HashTree(root)
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for rel, want := range m.Files {
		got, ok := actual[rel]
		switch {
		case !ok:
			mismatches = append(mismatches, Mismatch{Path: rel, Reason: "missing"})
		case got != want:
			mismatches = append(mismatches, Mismatch{Path: rel, Reason: "content changed"})
		}
	}
	for rel := range actual {
		if _, ok := m.Files[rel]; !ok {
			mismatches = append(mismatches, Mismatch{Path: rel, Reason: "unexpected file"})
		}
	}

	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Path < mismatches[j].Path })
	return mismatches, nil
}

// PathFor returns the manifest location for an output tree: a sibling file
// named after the tree (Artifacts/<os>/RetroFE.manifest.json).
func PathFor(outputDir string) string {
	return outputDir + ".manifest.json"
}
