// Package packager assembles a RetroFE distribution tree: common assets,
// OS-specific assets, collection scaffolding and the compiled executable,
// merged into Artifacts/<os>/RetroFE.
package packager

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/retrofe/packager/internal/config"
	"github.com/retrofe/packager/internal/errors"
	"github.com/retrofe/packager/internal/fsops"
	"github.com/retrofe/packager/internal/logfields"
)

// Request is the immutable description of one packaging run.
type Request struct {
	Target  Target
	Profile Profile
	Clean   bool
}

// Result reports what a packaging run produced.
type Result struct {
	RunID     string
	Target    Target
	Profile   Profile
	OutputDir string
	Started   time.Time
	Duration  time.Duration
	// ExecutableMissing is set for the one recovered condition: a mac run
	// where neither the app bundle nor the bare binary exists.
	ExecutableMissing bool
}

// Packager orchestrates a packaging run against a resolved configuration.
type Packager struct {
	cfg *config.Config
}

// New creates a Packager for the given configuration.
func New(cfg *config.Config) *Packager {
	return &Packager{cfg: cfg}
}

// OutputDir returns the output tree root for a target: Artifacts/<os>/RetroFE.
func (p *Packager) OutputDir(target Target) string {
	return filepath.Join(p.cfg.OutputRoot(), target.String(), "RetroFE")
}

// Run executes one packaging run. Steps run strictly in sequence: optional
// clean, output creation, profile-selected asset copying, executable
// placement. Any filesystem error aborts the run.
func (p *Packager) Run(req Request) (*Result, error) {
	started := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		Target:    req.Target,
		Profile:   req.Profile,
		OutputDir: p.OutputDir(req.Target),
		Started:   started,
	}

	slog.Info("Starting packaging run",
		logfields.RunID(result.RunID),
		logfields.Target(req.Target.String()),
		logfields.Profile(req.Profile.String()),
		logfields.Dest(result.OutputDir))

	if req.Clean && fsops.Exists(result.OutputDir) {
		slog.Info("Cleaning output directory", logfields.Path(result.OutputDir))
		if err := os.RemoveAll(result.OutputDir); err != nil {
			return nil, errors.CleanError(result.OutputDir, err)
		}
	}

	if req.Profile != ProfileNone && !fsops.Exists(result.OutputDir) {
		if err := os.MkdirAll(result.OutputDir, 0o755); err != nil {
			return nil, errors.CreateDirError(result.OutputDir, err)
		}
	}

	switch req.Profile {
	case ProfileFull:
		if err := p.copyAssets(req.Target, result.OutputDir); err != nil {
			return nil, err
		}
	case ProfileLayout:
		if err := p.copyLayouts(req.Target, result.OutputDir); err != nil {
			return nil, err
		}
	case ProfileCore, ProfileEngine, ProfileNone:
		// No assets at this stage.
	}

	if req.Profile.PlacesExecutable() {
		missing, err := p.placeExecutable(req.Target, result.OutputDir)
		if err != nil {
			return nil, err
		}
		result.ExecutableMissing = missing
	}

	result.Duration = time.Since(started)
	slog.Info("Packaging run finished",
		logfields.RunID(result.RunID),
		logfields.Stage("done"),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

// copyAssets merges the common tree and the OS tree into the output (OS
// assets overwrite common ones at matching relative paths), creates the
// fixed metadata directory and scaffolds every collection.
func (p *Packager) copyAssets(target Target, outputDir string) error {
	common := p.cfg.CommonPath()
	osAssets := target.AssetsDir(p.cfg)

	slog.Info("Copying assets", logfields.Stage("assets"), logfields.Source(common))
	if err := fsops.CopyTree(common, outputDir); err != nil {
		return errors.CopyError(common, outputDir, err)
	}
	slog.Info("Copying assets", logfields.Stage("assets"), logfields.Source(osAssets))
	if err := fsops.CopyTree(osAssets, outputDir); err != nil {
		return errors.CopyError(osAssets, outputDir, err)
	}

	if err := fsops.EnsureDir(filepath.Join(outputDir, "meta", "mamelist")); err != nil {
		return errors.CreateDirError(filepath.Join(outputDir, "meta", "mamelist"), err)
	}

	return p.scaffoldCollections(outputDir)
}

// copyLayouts copies only the layouts subtrees, common first and OS second.
// A missing layouts directory on either side is skipped, not an error.
func (p *Packager) copyLayouts(target Target, outputDir string) error {
	layoutDest := filepath.Join(outputDir, "layouts")
	layoutCommon := filepath.Join(p.cfg.CommonPath(), "layouts")
	layoutOS := filepath.Join(target.AssetsDir(p.cfg), "layouts")

	if !fsops.Exists(layoutDest) {
		if err := os.MkdirAll(layoutDest, 0o755); err != nil {
			return errors.CreateDirError(layoutDest, err)
		}
	}

	if fsops.Exists(layoutCommon) {
		if err := fsops.CopyTree(layoutCommon, layoutDest); err != nil {
			return errors.CopyError(layoutCommon, layoutDest, err)
		}
	}
	if fsops.Exists(layoutOS) {
		if err := fsops.CopyTree(layoutOS, layoutDest); err != nil {
			return errors.CopyError(layoutOS, layoutDest, err)
		}
	}
	return nil
}

// scaffoldDirs are created under every visible collection.
var scaffoldDirs = []string{
	"roms",
	"medium_artwork",
	filepath.Join("medium_artwork", "logo"),
	filepath.Join("medium_artwork", "video"),
	"system_artwork",
}

// scaffoldCollections enumerates the collections copied into the output and
// creates the standard subdirectory set under each. Collections whose name
// starts with "_" are left untouched.
func (p *Packager) scaffoldCollections(outputDir string) error {
	collectionsDir := filepath.Join(outputDir, "collections")
	entries, err := os.ReadDir(collectionsDir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal,
			fmt.Sprintf("cannot enumerate collections in %s", collectionsDir))
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name[0] == '_' {
			continue
		}
		slog.Info("Scaffolding collection", logfields.Collection(name))
		base := filepath.Join(collectionsDir, name)
		for _, subdir := range scaffoldDirs {
			if err := fsops.EnsureDir(filepath.Join(base, subdir)); err != nil {
				return errors.CreateDirError(filepath.Join(base, subdir), err)
			}
		}
	}
	return nil
}
