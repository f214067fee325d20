package packager

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/retrofe/packager/internal/errors"
	"github.com/retrofe/packager/internal/fsops"
	"github.com/retrofe/packager/internal/logfields"
)

// placeExecutable copies the externally built executable into the output
// tree. The returned bool is true only for the recovered mac case where
// neither artifact form exists; every other failure is an error.
func (p *Packager) placeExecutable(target Target, outputDir string) (bool, error) {
	switch target {
	case TargetWindows:
		return false, p.placeWindowsExecutable(outputDir)
	case TargetLinux:
		return false, p.placeLinuxExecutable(outputDir)
	case TargetMac:
		return p.placeMacExecutable(outputDir)
	}
	return false, nil
}

// placeWindowsExecutable copies retrofe.exe into an output/retrofe
// subdirectory, creating it if absent.
func (p *Packager) placeWindowsExecutable(outputDir string) error {
	srcExe := filepath.Join(p.cfg.BaseDir, p.cfg.Build.WindowsExe)
	corePath := filepath.Join(outputDir, "retrofe")

	if !fsops.Exists(srcExe) {
		return errors.ExecutableMissing(srcExe, os.ErrNotExist)
	}
	if !fsops.Exists(corePath) {
		if err := os.MkdirAll(corePath, 0o755); err != nil {
			return errors.CreateDirError(corePath, err)
		}
	}

	dst := filepath.Join(corePath, filepath.Base(srcExe))
	if err := fsops.CopyFile(srcExe, dst); err != nil {
		return errors.CopyError(srcExe, dst, err)
	}
	return nil
}

// placeLinuxExecutable copies the retrofe binary directly into the output.
func (p *Packager) placeLinuxExecutable(outputDir string) error {
	srcExe := filepath.Join(p.cfg.BaseDir, p.cfg.Build.LinuxExe)
	if !fsops.Exists(srcExe) {
		return errors.ExecutableMissing(srcExe, os.ErrNotExist)
	}

	dst := filepath.Join(outputDir, filepath.Base(srcExe))
	if err := fsops.CopyFile(srcExe, dst); err != nil {
		return errors.CopyError(srcExe, dst, err)
	}
	return nil
}

// placeMacExecutable prefers the prebuilt application bundle, copied with
// symlinks preserved after removing any stale bundle at the destination.
// It falls back to the bare binary; if neither exists the condition is
// logged and the run continues (exit 0).
func (p *Packager) placeMacExecutable(outputDir string) (bool, error) {
	srcApp := filepath.Join(p.cfg.BaseDir, p.cfg.Build.MacApp)
	srcExe := filepath.Join(p.cfg.BaseDir, p.cfg.Build.MacExe)
	destApp := filepath.Join(outputDir, filepath.Base(srcApp))

	switch {
	case fsops.Exists(srcApp):
		if fsops.Exists(destApp) {
			if err := os.RemoveAll(destApp); err != nil {
				return false, errors.CleanError(destApp, err)
			}
		}
		if err := fsops.CopyBundle(srcApp, destApp); err != nil {
			return false, errors.CopyError(srcApp, destApp, err)
		}
		return false, nil

	case fsops.Exists(srcExe):
		dst := filepath.Join(outputDir, filepath.Base(srcExe))
		if err := fsops.CopyFile(srcExe, dst); err != nil {
			return false, errors.CopyError(srcExe, dst, err)
		}
		return false, nil

	default:
		slog.Error("Neither RetroFE.app nor retrofe binary found in Release folder",
			logfields.Path(filepath.Dir(srcApp)))
		return true, nil
	}
}
