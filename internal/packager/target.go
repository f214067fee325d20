package packager

import (
	"fmt"
	"path/filepath"

	"github.com/retrofe/packager/internal/config"
)

// Target is the operating system a package is assembled for.
type Target int

const (
	TargetWindows Target = iota
	TargetLinux
	TargetMac
)

// TargetNames lists the accepted --os values in declaration order.
var TargetNames = []string{"windows", "linux", "mac"}

// ParseTarget converts a --os value into a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "windows":
		return TargetWindows, nil
	case "linux":
		return TargetLinux, nil
	case "mac":
		return TargetMac, nil
	default:
		return 0, fmt.Errorf("unknown target os %q (expected windows, linux or mac)", s)
	}
}

func (t Target) String() string {
	switch t {
	case TargetWindows:
		return "windows"
	case TargetLinux:
		return "linux"
	case TargetMac:
		return "mac"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// AssetsDir returns the OS-specific asset source directory for the target.
func (t Target) AssetsDir(cfg *config.Config) string {
	switch t {
	case TargetWindows:
		return filepath.Join(cfg.BaseDir, cfg.Sources.WindowsDir)
	case TargetLinux:
		return filepath.Join(cfg.BaseDir, cfg.Sources.LinuxDir)
	case TargetMac:
		return filepath.Join(cfg.BaseDir, cfg.Sources.MacDir)
	default:
		return ""
	}
}
