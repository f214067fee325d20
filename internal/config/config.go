// Package config loads the packager configuration. Every path has a built-in
// default matching the repository layout, so the tool is fully operable
// without a config file; packager.yaml only overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when none is given.
const DefaultPath = "packager.yaml"

// Config represents the application configuration
type Config struct {
	BaseDir string        `yaml:"base_dir,omitempty"`
	Sources SourcesConfig `yaml:"sources"`
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
}

// SourcesConfig locates the asset trees consumed during packaging.
type SourcesConfig struct {
	CommonDir  string `yaml:"common_dir,omitempty"`
	WindowsDir string `yaml:"windows_dir,omitempty"`
	LinuxDir   string `yaml:"linux_dir,omitempty"`
	MacDir     string `yaml:"mac_dir,omitempty"`
}

// BuildConfig locates the externally produced compiled artifacts.
type BuildConfig struct {
	WindowsExe string `yaml:"windows_exe,omitempty"`
	LinuxExe   string `yaml:"linux_exe,omitempty"`
	MacApp     string `yaml:"mac_app,omitempty"`
	MacExe     string `yaml:"mac_exe,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty"`
	Manifest  bool   `yaml:"manifest"`
}

// HistoryConfig configures the run-history ledger.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// Default returns the configuration matching the standard repository layout.
func Default() *Config {
	return &Config{
		BaseDir: ".",
		Sources: SourcesConfig{
			CommonDir:  filepath.Join("Package", "Environment", "Common"),
			WindowsDir: filepath.Join("Package", "Environment", "Windows"),
			LinuxDir:   filepath.Join("Package", "Environment", "Linux"),
			MacDir:     filepath.Join("Package", "Environment", "MacOS"),
		},
		Build: BuildConfig{
			WindowsExe: filepath.Join("RetroFE", "Build", "Release", "retrofe.exe"),
			LinuxExe:   filepath.Join("RetroFE", "Build", "retrofe"),
			MacApp:     filepath.Join("RetroFE", "Build", "Release", "RetroFE.app"),
			MacExe:     filepath.Join("RetroFE", "Build", "Release", "retrofe"),
		},
		Output: OutputConfig{
			Directory: "Artifacts",
			Manifest:  true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join("Artifacts", ".packager", "history.db"),
		},
	}
}

// Load loads configuration from the specified file. A missing file at the
// default path yields the defaults; a missing file at an explicitly chosen
// path is an error.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if configPath == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	config := Default()
	if err := yaml.Unmarshal([]byte(expandedData), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults for fields an override file left empty
	defaults := Default()
	if config.BaseDir == "" {
		config.BaseDir = defaults.BaseDir
	}
	if config.Sources.CommonDir == "" {
		config.Sources.CommonDir = defaults.Sources.CommonDir
	}
	if config.Sources.WindowsDir == "" {
		config.Sources.WindowsDir = defaults.Sources.WindowsDir
	}
	if config.Sources.LinuxDir == "" {
		config.Sources.LinuxDir = defaults.Sources.LinuxDir
	}
	if config.Sources.MacDir == "" {
		config.Sources.MacDir = defaults.Sources.MacDir
	}
	if config.Build.WindowsExe == "" {
		config.Build.WindowsExe = defaults.Build.WindowsExe
	}
	if config.Build.LinuxExe == "" {
		config.Build.LinuxExe = defaults.Build.LinuxExe
	}
	if config.Build.MacApp == "" {
		config.Build.MacApp = defaults.Build.MacApp
	}
	if config.Build.MacExe == "" {
		config.Build.MacExe = defaults.Build.MacExe
	}
	if config.Output.Directory == "" {
		config.Output.Directory = defaults.Output.Directory
	}
	if config.History.Path == "" {
		config.History.Path = defaults.History.Path
	}

	return config, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# RetroFE packager configuration. All paths are relative to base_dir.\n# Remove any key to fall back to its built-in default.\n")
	if err := os.WriteFile(configPath, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CommonPath returns the absolute common assets directory.
func (c *Config) CommonPath() string {
	return filepath.Join(c.BaseDir, c.Sources.CommonDir)
}

// OutputRoot returns the Artifacts root directory.
func (c *Config) OutputRoot() string {
	return filepath.Join(c.BaseDir, c.Output.Directory)
}

// HistoryPath returns the absolute run-history database path.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.BaseDir, c.History.Path)
}
