package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("Package", "Environment", "Common"), cfg.Sources.CommonDir)
	assert.Equal(t, filepath.Join("Package", "Environment", "Windows"), cfg.Sources.WindowsDir)
	assert.Equal(t, filepath.Join("Package", "Environment", "Linux"), cfg.Sources.LinuxDir)
	assert.Equal(t, filepath.Join("Package", "Environment", "MacOS"), cfg.Sources.MacDir)
	assert.Equal(t, filepath.Join("RetroFE", "Build", "Release", "retrofe.exe"), cfg.Build.WindowsExe)
	assert.Equal(t, filepath.Join("RetroFE", "Build", "retrofe"), cfg.Build.LinuxExe)
	assert.Equal(t, "Artifacts", cfg.Output.Directory)
	assert.True(t, cfg.Output.Manifest)
}

func TestLoadMissingDefaultPathYieldsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("custom.yaml")
	require.Error(t, err)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packager.yaml")
	content := `
base_dir: /srv/retrofe
sources:
  common_dir: Assets/Common
output:
  directory: Dist
  manifest: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/retrofe", cfg.BaseDir)
	assert.Equal(t, "Assets/Common", cfg.Sources.CommonDir)
	assert.False(t, cfg.Output.Manifest)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().Sources.LinuxDir, cfg.Sources.LinuxDir)
	assert.Equal(t, "Dist", cfg.Output.Directory)
	assert.Equal(t, Default().Build.MacApp, cfg.Build.MacApp)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("RETROFE_BASE", "/opt/retrofe")

	dir := t.TempDir()
	path := filepath.Join(dir, "packager.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_dir: ${RETROFE_BASE}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/retrofe", cfg.BaseDir)
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packager.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestPathHelpers(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = "/repo"

	assert.Equal(t, filepath.Join("/repo", "Package", "Environment", "Common"), cfg.CommonPath())
	assert.Equal(t, filepath.Join("/repo", "Artifacts"), cfg.OutputRoot())
}
