package packager

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrofe/packager/internal/config"
)

func TestParseTarget(t *testing.T) {
	for _, name := range TargetNames {
		target, err := ParseTarget(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, target.String())
	}

	_, err := ParseTarget("beos")
	require.Error(t, err)
}

func TestParseProfile(t *testing.T) {
	for _, name := range ProfileNames {
		profile, err := ParseProfile(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, profile.String())
	}

	_, err := ParseProfile("minimal")
	require.Error(t, err)
}

func TestPlacesExecutable(t *testing.T) {
	assert.True(t, ProfileFull.PlacesExecutable())
	assert.True(t, ProfileCore.PlacesExecutable())
	assert.True(t, ProfileEngine.PlacesExecutable())
	assert.False(t, ProfileLayout.PlacesExecutable())
	assert.False(t, ProfileNone.PlacesExecutable())
}

func TestTargetAssetsDir(t *testing.T) {
	cfg := config.Default()
	cfg.BaseDir = "/repo"

	assert.Equal(t, filepath.Join("/repo", "Package", "Environment", "Windows"), TargetWindows.AssetsDir(cfg))
	assert.Equal(t, filepath.Join("/repo", "Package", "Environment", "Linux"), TargetLinux.AssetsDir(cfg))
	assert.Equal(t, filepath.Join("/repo", "Package", "Environment", "MacOS"), TargetMac.AssetsDir(cfg))
}
