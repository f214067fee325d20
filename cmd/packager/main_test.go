package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrofe/packager/internal/errors"
	"github.com/retrofe/packager/internal/packager"
)

func TestParseRequest(t *testing.T) {
	req, err := parseRequest("linux", "full", true)
	require.NoError(t, err)
	assert.Equal(t, packager.TargetLinux, req.Target)
	assert.Equal(t, packager.ProfileFull, req.Profile)
	assert.True(t, req.Clean)
}

func TestParseRequestRejectsBadValues(t *testing.T) {
	_, err := parseRequest("beos", "full", false)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	_, err = parseRequest("linux", "minimal", false)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}
