package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	_, shouldExit, err := parseFlags([]string{"-h"}, out)

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "-random-color")
}

func TestParseFlags_ConfigAndOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "window.hcl")
	require.NoError(t, os.WriteFile(path, []byte("width = 12\nlog_level = \"DEBUG\"\n"), 0600))

	config, shouldExit, err := parseFlags([]string{"-config", path, "-scale", "4", "-random-color"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, 12, config.Width)
	assert.Equal(t, 4, config.WindowScale)
	assert.True(t, config.RandomColor)
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	_, shouldExit, err := parseFlags([]string{"-no-such-flag"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.False(t, shouldExit)

	_, _, err = parseFlags([]string{"-config", filepath.Join(t.TempDir(), "gone.json")}, &bytes.Buffer{})
	require.Error(t, err)
}
