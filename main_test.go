package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/torus-gol/utils"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error after printing help")
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "glider")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "flag provided but not defined")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"-width", "0"},
		{"-pattern", "spaceship"},
		{"-density", "2"},
		{"-density", "NaN"},
		{"-log-level", "loud"},
		{"stray-argument"},
	} {
		err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)
		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "args %v", args)
		assert.Equal(t, 2, exitErr.Code)
	}
}

func TestRun_PlaysGenerations(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	args := []string{
		"-pattern", "glider", "-width", "8", "-height", "8",
		"-generations", "4", "-frame-rate", "0s", "-no-clear", "-verify",
	}

	// --- Act ---
	err := run(context.Background(), out, logs, args)

	// --- Assert ---
	require.NoError(t, err)
	for gen := 0; gen <= 4; gen++ {
		assert.Contains(t, out.String(), "Gen: "+string(rune('0'+gen))+" |")
	}
	assert.NotContains(t, out.String(), "\033[H")
	assert.Contains(t, logs.String(), "Reached maximum generations limit.")
	assert.Contains(t, logs.String(), "seed=\"pattern glider\"")

	// The last frame shows the glider moved one cell down and right
	frames := strings.Split(out.String(), "Gen: ")
	last := frames[len(frames)-1]
	lines := strings.Split(strings.TrimRight(last, "\n"), "\n")
	grid := lines[len(lines)-8:]
	assert.Equal(t, "      ██        ", grid[1])
	assert.Equal(t, "  ██  ██        ", grid[2])
	assert.Equal(t, "    ████        ", grid[3])
}

func TestRun_SeedFileAndConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seed := filepath.Join(dir, "block.txt")
	require.NoError(t, os.WriteFile(seed, []byte("# #\n# #\n"), 0600))
	config := filepath.Join(dir, "life.hcl")
	require.NoError(t, os.WriteFile(config, []byte(`
width           = 6
height          = 5
max_generations = 2
frame_rate      = "0s"
no_clear        = true
log_format      = "json"
`), 0600))

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	err := run(context.Background(), out, logs, []string{"-config", config, "-seed", seed, "-width", "7"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Gen: 2 | Living: 4 |")
	assert.Contains(t, out.String(), "Status: Active")
	assert.Contains(t, logs.String(), `"width":7`)
	assert.Contains(t, logs.String(), `"height":5`)
}

func TestRun_CancelStopsGracefully(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	logs := &bytes.Buffer{}
	err := run(ctx, &bytes.Buffer{}, logs, []string{"-rand-seed", "3", "-frame-rate", "10ms", "-no-clear"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Final stats.")
}

func TestParseArgs_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": 20, "height": 11, "pattern": "toad"}`), 0600))

	config, shouldExit, err := parseArgs([]string{"-config", path, "-height", "9", "-log-level", "DEBUG"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, 20, config.Width)
	assert.Equal(t, 9, config.Height)
	assert.Equal(t, "toad", config.Pattern)
	assert.Equal(t, "DEBUG", config.LogLevel)
}

func TestParseArgs_MissingConfigFile(t *testing.T) {
	t.Parallel()

	_, _, err := parseArgs([]string{"-config", filepath.Join(t.TempDir(), "gone.json")}, &bytes.Buffer{})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
}

func TestCheckRestartConditions(t *testing.T) {
	t.Parallel()

	config := utils.DefaultConfig()

	restart, reason := checkRestartConditions(0, 0, config)
	assert.True(t, restart)
	assert.Equal(t, "extinction", reason)

	restart, reason = checkRestartConditions(10, config.StagnationThreshold, config)
	assert.True(t, restart)
	assert.Equal(t, "stagnation detected", reason)

	restart, _ = checkRestartConditions(10, 1, config)
	assert.False(t, restart)
}

func TestGame_AutoRestartOnExtinction(t *testing.T) {
	t.Parallel()

	config := utils.DefaultConfig()
	config.Width, config.Height = 6, 6
	config.SeedText = "# -\n- -"
	config.AutoRestart = true
	config.MaxGenerations = 3
	config.FrameRate = 0
	config.NoClear = true

	g, err := initializeGame(config)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	ctx := utils.WithLogger(context.Background(), utils.NewLogger("info", "text", logs))
	out := &bytes.Buffer{}
	require.NoError(t, g.Run(ctx, out))

	assert.Contains(t, logs.String(), "reason=extinction")
	assert.Contains(t, out.String(), "Status: Extinct")
	assert.Contains(t, out.String(), "Generations since restart")
}
