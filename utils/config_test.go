package utils

import (
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/torus-gol/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 40, config.Width)
	assert.Equal(t, 30, config.Height)
	assert.Equal(t, 50*time.Millisecond, config.FrameRate)
	assert.Equal(t, model.DefaultDensity, config.RandomDensity)
}

func TestLoadConfig_JSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.json", `{"width": 12, "height": 9, "pattern": "glider", "verify": true}`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, config.Width)
	assert.Equal(t, 9, config.Height)
	assert.Equal(t, "glider", config.Pattern)
	assert.True(t, config.Verify)
	// Unset values keep their defaults
	assert.Equal(t, 50*time.Millisecond, config.FrameRate)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadConfig_HCL(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "life.hcl", `
width          = 16
height         = 16
frame_rate     = "120ms"
random_density = 0.25
seed           = pattern.glider
log_format     = "json"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 16, config.Width)
	assert.Equal(t, 16, config.Height)
	assert.Equal(t, 120*time.Millisecond, config.FrameRate)
	assert.Equal(t, 0.25, config.RandomDensity)
	assert.Equal(t, model.Patterns["glider"], config.SeedText)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 2, config.WindowScale)
	require.NoError(t, config.Validate())
}

func TestLoadConfig_HCLErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"syntax error":      "width = ",
		"unknown attribute": "colour = \"red\"",
		"unknown pattern":   "seed = pattern.spaceship",
		"bad duration":      "frame_rate = \"soon\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadConfig(writeFile(t, "bad.hcl", content))
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"nope.json", "nope.hcl"} {
		config, err := LoadConfig(filepath.Join(dir, name))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist), "%s: %v", name, err)
		assert.Equal(t, DefaultConfig(), config)
	}
}

func TestLoadConfig_BadJSON(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeFile(t, "config.json", `{"width": "wide"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[LoadConfig]")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]func(*Config){
		"zero width":       func(c *Config) { c.Width = 0 },
		"zero height":      func(c *Config) { c.Height = 0 },
		"density too high": func(c *Config) { c.RandomDensity = 1.2 },
		"density NaN":      func(c *Config) { c.RandomDensity = math.NaN() },
		"zero stagnation":  func(c *Config) { c.StagnationThreshold = 0 },
		"negative frame":   func(c *Config) { c.FrameRate = -time.Second },
		"zero scale":       func(c *Config) { c.WindowScale = 0 },
		"unknown pattern":  func(c *Config) { c.Pattern = "spaceship" },
		"bad log level":    func(c *Config) { c.LogLevel = "loud" },
		"bad log format":   func(c *Config) { c.LogFormat = "xml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			mutate(&config)
			require.Error(t, config.Validate())
		})
	}
}

func TestLoadConfig_LogSettingsIgnoreCase(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "loud.hcl", `
log_level  = "WARN"
log_format = "Json"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	level, err := ParseLevel(config.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestPatternNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"beacon", "blinker", "block", "glider", "toad"}, PatternNames())
}
