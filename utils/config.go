package utils

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"

	"github.com/sheikhrachel/torus-gol/model"
)

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	RandomSeed          int64         `json:"random_seed"`
	InjectionCount      int           `json:"injection_count"`
	SeedFile            string        `json:"seed_file"`
	Pattern             string        `json:"pattern"`
	SeedText            string        `json:"seed"`
	RandomColor         bool          `json:"random_color"`
	Verify              bool          `json:"verify"`
	LogLevel            string        `json:"log_level"`
	LogFormat           string        `json:"log_format"`
	WindowScale         int           `json:"window_scale"`
	NoClear             bool          `json:"no_clear"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               40,
		Height:              30,
		FrameRate:           50 * time.Millisecond,
		AutoRestart:         false,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      0, // run until interrupted
		RandomDensity:       model.DefaultDensity,
		InjectionCount:      3,
		LogLevel:            "info",
		LogFormat:           "text",
		WindowScale:         2,
	}
}

// Validate checks that the configuration can drive a simulation
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return errors.Wrapf(model.ErrInvalidDimensions, "[Validate] %dx%d", c.Width, c.Height)
	}
	if math.IsNaN(c.RandomDensity) || c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Wrapf(model.ErrInvalidProbability, "[Validate] random_density %v", c.RandomDensity)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame_rate %s is negative", c.FrameRate)
	}
	if c.StagnationThreshold < 1 {
		return errors.Errorf("[Validate] stagnation_threshold %d must be at least 1", c.StagnationThreshold)
	}
	if c.WindowScale < 1 {
		return errors.Errorf("[Validate] window_scale %d must be at least 1", c.WindowScale)
	}
	if c.Pattern != "" {
		if _, ok := model.Patterns[c.Pattern]; !ok {
			return errors.Errorf("[Validate] unknown pattern %q, want one of %s",
				c.Pattern, strings.Join(PatternNames(), ", "))
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if !strings.EqualFold(c.LogFormat, "text") && !strings.EqualFold(c.LogFormat, "json") {
		return errors.Errorf("[Validate] log_format %q must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}

// PatternNames returns the names of the built-in patterns in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(model.Patterns))
	for name := range model.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfig loads configuration from a JSON or HCL file, chosen by extension.
// Values missing from the file keep their defaults.
func LoadConfig(filename string) (Config, error) {
	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		return loadHCLConfig(filename)
	}
	return loadJSONConfig(filename)
}

func loadJSONConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// hclConfig mirrors Config for gohcl. Durations are written as strings like "50ms".
type hclConfig struct {
	Width               int     `hcl:"width,optional"`
	Height              int     `hcl:"height,optional"`
	FrameRate           string  `hcl:"frame_rate,optional"`
	AutoRestart         bool    `hcl:"auto_restart,optional"`
	StagnationThreshold int     `hcl:"stagnation_threshold,optional"`
	UseMemoryPool       bool    `hcl:"use_memory_pool,optional"`
	MaxGenerations      int     `hcl:"max_generations,optional"`
	RandomDensity       float64 `hcl:"random_density,optional"`
	RandomSeed          int64   `hcl:"random_seed,optional"`
	InjectionCount      int     `hcl:"injection_count,optional"`
	SeedFile            string  `hcl:"seed_file,optional"`
	Pattern             string  `hcl:"pattern,optional"`
	SeedText            string  `hcl:"seed,optional"`
	RandomColor         bool    `hcl:"random_color,optional"`
	Verify              bool    `hcl:"verify,optional"`
	LogLevel            string  `hcl:"log_level,optional"`
	LogFormat           string  `hcl:"log_format,optional"`
	WindowScale         int     `hcl:"window_scale,optional"`
	NoClear             bool    `hcl:"no_clear,optional"`
}

// patternEvalContext exposes the built-in patterns as pattern.<name> so a
// config can write `seed = pattern.glider`.
func patternEvalContext() *hcl.EvalContext {
	patterns := make(map[string]cty.Value, len(model.Patterns))
	for name, text := range model.Patterns {
		patterns[name] = cty.StringVal(text)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pattern": cty.ObjectVal(patterns),
		},
	}
}

func loadHCLConfig(filename string) (Config, error) {
	config := DefaultConfig()

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		if _, err := os.Stat(filename); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
		}
		return config, errors.Wrapf(diags, "[LoadConfig] failed to parse HCL file: %+v", filename)
	}

	decoded := hclConfig{
		Width:               config.Width,
		Height:              config.Height,
		FrameRate:           config.FrameRate.String(),
		AutoRestart:         config.AutoRestart,
		StagnationThreshold: config.StagnationThreshold,
		UseMemoryPool:       config.UseMemoryPool,
		MaxGenerations:      config.MaxGenerations,
		RandomDensity:       config.RandomDensity,
		RandomSeed:          config.RandomSeed,
		InjectionCount:      config.InjectionCount,
		RandomColor:         config.RandomColor,
		Verify:              config.Verify,
		LogLevel:            config.LogLevel,
		LogFormat:           config.LogFormat,
		WindowScale:         config.WindowScale,
		NoClear:             config.NoClear,
	}
	if diags = gohcl.DecodeBody(file.Body, patternEvalContext(), &decoded); diags.HasErrors() {
		return config, errors.Wrapf(diags, "[LoadConfig] failed to decode HCL file: %+v", filename)
	}

	frameRate, err := time.ParseDuration(decoded.FrameRate)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] bad frame_rate in %+v", filename)
	}

	return Config{
		Width:               decoded.Width,
		Height:              decoded.Height,
		FrameRate:           frameRate,
		AutoRestart:         decoded.AutoRestart,
		StagnationThreshold: decoded.StagnationThreshold,
		UseMemoryPool:       decoded.UseMemoryPool,
		MaxGenerations:      decoded.MaxGenerations,
		RandomDensity:       decoded.RandomDensity,
		RandomSeed:          decoded.RandomSeed,
		InjectionCount:      decoded.InjectionCount,
		SeedFile:            decoded.SeedFile,
		Pattern:             decoded.Pattern,
		SeedText:            decoded.SeedText,
		RandomColor:         decoded.RandomColor,
		Verify:              decoded.Verify,
		LogLevel:            decoded.LogLevel,
		LogFormat:           decoded.LogFormat,
		WindowScale:         decoded.WindowScale,
		NoClear:             decoded.NoClear,
	}, nil
}
