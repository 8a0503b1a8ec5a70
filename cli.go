package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/utils"
)

const defaultConfigFile = "config.json"

// ExitError is an error that carries a process exit code
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// parseArgs builds the game configuration from the config file and flags.
// Flags given on the command line override values from the file. It returns
// true when the program should exit without running, e.g. after -h.
func parseArgs(args []string, output io.Writer) (utils.Config, bool, error) {
	defaults := utils.DefaultConfig()

	flagSet := flag.NewFlagSet("gol", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
gol - Conway's Game of Life on a wrapping grid.

Usage:
  gol [options]

Patterns: %s

Options:
`, strings.Join(utils.PatternNames(), ", "))
		flagSet.PrintDefaults()
	}

	configPath := flagSet.String("config", "", "Path to a .json or .hcl config file (default "+defaultConfigFile+" if present).")
	seedFile := flagSet.String("seed", "", "Path to a pattern file to seed the grid with.")
	pattern := flagSet.String("pattern", "", "Built-in pattern to seed the grid with.")
	width := flagSet.Int("width", defaults.Width, "Grid width in cells.")
	height := flagSet.Int("height", defaults.Height, "Grid height in cells.")
	density := flagSet.Float64("density", defaults.RandomDensity, "Birth probability for random seeding.")
	randSeed := flagSet.Int64("rand-seed", 0, "Random seed. 0 picks one from the clock.")
	generations := flagSet.Int("generations", defaults.MaxGenerations, "Stop after this many generations. 0 runs until interrupted.")
	frameRate := flagSet.Duration("frame-rate", defaults.FrameRate, "Target time per generation.")
	autoRestart := flagSet.Bool("auto-restart", defaults.AutoRestart, "Reseed the grid on extinction or stagnation.")
	verify := flagSet.Bool("verify", false, "Check every generation against a full rescan.")
	noClear := flagSet.Bool("no-clear", false, "Do not clear the terminal between frames.")
	logLevel := flagSet.String("log-level", defaults.LogLevel, "Logging level: 'debug', 'info', 'warn', 'error'.")
	logFormat := flagSet.String("log-format", defaults.LogFormat, "Log output format: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return defaults, true, nil
		}
		return defaults, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return defaults, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", flagSet.Args())}
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		return defaults, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			config.SeedFile = *seedFile
		case "pattern":
			config.Pattern = *pattern
		case "width":
			config.Width = *width
		case "height":
			config.Height = *height
		case "density":
			config.RandomDensity = *density
		case "rand-seed":
			config.RandomSeed = *randSeed
		case "generations":
			config.MaxGenerations = *generations
		case "frame-rate":
			config.FrameRate = *frameRate
		case "auto-restart":
			config.AutoRestart = *autoRestart
		case "verify":
			config.Verify = *verify
		case "no-clear":
			config.NoClear = *noClear
		case "log-level":
			config.LogLevel = *logLevel
		case "log-format":
			config.LogFormat = *logFormat
		}
	})

	if err = config.Validate(); err != nil {
		return config, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error.
func loadConfig(path string) (utils.Config, error) {
	if path != "" {
		return utils.LoadConfig(path)
	}
	config, err := utils.LoadConfig(defaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return utils.DefaultConfig(), nil
	}
	return config, err
}
