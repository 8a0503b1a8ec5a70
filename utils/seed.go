package utils

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/model"
)

// ReadSeedFile returns the pattern text stored in filename
func ReadSeedFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "[ReadSeedFile] failed to read file: %+v", filename)
	}
	return string(data), nil
}

// NewRand returns a random source for seed, or a time based one when seed is 0
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SeedGrid seeds g from the configured source: the seed file first, then
// inline seed text, then a named pattern, and random cells otherwise. It
// returns a short description of the source used.
func SeedGrid(g *model.Grid, config Config, rng *rand.Rand) (string, error) {
	switch {
	case config.SeedFile != "":
		text, err := ReadSeedFile(config.SeedFile)
		if err != nil {
			return "", err
		}
		if err = g.SeedFromPattern(text); err != nil {
			return "", errors.Wrapf(err, "[SeedGrid] seed file %+v", config.SeedFile)
		}
		return "file " + config.SeedFile, nil
	case config.SeedText != "":
		if err := g.SeedFromPattern(config.SeedText); err != nil {
			return "", errors.Wrap(err, "[SeedGrid] inline seed")
		}
		return "inline pattern", nil
	case config.Pattern != "":
		if err := g.SeedFromNamedPattern(config.Pattern); err != nil {
			return "", errors.Wrap(err, "[SeedGrid]")
		}
		return "pattern " + config.Pattern, nil
	}
	if err := g.SeedRandom(rng, config.RandomDensity); err != nil {
		return "", errors.Wrap(err, "[SeedGrid]")
	}
	return "random", nil
}
