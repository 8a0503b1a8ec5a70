package model

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// DefaultDensity is the birth probability used when none is configured
const DefaultDensity = 0.5

// SeedRandom gives birth to every cell independently with the given
// probability, drawing from rng so callers control determinism.
func (g *Grid) SeedRandom(rng *rand.Rand, probability float64) error {
	if rng == nil {
		return errors.New("[SeedRandom] nil random source")
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return errors.Wrapf(ErrInvalidProbability, "[SeedRandom] %v not in [0,1]", probability)
	}

	for y := range g.height {
		for x := range g.width {
			if rng.Float64() < probability {
				g.birth(x, y)
			}
		}
	}
	return nil
}

// InjectRandomLife gives birth to count randomly chosen cells to break stagnation
func (g *Grid) InjectRandomLife(rng *rand.Rand, count int) error {
	if rng == nil {
		return errors.New("[InjectRandomLife] nil random source")
	}
	for range count {
		g.birth(rng.Intn(g.width), rng.Intn(g.height))
	}
	return nil
}
