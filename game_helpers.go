package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/torus-gol/model"
	"github.com/sheikhrachel/torus-gol/utils"
)

// game owns the grid for the whole run. Only the simulation goroutine
// touches it; the writer goroutine receives rendered frames.
type game struct {
	config     utils.Config
	grid       *model.Grid
	pool       *model.GridPool
	rng        *rand.Rand
	stats      *utils.Stats
	seedSource string

	generation     int
	stagnantCount  int
	lastRestartGen int
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	g := &game{
		config: config,
		rng:    utils.NewRand(config.RandomSeed),
		stats:  utils.NewStats(),
	}
	if config.UseMemoryPool {
		pool, err := model.NewGridPool(config.Width, config.Height)
		if err != nil {
			return nil, errors.Wrap(err, "[initializeGame]")
		}
		g.pool = pool
	}

	if err := g.newGrid(); err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	return g, nil
}

// newGrid replaces the current grid with a freshly seeded one
func (g *game) newGrid() error {
	var (
		grid *model.Grid
		err  error
	)
	if g.pool != nil {
		grid = g.pool.Get()
	} else if grid, err = model.NewGrid(g.config.Width, g.config.Height); err != nil {
		return err
	}

	source, err := utils.SeedGrid(grid, g.config, g.rng)
	if err != nil {
		model.GridToPool(grid, g.pool)
		return err
	}

	model.GridToPool(g.grid, g.pool)
	g.grid = grid
	g.seedSource = source
	return nil
}

// displayGameInfo logs the initial game information
func displayGameInfo(logger *slog.Logger, g *game) {
	logger.Info("Starting game.",
		"width", g.grid.GetWidth(),
		"height", g.grid.GetHeight(),
		"seed", g.seedSource,
		"living_cells", g.grid.CountLivingCells(),
		"memory_pool", g.config.UseMemoryPool,
		"verify", g.config.Verify,
	)
}

// updateGameState checks the grid for extinction and stagnation and returns status information
func (g *game) updateGameState() (int, float64, string) {
	livingCells := g.grid.CountLivingCells()
	density := float64(livingCells) / float64(g.grid.GetWidth()*g.grid.GetHeight()) * 100

	// Compare against history before recording the current state
	isStagnant := g.grid.IsStagnant()
	g.grid.UpdateHistory()

	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	status := "Active"
	if isStagnant {
		status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status
}

// renderFrame writes the status lines and the grid for the current generation
func (g *game) renderFrame(livingCells int, density float64, status string) (string, error) {
	var buf bytes.Buffer
	renderer := &model.TerminalRenderer{Out: &buf}

	if !g.config.NoClear {
		if err := renderer.Clear(); err != nil {
			return "", err
		}
	}

	fmt.Fprintf(&buf, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		g.generation, livingCells, density, status)
	fmt.Fprintf(&buf, "Performance: %.1f gen/sec | Avg Pop: %.1f | Births: %d | Deaths: %d | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation,
		g.stats.TotalBirths, g.stats.TotalDeaths, time.Since(g.stats.StartTime).Seconds())

	// Show time since last restart
	if g.generation > g.lastRestartGen && g.lastRestartGen > 0 {
		fmt.Fprintf(&buf, "Generations since restart: %d\n", g.generation-g.lastRestartGen)
	}

	if err := renderer.Display(g.grid); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// advance steps the grid once, checking it against a full rescan when verification is on
func (g *game) advance() (model.Changes, time.Duration, error) {
	var reference [][]bool
	if g.config.Verify {
		reference = g.grid.ReferenceNext()
	}

	start := time.Now()
	changes := g.grid.Step()
	took := time.Since(start)

	if g.config.Verify {
		if err := g.grid.Verify(); err != nil {
			return changes, took, err
		}
		if !equalRows(reference, g.grid.AliveRows()) {
			return changes, took, errors.Errorf("[advance] generation %d differs from rescan", g.grid.Generation())
		}
	}
	return changes, took, nil
}

func equalRows(a, b [][]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

// simulate runs the game loop, sending one rendered frame per generation
func (g *game) simulate(ctx context.Context, frames chan<- string) error {
	logger := utils.LoggerFromContext(ctx)

	for {
		frameStart := time.Now()

		livingCells, density, status := g.updateGameState()
		frame, err := g.renderFrame(livingCells, density, status)
		if err != nil {
			return err
		}
		select {
		case frames <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}

		// Check for max generations limit
		if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
			logger.Info("Reached maximum generations limit.", "generations", g.config.MaxGenerations)
			return nil
		}

		if shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.config); shouldRestart && g.config.AutoRestart {
			logger.Info("Restarting.", "reason", reason, "generation", g.generation)
			if err = g.newGrid(); err != nil {
				return err
			}
			g.lastRestartGen = g.generation
			g.stagnantCount = 0
		} else if g.config.AutoRestart && g.stagnantCount >= 2 {
			// Inject some life to try to break the stagnation
			if err = g.grid.InjectRandomLife(g.rng, g.config.InjectionCount); err != nil {
				return err
			}
		}

		changes, took, err := g.advance()
		if err != nil {
			return err
		}
		g.generation++
		g.stats.Update(g.generation, livingCells, took, changes)

		if g.config.FrameRate > 0 && took > g.config.FrameRate {
			g.stats.SlowFrames++
			logger.Warn("Simulation too slow.", "took", took, "desired", g.config.FrameRate)
		}

		if wait := g.config.FrameRate - time.Since(frameStart); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
}

// Run drives the game until the generation limit or cancellation. The grid
// stays confined to the simulation goroutine; frames are written to out by a
// second goroutine so slow terminals do not stall the grid.
func (g *game) Run(ctx context.Context, out io.Writer) error {
	logger := utils.LoggerFromContext(ctx)
	displayGameInfo(logger, g)

	eg, ctx := errgroup.WithContext(ctx)
	frames := make(chan string, 1)

	eg.Go(func() error {
		defer close(frames)
		return g.simulate(ctx, frames)
	})
	eg.Go(func() error {
		for frame := range frames {
			if _, err := io.WriteString(out, frame); err != nil {
				return errors.Wrap(err, "[Run] failed to write frame")
			}
		}
		return nil
	})

	err := eg.Wait()
	logger.Info("Final stats.",
		"generations", g.generation,
		"seconds", time.Since(g.stats.StartTime).Seconds(),
		"avg_population", g.stats.AveragePopulation,
		"births", g.stats.TotalBirths,
		"deaths", g.stats.TotalDeaths,
		"slow_frames", g.stats.SlowFrames,
	)
	model.GridToPool(g.grid, g.pool)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Info("Shutting down gracefully.")
		return nil
	}
	return err
}
