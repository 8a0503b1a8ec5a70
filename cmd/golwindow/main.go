// Command golwindow plays the Game of Life in an SDL window. Drag with the
// left mouse button to mark cells and release to toggle them.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/sheikhrachel/torus-gol/model"
	"github.com/sheikhrachel/torus-gol/utils"
)

func init() {
	// SDL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	config, shouldExit, err := parseFlags(os.Args[1:], os.Stderr)
	if shouldExit {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := utils.NewLogger(config.LogLevel, config.LogFormat, os.Stderr)
	if err = run(config, logger); err != nil {
		logger.Error("Window driver failed.", "error", err)
		os.Exit(1)
	}
}

// parseFlags builds the window configuration. It returns true when the
// program should exit without running, as after -h.
func parseFlags(args []string, output io.Writer) (utils.Config, bool, error) {
	flagSet := flag.NewFlagSet("golwindow", flag.ContinueOnError)
	flagSet.SetOutput(output)
	configPath := flagSet.String("config", "", "Path to a .json or .hcl config file.")
	seedFile := flagSet.String("seed", "", "Path to a pattern file to seed the grid with.")
	randomColor := flagSet.Bool("random-color", false, "Draw every live cell in a random colour.")
	scale := flagSet.Int("scale", 0, "Screen pixels per cell.")
	randSeed := flagSet.Int64("rand-seed", 0, "Random seed. 0 picks one from the clock.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return utils.Config{}, true, nil
		}
		return utils.Config{}, false, err
	}

	config := utils.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = utils.LoadConfig(*configPath); err != nil {
			return config, false, err
		}
	}
	if *seedFile != "" {
		config.SeedFile = *seedFile
	}
	if *randomColor {
		config.RandomColor = true
	}
	if *scale > 0 {
		config.WindowScale = *scale
	}
	if *randSeed != 0 {
		config.RandomSeed = *randSeed
	}
	return config, false, config.Validate()
}

// window wraps the SDL objects used to blit a FrameBuffer
type window struct {
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	scale     int32
}

func newWindow(title string, width, height, scale int) (*window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "[newWindow] failed to init SDL")
	}
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width*scale), int32(height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "[newWindow] failed to create window")
	}
	r, err := sdl.CreateRenderer(w, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		w.Destroy()
		sdl.Quit()
		return nil, errors.Wrap(err, "[newWindow] failed to create renderer")
	}
	return &window{sdlWindow: w, renderer: r, scale: int32(scale)}, nil
}

func (w *window) Close() {
	w.renderer.Destroy()
	w.sdlWindow.Destroy()
	sdl.Quit()
}

// Blit draws every non-background pixel of buf as a scale×scale square
func (w *window) Blit(buf *model.FrameBuffer) error {
	if err := w.renderer.SetDrawColor(0, 0, 0, 0xff); err != nil {
		return errors.Wrap(err, "[Blit] failed to set colour")
	}
	if err := w.renderer.Clear(); err != nil {
		return errors.Wrap(err, "[Blit] failed to clear")
	}
	for y := range buf.GetHeight() {
		for x := range buf.GetWidth() {
			c := buf.Pixel(x, y)
			if c == model.ColorBackground {
				continue
			}
			if err := w.renderer.SetDrawColor(uint8(c>>16), uint8(c>>8), uint8(c), 0xff); err != nil {
				return errors.Wrap(err, "[Blit] failed to set colour")
			}
			rect := sdl.Rect{X: int32(x) * w.scale, Y: int32(y) * w.scale, W: w.scale, H: w.scale}
			if err := w.renderer.FillRect(&rect); err != nil {
				return errors.Wrap(err, "[Blit] failed to fill cell")
			}
		}
	}
	w.renderer.Present()
	return nil
}

func run(config utils.Config, logger *slog.Logger) error {
	rng := utils.NewRand(config.RandomSeed)

	grid, err := model.NewGrid(config.Width, config.Height)
	if err != nil {
		return err
	}
	source, err := utils.SeedGrid(grid, config, rng)
	if err != nil {
		return err
	}
	logger.Info("Starting game.", "width", config.Width, "height", config.Height, "seed", source)

	buf, err := model.NewFrameBuffer(config.Width, config.Height)
	if err != nil {
		return err
	}
	palette := model.DefaultPalette()
	if config.RandomColor {
		palette.Random = rng
	}

	win, err := newWindow("Game of Life", config.Width, config.Height, config.WindowScale)
	if err != nil {
		return err
	}
	defer win.Close()

	var (
		toggles   model.ToggleBatch
		mouseDown bool
	)
	cellAt := func(px, py int32) (int, int, bool) {
		x, y := int(px/win.scale), int(py/win.scale)
		return x, y, x >= 0 && x < config.Width && y >= 0 && y < config.Height
	}

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				logger.Info("Window closed.", "generation", grid.Generation())
				return nil
			case *sdl.MouseButtonEvent:
				if e.Button != sdl.BUTTON_LEFT {
					continue
				}
				if e.State == sdl.PRESSED {
					mouseDown = true
					if x, y, ok := cellAt(e.X, e.Y); ok {
						toggles.Add(x, y)
					}
				} else if mouseDown {
					mouseDown = false
					if err = toggles.Apply(grid); err != nil {
						return err
					}
				}
			case *sdl.MouseMotionEvent:
				if x, y, ok := cellAt(e.X, e.Y); ok && mouseDown {
					toggles.Add(x, y)
				}
			}
		}

		if err = buf.Draw(grid, palette, toggles.Cells()); err != nil {
			return err
		}
		if err = win.Blit(buf); err != nil {
			return err
		}

		start := time.Now()
		grid.Step()
		took := time.Since(start)
		if wait := config.FrameRate - took; wait > 0 {
			sdl.Delay(uint32(wait.Milliseconds()))
		} else {
			logger.Warn("Simulation too slow.", "took", took, "desired", config.FrameRate)
		}
	}
}
