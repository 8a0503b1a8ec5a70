package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/rules"
)

// neighbourOffsets lists the Moore neighbourhood as (dx, dy) pairs
var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// Cell is one position of the grid. The neighbour count is maintained by the
// grid on every birth and kill and is never recomputed on read.
type Cell struct {
	Alive      bool
	neighbours uint8
}

// LiveNeighbours returns the cached number of live cells around this one
func (c Cell) LiveNeighbours() int {
	return int(c.neighbours)
}

// Changes reports how many cells flipped during a Step
type Changes struct {
	Births int
	Deaths int
}

// Grid is a toroidal Game of Life board. Every edge wraps to the opposite
// edge, so all eight neighbour offsets of every cell land inside the grid.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	width      int
	height     int
	cells      []Cell
	snapshot   []Cell // reused by Step
	generation int
	history    []string // recent grid hashes for cycle detection
}

// NewGrid creates a grid of dead cells with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Generation returns the number of steps taken since construction or the last Clear
func (g *Grid) Generation() int {
	return g.generation
}

// Clear kills all cells and forgets the generation counter and history
func (g *Grid) Clear() {
	clear(g.cells)
	g.generation = 0
	g.history = nil
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) checkBounds(op string, x, y int) error {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return errors.Wrapf(ErrOutOfBounds, "[%s] (%d,%d) outside %dx%d", op, x, y, g.width, g.height)
	}
	return nil
}

// neighbour wraps (x+dx, y+dy) onto the torus. dx and dy are in [-1,1].
func (g *Grid) neighbour(x, y, dx, dy int) int {
	nx := (x + dx + g.width) % g.width
	ny := (y + dy + g.height) % g.height
	return g.index(nx, ny)
}

// adjustNeighbours adds delta to the count of each of the eight wrapped
// neighbours. On axes of length 1 or 2 some offsets hit the same cell and
// that cell is adjusted once per offset.
func (g *Grid) adjustNeighbours(x, y int, delta int8) {
	for _, off := range neighbourOffsets {
		i := g.neighbour(x, y, off[0], off[1])
		g.cells[i].neighbours = uint8(int8(g.cells[i].neighbours) + delta)
	}
}

func (g *Grid) birth(x, y int) bool {
	c := &g.cells[g.index(x, y)]
	if c.Alive {
		return false
	}
	c.Alive = true
	g.adjustNeighbours(x, y, 1)
	return true
}

func (g *Grid) kill(x, y int) bool {
	c := &g.cells[g.index(x, y)]
	if !c.Alive {
		return false
	}
	c.Alive = false
	g.adjustNeighbours(x, y, -1)
	return true
}

// Birth makes the cell at (x, y) alive. It does nothing if the cell is already alive.
func (g *Grid) Birth(x, y int) error {
	if err := g.checkBounds("Birth", x, y); err != nil {
		return err
	}
	g.birth(x, y)
	return nil
}

// Kill makes the cell at (x, y) dead. It does nothing if the cell is already dead.
func (g *Grid) Kill(x, y int) error {
	if err := g.checkBounds("Kill", x, y); err != nil {
		return err
	}
	g.kill(x, y)
	return nil
}

// Toggle flips the cell at (x, y)
func (g *Grid) Toggle(x, y int) error {
	if err := g.checkBounds("Toggle", x, y); err != nil {
		return err
	}
	if g.cells[g.index(x, y)].Alive {
		g.kill(x, y)
	} else {
		g.birth(x, y)
	}
	return nil
}

// IsAlive returns the state of a cell
func (g *Grid) IsAlive(x, y int) (bool, error) {
	if err := g.checkBounds("IsAlive", x, y); err != nil {
		return false, err
	}
	return g.cells[g.index(x, y)].Alive, nil
}

// LiveNeighbours returns the number of live cells among the eight wrapped neighbours of (x, y)
func (g *Grid) LiveNeighbours(x, y int) (int, error) {
	if err := g.checkBounds("LiveNeighbours", x, y); err != nil {
		return 0, err
	}
	return g.cells[g.index(x, y)].LiveNeighbours(), nil
}

// Cell returns a copy of the cell at (x, y)
func (g *Grid) Cell(x, y int) (Cell, error) {
	if err := g.checkBounds("Cell", x, y); err != nil {
		return Cell{}, err
	}
	return g.cells[g.index(x, y)], nil
}

// Step advances the grid by one generation.
//
// Decisions are read from a snapshot of the current generation and applied
// to the live grid through birth and kill, so only cells that actually flip
// pay for touching their neighbours.
func (g *Grid) Step() Changes {
	g.snapshot = append(g.snapshot[:0], g.cells...)

	var changes Changes
	for y := range g.height {
		for x := range g.width {
			c := g.snapshot[g.index(x, y)]
			next := rules.ApplyConwayRules(c.LiveNeighbours(), c.Alive)
			switch {
			case next && !c.Alive:
				g.birth(x, y)
				changes.Births++
			case !next && c.Alive:
				g.kill(x, y)
				changes.Deaths++
			}
		}
	}

	g.generation++
	return changes
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		if c.Alive {
			count++
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the alive flags of the grid
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		if c.Alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state matches one of the last three
// recorded states, which catches still lifes and period 2 and 3 oscillators.
// It needs at least three recorded states before it reports anything.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if g.history[len(g.history)-i] == currentHash {
			return true
		}
	}
	return false
}
