package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/rules"
)

// CountNeighboursScan counts living wrapped neighbours of (x, y) by looking
// at the grid instead of the cached count. Callers must pass in-bounds coordinates.
func (g *Grid) CountNeighboursScan(x, y int) int {
	count := 0
	for _, off := range neighbourOffsets {
		if g.cells[g.neighbour(x, y, off[0], off[1])].Alive {
			count++
		}
	}
	return count
}

// Verify rescans every cell and returns ErrCorruptCount for the first cell
// whose cached neighbour count disagrees.
func (g *Grid) Verify() error {
	for y := range g.height {
		for x := range g.width {
			want := g.CountNeighboursScan(x, y)
			if got := g.cells[g.index(x, y)].LiveNeighbours(); got != want {
				return errors.Wrapf(ErrCorruptCount, "[Verify] (%d,%d) cached %d, scanned %d", x, y, got, want)
			}
		}
	}
	return nil
}

// ReferenceNext computes the next generation's alive flags by a full rescan,
// indexed [y][x]. It does not modify the grid.
func (g *Grid) ReferenceNext() [][]bool {
	next := make([][]bool, g.height)
	for y := range g.height {
		next[y] = make([]bool, g.width)
		for x := range g.width {
			next[y][x] = rules.ApplyConwayRules(g.CountNeighboursScan(x, y), g.cells[g.index(x, y)].Alive)
		}
	}
	return next
}

// AliveRows returns the alive flags of the grid indexed [y][x]
func (g *Grid) AliveRows() [][]bool {
	rows := make([][]bool, g.height)
	for y := range g.height {
		rows[y] = make([]bool, g.width)
		for x := range g.width {
			rows[y][x] = g.cells[g.index(x, y)].Alive
		}
	}
	return rows
}
