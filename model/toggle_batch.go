package model

// ToggleBatch collects distinct cells to flip together, as when a mouse is
// dragged across the grid and released.
type ToggleBatch struct {
	cells [][2]int
	seen  map[[2]int]struct{}
}

// Add records (x, y) once, keeping the order cells were first added
func (b *ToggleBatch) Add(x, y int) {
	if b.seen == nil {
		b.seen = make(map[[2]int]struct{})
	}
	key := [2]int{x, y}
	if _, ok := b.seen[key]; ok {
		return
	}
	b.seen[key] = struct{}{}
	b.cells = append(b.cells, key)
}

// Cells returns the pending cells as (x, y) pairs
func (b *ToggleBatch) Cells() [][2]int {
	return b.cells
}

func (b *ToggleBatch) Len() int {
	return len(b.cells)
}

// Apply toggles every pending cell of g and empties the batch. All cells
// are bounds-checked first, so an error leaves g and the batch unchanged.
func (b *ToggleBatch) Apply(g *Grid) error {
	for _, c := range b.cells {
		if err := g.checkBounds("Apply", c[0], c[1]); err != nil {
			return err
		}
	}
	for _, c := range b.cells {
		i := g.index(c[0], c[1])
		if g.cells[i].Alive {
			g.kill(c[0], c[1])
		} else {
			g.birth(c[0], c[1])
		}
	}
	b.Reset()
	return nil
}

// Reset drops all pending cells
func (b *ToggleBatch) Reset() {
	b.cells = b.cells[:0]
	clear(b.seen)
}
