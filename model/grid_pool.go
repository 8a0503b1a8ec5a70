package model

import (
	"sync"

	"github.com/pkg/errors"
)

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grids of one fixed size across driver restarts
type GridPool struct {
	width  int
	height int
	pool   sync.Pool
}

func NewGridPool(width, height int) (*GridPool, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGridPool] %dx%d", width, height)
	}
	p := &GridPool{width: width, height: height}
	p.pool.New = func() interface{} {
		g, _ := NewGrid(width, height)
		return g
	}
	return p, nil
}

// Get retrieves a dead grid of the pool's size
func (p *GridPool) Get() *Grid {
	return p.pool.Get().(*Grid)
}

// Put clears a grid and returns it to the pool. Grids of another size are dropped.
func (p *GridPool) Put(g *Grid) {
	if g.width != p.width || g.height != p.height {
		return
	}
	g.Clear()
	p.pool.Put(g)
}
