package model

import (
	"math/rand"

	"github.com/pkg/errors"
)

const (
	ColorBackground uint32 = 0x000000
	ColorLive       uint32 = 0xff0000
	ColorPending    uint32 = 0xffffff
)

// Palette picks the colour of each live cell. With a non-nil Random every
// live cell gets a fresh random colour on every draw.
type Palette struct {
	Live   uint32
	Random *rand.Rand
}

// DefaultPalette draws live cells red
func DefaultPalette() Palette {
	return Palette{Live: ColorLive}
}

func (p Palette) color() uint32 {
	if p.Random != nil {
		return p.Random.Uint32() & 0xffffff
	}
	return p.Live
}

// FrameBuffer is a row-major 0xRRGGBB pixel buffer with one pixel per cell
type FrameBuffer struct {
	Pixels []uint32
	width  int
	height int
}

func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewFrameBuffer] %dx%d", width, height)
	}
	return &FrameBuffer{
		Pixels: make([]uint32, width*height),
		width:  width,
		height: height,
	}, nil
}

// GetWidth returns the width of the buffer in pixels
func (b *FrameBuffer) GetWidth() int {
	return b.width
}

// GetHeight returns the height of the buffer in pixels
func (b *FrameBuffer) GetHeight() int {
	return b.height
}

// SetPixel sets the colour at (x, y)
func (b *FrameBuffer) SetPixel(x, y int, color uint32) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return errors.Wrapf(ErrOutOfBounds, "[SetPixel] (%d,%d) outside %dx%d", x, y, b.width, b.height)
	}
	b.Pixels[y*b.width+x] = color
	return nil
}

// Pixel returns the colour at (x, y), or the background colour outside the buffer
func (b *FrameBuffer) Pixel(x, y int) uint32 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ColorBackground
	}
	return b.Pixels[y*b.width+x]
}

// Clear paints every pixel with the background colour
func (b *FrameBuffer) Clear() {
	clear(b.Pixels)
}

// Draw clears the buffer, paints every live cell of g and then every pending
// toggle. The grid must have the same dimensions as the buffer.
func (b *FrameBuffer) Draw(g *Grid, palette Palette, pending [][2]int) error {
	if g.width != b.width || g.height != b.height {
		return errors.Wrapf(ErrInvalidDimensions,
			"[Draw] grid %dx%d does not match buffer %dx%d", g.width, g.height, b.width, b.height)
	}

	b.Clear()
	for i, c := range g.cells {
		if c.Alive {
			b.Pixels[i] = palette.color()
		}
	}
	for _, p := range pending {
		if err := b.SetPixel(p[0], p[1], ColorPending); err != nil {
			return errors.Wrap(err, "[Draw] pending toggle")
		}
	}
	return nil
}
