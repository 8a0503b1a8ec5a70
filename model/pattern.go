package model

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	patternAlive = "#"
	patternDead  = "-"
)

// Patterns holds the built-in seed patterns by name
var Patterns = map[string]string{
	"block": `
- - - -
- # # -
- # # -
- - - -`,
	"blinker": `
- - - - -
- - - - -
- # # # -
- - - - -
- - - - -`,
	"glider": `
- - # - -
# - # - -
- # # - -
- - - - -
- - - - -`,
	"toad": `
- - - - - -
- - - - - -
- - # # # -
- # # # - -
- - - - - -
- - - - - -`,
	"beacon": `
- - - - - -
- # # - - -
- # # - - -
- - - # # -
- - - # # -
- - - - - -`,
}

// ParsePattern decodes pattern text into rows of alive flags.
//
// Rows are separated by newlines and tokens within a row by single spaces.
// "#" is alive and any other single character is dead. Whitespace around the
// whole text and around each row is ignored. Every row must have the same
// number of tokens.
func ParsePattern(text string) ([][]bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	rows := make([][]bool, 0, len(lines))
	for y, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil, errors.Wrapf(ErrMalformedPattern, "[ParsePattern] row %d is empty", y)
		}

		tokens := strings.Split(line, " ")
		row := make([]bool, len(tokens))
		for x, token := range tokens {
			if utf8.RuneCountInString(token) != 1 {
				return nil, errors.Wrapf(ErrMalformedPattern, "[ParsePattern] bad token %q at (%d,%d)", token, x, y)
			}
			row[x] = token == patternAlive
		}

		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, errors.Wrapf(ErrMalformedPattern,
				"[ParsePattern] row %d has %d tokens, want %d", y, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SeedFromPattern overlays a pattern at the origin of the grid, giving birth
// to every "#" cell. The pattern is validated in full before any cell
// changes, so a failed call leaves the grid untouched.
func (g *Grid) SeedFromPattern(text string) error {
	rows, err := ParsePattern(text)
	if err != nil {
		return errors.Wrap(err, "[SeedFromPattern] failed to parse pattern")
	}
	if len(rows) > g.height {
		return errors.Wrapf(ErrMalformedPattern,
			"[SeedFromPattern] %d rows do not fit grid height %d", len(rows), g.height)
	}
	if len(rows) > 0 && len(rows[0]) > g.width {
		return errors.Wrapf(ErrMalformedPattern,
			"[SeedFromPattern] %d columns do not fit grid width %d", len(rows[0]), g.width)
	}

	for y, row := range rows {
		for x, alive := range row {
			if alive {
				g.birth(x, y)
			}
		}
	}
	return nil
}

// SeedFromNamedPattern seeds the grid with one of the built-in Patterns
func (g *Grid) SeedFromNamedPattern(name string) error {
	text, ok := Patterns[name]
	if !ok {
		return errors.Errorf("[SeedFromNamedPattern] unknown pattern %q", name)
	}
	return g.SeedFromPattern(text)
}

// String serializes the grid in the pattern format read by SeedFromPattern
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.width * g.height * 2)
	for y := range g.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.width {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if g.cells[g.index(x, y)].Alive {
				sb.WriteString(patternAlive)
			} else {
				sb.WriteString(patternDead)
			}
		}
	}
	return sb.String()
}
