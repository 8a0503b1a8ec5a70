package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a grid is constructed with a width or height below 1
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfBounds is returned for coordinates outside [0,width)x[0,height)
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrMalformedPattern is returned when pattern text does not fit the grid or has ragged rows
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrInvalidProbability is returned when a random seeding density is outside [0,1]
	ErrInvalidProbability = errors.New("invalid probability")
	// ErrCorruptCount is returned by Verify when a cached neighbour count disagrees with a rescan
	ErrCorruptCount = errors.New("neighbour count does not match grid")
)
