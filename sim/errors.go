package sim

import "errors"

var (
	// ErrMalformedInput is returned when a grid cannot be parsed: ragged rows,
	// unsupported characters, or a missing or duplicated start marker.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidObstaclePlacement is returned by WithAddedObstacle for cells that
	// are out of bounds, already blocked, or hold the guard's start.
	ErrInvalidObstaclePlacement = errors.New("invalid obstacle placement")
)
