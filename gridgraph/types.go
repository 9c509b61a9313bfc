// Package gridgraph defines core types, options, and sentinel errors
// for the grid service.
package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrCellOutOfRange indicates a cell id outside [0, Width×Height).
	ErrCellOutOfRange = errors.New("gridgraph: cell id out of range")
	// ErrCellBlocked indicates a cell id that refers to an obstacle.
	ErrCellBlocked = errors.New("gridgraph: cell is blocked")
	// ErrBadObstacleRatio indicates an obstacle percentage outside [0,100].
	ErrBadObstacleRatio = errors.New("gridgraph: obstacle percentage must be within [0,100]")
)

// Obstacle is the cell value generators use for blocked cells.
const Obstacle = -1

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, W, E, S.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: NW, N, NE, W, E, SW, S, SE.
	Conn8
)

// String returns "4" or "8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "8"
	}
	return "4"
}

// GridOptions contains tunable parameters for the grid service.
type GridOptions struct {
	// LandThreshold specifies the minimum cell value considered traversable.
	LandThreshold int
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// Weighted makes the entry cost of a cell its value instead of 1.
	Weighted bool
}

// DefaultGridOptions returns a GridOptions with default settings:
// LandThreshold=1 (values ≥1 are traversable), Conn=Conn4, unit weights.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		LandThreshold: 1,
		Conn:          Conn4,
		Weighted:      false,
	}
}

// GridGraph treats a 2D integer grid as a graph. It is immutable once built.
// Width and Height define dimensions; CellValues[y][x] holds the original input value.
// Conn, LandThreshold and Weighted are set from GridOptions during construction.
// neighborOffsets is precomputed in ascending-id order; minWeight scales the heuristic.
type GridGraph struct {
	Width, Height   int
	CellValues      [][]int
	Conn            Connectivity
	LandThreshold   int
	Weighted        bool
	neighborOffsets [][2]int
	minWeight       float64
}
