// Package gridgraph provides utilities to treat a 2D grid of integer cell values
// as a graph. It supports:
//
//   - Four- or eight-connectivity (Conn4 or Conn8)
//   - Unit or value-based entry costs
//   - Admissible distance heuristics for A*
//   - Identification of connected components of traversable cells
//
// Cells with value < LandThreshold are obstacles; cells with value ≥ LandThreshold are traversable.
package gridgraph

import (
	"fmt"
	"math"
)

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]int, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation
	cells := make([][]int, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]int, w)
		copy(cells[y], values[y])
	}
	// Precompute neighbor offsets; row-major order keeps neighbor ids ascending.
	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	} else {
		offsets = [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	}
	gg := &GridGraph{
		Width:           w,
		Height:          h,
		CellValues:      cells,
		Conn:            opts.Conn,
		LandThreshold:   opts.LandThreshold,
		Weighted:        opts.Weighted,
		neighborOffsets: offsets,
	}
	gg.minWeight = gg.smallestWeight()

	return gg, nil
}

// From2D builds a GridGraph with default options and the given connectivity.
func From2D(values [][]int, conn Connectivity) (*GridGraph, error) {
	opts := DefaultGridOptions()
	opts.Conn = conn
	return NewGridGraph(values, opts)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// Index maps (x,y) to a row‑major id: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) Index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row‑major id back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(id int) (x, y int) {
	return id % gg.Width, id / gg.Width
}

// Size returns the number of cells, obstacles included.
func (gg *GridGraph) Size() int { return gg.Width * gg.Height }

// contains reports whether id addresses a cell of the grid.
func (gg *GridGraph) contains(id int) bool {
	return id >= 0 && id < gg.Size()
}

// value returns the stored value of cell id; id must be in range.
func (gg *GridGraph) value(id int) int {
	x, y := gg.Coordinate(id)
	return gg.CellValues[y][x]
}

// Traversable reports whether id is an in-range cell with value ≥ LandThreshold.
// Complexity: O(1).
func (gg *GridGraph) Traversable(id int) bool {
	return gg.contains(id) && gg.value(id) >= gg.LandThreshold
}

// ValidIDs returns every traversable cell id in ascending order.
// Complexity: O(W×H).
func (gg *GridGraph) ValidIDs() []int {
	ids := make([]int, 0, gg.Size())
	for id := 0; id < gg.Size(); id++ {
		if gg.Traversable(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Neighbors returns the traversable cells adjacent to id in ascending order.
// Returns ErrCellOutOfRange for ids outside the grid.
// Complexity: O(d).
func (gg *GridGraph) Neighbors(id int) ([]int, error) {
	if !gg.contains(id) {
		return nil, fmt.Errorf("%w: %d", ErrCellOutOfRange, id)
	}
	x, y := gg.Coordinate(id)
	out := make([]int, 0, len(gg.neighborOffsets))
	for _, d := range gg.neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if !gg.InBounds(nx, ny) {
			continue
		}
		if gg.CellValues[ny][nx] < gg.LandThreshold {
			continue // obstacle
		}
		out = append(out, gg.Index(nx, ny))
	}
	return out, nil
}

// Weight returns the cost of entering id: 1, or the cell value when Weighted.
// Returns ErrCellOutOfRange or ErrCellBlocked for invalid cells.
// Complexity: O(1).
func (gg *GridGraph) Weight(id int) (float64, error) {
	if !gg.contains(id) {
		return 0, fmt.Errorf("%w: %d", ErrCellOutOfRange, id)
	}
	if !gg.Traversable(id) {
		return 0, fmt.Errorf("%w: %d", ErrCellBlocked, id)
	}
	if !gg.Weighted {
		return 1, nil
	}
	return float64(gg.value(id)), nil
}

// Heuristic returns a lower bound on the cost from a to b: Manhattan distance
// (Conn4) or Chebyshev distance (Conn8), times the smallest traversable weight.
// Returns ErrCellOutOfRange for ids outside the grid.
// Complexity: O(1).
func (gg *GridGraph) Heuristic(a, b int) (float64, error) {
	if !gg.contains(a) {
		return 0, fmt.Errorf("%w: %d", ErrCellOutOfRange, a)
	}
	if !gg.contains(b) {
		return 0, fmt.Errorf("%w: %d", ErrCellOutOfRange, b)
	}
	return float64(gg.steps(a, b)) * gg.minWeight, nil
}

// Manhattan returns |dx| + |dy| between two in-range cells.
func (gg *GridGraph) Manhattan(a, b int) int {
	ax, ay := gg.Coordinate(a)
	bx, by := gg.Coordinate(b)
	return abs(ax-bx) + abs(ay-by)
}

// steps returns the minimum number of moves between a and b on an open grid.
func (gg *GridGraph) steps(a, b int) int {
	if gg.Conn != Conn8 {
		return gg.Manhattan(a, b)
	}
	ax, ay := gg.Coordinate(a)
	bx, by := gg.Coordinate(b)
	dx, dy := abs(ax-bx), abs(ay-by)
	if dx > dy {
		return dx
	}
	return dy
}

// smallestWeight returns the minimum entry cost over traversable cells,
// clamped at 0, or 0 when there is none.
func (gg *GridGraph) smallestWeight() float64 {
	if !gg.Weighted {
		return 1
	}
	lowest := math.Inf(1)
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			v := gg.CellValues[y][x]
			if v >= gg.LandThreshold && float64(v) < lowest {
				lowest = float64(v)
			}
		}
	}
	if math.IsInf(lowest, 1) || lowest < 0 {
		return 0
	}
	return lowest
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
