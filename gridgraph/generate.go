package gridgraph

import (
	"fmt"
	"math/rand"
)

// Open returns an n×n grid of ones: every cell traversable at unit cost.
// n < 1 yields an empty grid (rejected by NewGridGraph).
func Open(n int) [][]int {
	if n < 1 {
		return [][]int{}
	}
	grid := make([][]int, n)
	for y := range grid {
		row := make([]int, n)
		for x := range row {
			row[x] = 1
		}
		grid[y] = row
	}
	return grid
}

// RandomObstacles returns an n×n grid of ones in which round(n·n·percent/100)
// distinct cells, chosen with rng, are set to Obstacle.
// Returns ErrBadObstacleRatio if percent is outside [0,100].
func RandomObstacles(n, percent int, rng *rand.Rand) ([][]int, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: %d", ErrBadObstacleRatio, percent)
	}
	grid := Open(n)
	if n < 1 {
		return grid, nil
	}
	total := n * n
	blocked := (total*percent + 50) / 100
	for _, id := range rng.Perm(total)[:blocked] {
		grid[id/n][id%n] = Obstacle
	}
	return grid, nil
}

// NewOpen builds an n×n open GridGraph with default options.
func NewOpen(n int) (*GridGraph, error) {
	return NewGridGraph(Open(n), DefaultGridOptions())
}
