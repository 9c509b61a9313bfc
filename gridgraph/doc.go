// Package gridgraph treats a 2D grid of integer cells as the read-only graph
// service consumed by the A* family of searches (astar.Grid).
//
// What:
//
//   - GridGraph wraps a rectangular [][]int grid with a tunable LandThreshold.
//     Cells with value ≥ LandThreshold are traversable; everything below is an
//     obstacle (generated grids use -1).
//   - Cell ids are row-major indices: id = y*Width + x.
//   - Neighbors follow Conn4 (N, W, E, S) or Conn8 (adds diagonals) and are
//     returned in ascending id order.
//   - Weight is 1 for every traversable cell, or the cell value when
//     GridOptions.Weighted is set.
//   - Heuristic is the Manhattan (Conn4) or Chebyshev (Conn8) distance scaled
//     by the smallest traversable weight, so it never overestimates.
//   - Distances is the brute-force reference (BFS, or uniform-cost relaxation
//     on weighted grids) that search results are checked against.
//   - ConnectedComponents groups traversable cells into islands.
//   - Open and RandomObstacles generate test grids.
//
// Complexity:
//
//   - Neighbors, Weight, Heuristic, Traversable: O(1).
//   - ValidIDs, ConnectedComponents:              O(W×H×d), d = 4 or 8.
//   - Distances:                                  O(W×H×d) unweighted, O(W×H×d·log(W×H)) weighted.
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrCellOutOfRange: a cell id lies outside the grid.
//   - ErrCellBlocked: a cell id refers to an obstacle.
//   - ErrBadObstacleRatio: a generator was asked for an obstacle share outside [0,100].
//
// A GridGraph is immutable once built and safe for concurrent readers.
package gridgraph
