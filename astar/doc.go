// Package astar implements single-goal A* shortest-path search over a grid
// service, plus the shared contract (Grid, Options, Stats, Recorder) used by
// the multi-goal searches in package kastar.
//
// Overview:
//
//   - Search expands cells in order of f = g + h, where g is the accumulated
//     entry cost from the start and h is the grid's heuristic estimate to the goal.
//   - The open set is a frontier.Frontier (indexed heap, lazy deletion); the
//     closed set is a map from cell id to its frozen frontier.Record.
//   - Parents are stored as cell ids, so the closed set owns every finalized
//     record and a path is rebuilt by walking ids back to the start.
//
// Requirements on the grid:
//
//   - Weight(id) ≥ 0 for every traversable cell.
//   - Heuristic(a, b) is admissible and consistent. Under these conditions a
//     closed record is final and never re-expanded.
//
// Determinism:
//
//   - Neighbors are relaxed in ascending id order and frontier ties are broken
//     by (g ascending, id descending), so identical inputs always produce
//     identical paths.
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid:       the grid is nil.
//   - ErrInvalidStart:  the start id is not a traversable cell.
//   - ErrInvalidGoal:   a goal id is not a traversable cell.
//   - ErrGrid:          the grid failed to answer a query (wrapped with the cause).
//   - ErrNegativeWeight: the grid reported a negative entry cost.
//
// An unreachable goal is not an error: Result.Found is false and Result.Path
// is empty.
//
// Complexity:
//
//   - Time:  O(E log V) with V visited cells and E relaxed edges.
//   - Space: O(V).
//
// Thread safety:
//
//   - Each call owns its own frontier and closed set. Concurrent calls are safe
//     as long as the Grid is not mutated while they run.
package astar
