// Package kastar finds shortest paths from one start cell to a set of goal
// cells.
//
// Two drivers are provided:
//
//   - Search (KA*): a single A* expansion shared by every goal. The heuristic
//     of an open record is the minimum grid heuristic toward any still-active
//     goal. Each time a goal is closed it leaves the active set and every open
//     record is re-scored, since its nearest goal may have just been satisfied;
//     the rescan costs O(|open|) and happens only on goal hits.
//   - SearchSeeded (KA*-H): goals are sorted by heuristic distance from the
//     start (ties by id) and each runs an independent astar.Search. Frontier
//     and closed contents are unioned (first record seen per id wins) and each
//     goal keeps its own path. No expansion work is shared.
//
// Both return a MultiResult: a per-goal path lookup in which an unreachable
// goal maps to an empty path.
//
// Error handling:
//
//   - astar.ErrNilGrid, astar.ErrInvalidStart, astar.ErrInvalidGoal for bad input.
//   - ErrNoGoals when the goal set is empty.
//   - astar.ErrGrid / astar.ErrNegativeWeight when the grid cannot be queried.
//
// Complexity (KA*):
//
//   - Time:  O(E log V + k·V·k) worst case for k goals (one O(V·k) rescan per goal hit).
//   - Space: O(V).
package kastar
