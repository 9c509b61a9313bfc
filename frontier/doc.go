// Package frontier provides the "opened" set used by the A* family of searches:
// a priority container of search records keyed by cell identity.
//
// What:
//
//   - Record is the mutable per-episode bookkeeping for one grid cell
//     (accumulated cost G, heuristic H, priority F = G + H, parent id).
//   - Frontier stores exactly one live Record per cell id and always pops the
//     record that is smallest under Less.
//
// Ordering (Less):
//
//   - F ascending, then G ascending, then ID descending.
//   - The ID rule is a pure tie-breaker so that equal-priority pops are
//     deterministic across runs.
//
// Implementation:
//
//   - An id → slot index gives O(1) Contains/Get/Remove.
//   - A container/heap min-heap of (key, version) entries gives O(log n)
//     Push/Pop. Overwrites and removals never touch the heap; outdated entries
//     are discarded when they surface ("lazy deletion"), and the heap is
//     compacted once stale entries dominate.
//   - Rescore mutates every stored record in place and rebuilds the heap in O(n).
//
// Complexity:
//
//   - Push, Pop:              O(log n) amortized.
//   - Contains, Get, Remove:  O(1).
//   - All, Rescore:           O(n) (All additionally sorts by id: O(n log n)).
//
// A Frontier is not safe for concurrent use; each search episode owns its own.
package frontier
