package astar

import "github.com/katalvlaran/gridsearch/frontier"

// Result is the outcome of one Search call.
type Result struct {
	start, goal int
	found       bool
	cost        float64
	path        []int
	opened      []frontier.Record
	closed      map[int]frontier.Record

	// Stats counts the work done by the call.
	Stats Stats
}

// Start returns the start id of the search.
func (r *Result) Start() int { return r.start }

// Goal returns the goal id of the search.
func (r *Result) Goal() int { return r.goal }

// Found reports whether the goal was reached.
func (r *Result) Found() bool { return r.found }

// Cost returns the total entry cost of the path, or +Inf when not found.
func (r *Result) Cost() float64 { return r.cost }

// Path returns the cell ids from start to goal inclusive, or an empty slice
// when the goal is unreachable.
func (r *Result) Path() []int {
	out := make([]int, len(r.path))
	copy(out, r.path)
	return out
}

// Opened returns the frontier contents at termination, ordered by id.
func (r *Result) Opened() []frontier.Record {
	out := make([]frontier.Record, len(r.opened))
	copy(out, r.opened)
	return out
}

// Closed returns a copy of the closed set at termination.
func (r *Result) Closed() map[int]frontier.Record {
	out := make(map[int]frontier.Record, len(r.closed))
	for id, rec := range r.closed {
		out[id] = rec
	}
	return out
}
