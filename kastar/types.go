package kastar

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/frontier"
)

// Algorithm names reported to astar.Recorder.
const (
	Algorithm       = "kastar"
	AlgorithmSeeded = "kastar-h"
)

// ErrNoGoals indicates that a multi-goal search was called without goals.
var ErrNoGoals = errors.New("kastar: goal set is empty")

// MultiResult is the outcome of a multi-goal search: one path per goal.
type MultiResult struct {
	start  int
	goals  []int
	paths  map[int][]int
	costs  map[int]float64
	opened []frontier.Record
	closed map[int]frontier.Record

	// Stats counts the work done by the call.
	Stats astar.Stats
}

// Start returns the start id.
func (m *MultiResult) Start() int { return m.start }

// Goals returns the de-duplicated goals in ascending order.
func (m *MultiResult) Goals() []int {
	out := make([]int, len(m.goals))
	copy(out, m.goals)
	return out
}

// Path returns the path from start to goal inclusive, or an empty slice when
// goal is unreachable or was not part of the search.
func (m *MultiResult) Path(goal int) []int {
	p := m.paths[goal]
	out := make([]int, len(p))
	copy(out, p)
	return out
}

// Paths returns a copy of the goal → path lookup.
func (m *MultiResult) Paths() map[int][]int {
	out := make(map[int][]int, len(m.paths))
	for goal := range m.paths {
		out[goal] = m.Path(goal)
	}
	return out
}

// Found reports whether goal was reached.
func (m *MultiResult) Found(goal int) bool { return len(m.paths[goal]) > 0 }

// Cost returns the path cost to goal, or +Inf when it was not reached.
func (m *MultiResult) Cost(goal int) float64 {
	if c, ok := m.costs[goal]; ok {
		return c
	}
	return math.Inf(1)
}

// Unreachable returns the goals without a path, in ascending order.
func (m *MultiResult) Unreachable() []int {
	out := []int{}
	for _, goal := range m.goals {
		if !m.Found(goal) {
			out = append(out, goal)
		}
	}
	return out
}

// Opened returns the frontier contents at termination, ordered by id.
func (m *MultiResult) Opened() []frontier.Record {
	out := make([]frontier.Record, len(m.opened))
	copy(out, m.opened)
	return out
}

// Closed returns a copy of the closed set at termination.
func (m *MultiResult) Closed() map[int]frontier.Record {
	out := make(map[int]frontier.Record, len(m.closed))
	for id, rec := range m.closed {
		out[id] = rec
	}
	return out
}

// normalizeGoals returns the goals sorted ascending without duplicates.
func normalizeGoals(goals []int) []int {
	out := make([]int, 0, len(goals))
	seen := make(map[int]struct{}, len(goals))
	for _, g := range goals {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Ints(out)
	return out
}
