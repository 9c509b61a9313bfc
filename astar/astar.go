package astar

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/gridsearch/frontier"
)

// Search computes the least-cost path from start to goal on g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start must be traversable (ErrInvalidStart).
//  3. goal must be traversable (ErrInvalidGoal).
//
// Returns a Result whose Path is empty when goal is unreachable, or an error
// wrapping ErrGrid / ErrNegativeWeight when the grid cannot be queried.
func Search(g Grid, start, goal int, opts ...Option) (*Result, error) {
	// 1) Build options.
	cfg := BuildOptions(opts...)

	// 2) Validate inputs.
	if g == nil {
		return nil, ErrNilGrid
	}
	if !g.Traversable(start) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStart, start)
	}
	if !g.Traversable(goal) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGoal, goal)
	}

	// 3) Run the episode.
	began := time.Now()
	r := &runner{
		grid:    g,
		options: cfg,
		start:   start,
		goal:    goal,
		opened:  frontier.New(0),
		closed:  make(map[int]frontier.Record),
	}
	if err := r.init(); err != nil {
		return nil, err
	}
	if err := r.process(); err != nil {
		return nil, err
	}

	// 4) Package the result and report.
	res := r.result()
	cfg.Recorder.ObserveSearch(Algorithm, res.Stats, time.Since(began))
	cfg.Logger.Debug("astar: search finished",
		"start", start, "goal", goal, "found", res.found,
		"expanded", res.Stats.Expanded, "heuristic_calls", res.Stats.HeuristicCalls)

	return res, nil
}

// runner holds the mutable state for a single A* episode.
type runner struct {
	grid    Grid
	options Options
	start   int
	goal    int
	opened  *frontier.Frontier
	closed  map[int]frontier.Record
	best    frontier.Record // last popped record
	found   bool
	stats   Stats
}

// init pushes the start record with g = 0.
func (r *runner) init() error {
	h, err := r.heuristic(r.start)
	if err != nil {
		return err
	}
	rec := frontier.NewRecord(r.start)
	rec.Set(0, h)
	r.opened.Push(rec)
	r.stats.Pushed++

	return nil
}

// process pops the best record until the goal is closed or the frontier is
// exhausted.
func (r *runner) process() error {
	for {
		best, ok := r.opened.Pop()
		if !ok {
			r.found = false
			r.stats.Unreachable = 1
			return nil
		}
		r.best = best
		r.closed[best.ID] = best
		r.stats.Expanded++
		r.options.OnExpand(best)

		if best.ID == r.goal {
			r.found = true
			return nil
		}
		if err := r.expand(); err != nil {
			return err
		}
	}
}

// expand relaxes every non-closed neighbor of r.best, in ascending id order.
// A neighbor is pushed only when the new cost is strictly better than the
// one already stored in the frontier.
func (r *runner) expand() error {
	ids, err := SortedNeighbors(r.grid, r.best.ID)
	if err != nil {
		return fmt.Errorf("%w: neighbors(%d): %w", ErrGrid, r.best.ID, err)
	}

	for _, id := range ids {
		if _, done := r.closed[id]; done {
			continue
		}
		child, ok := r.opened.Get(id)
		if !ok {
			child = frontier.NewRecord(id)
		}
		w, err := Weight(r.grid, id)
		if err != nil {
			return err
		}
		gNew := r.best.G + w
		if child.G <= gNew {
			continue
		}
		h, err := r.heuristic(id)
		if err != nil {
			return err
		}
		child.Parent = r.best.ID
		child.Set(gNew, h)
		r.opened.Push(child)
		r.stats.Pushed++
	}

	return nil
}

// heuristic evaluates the grid heuristic from id to the goal.
func (r *runner) heuristic(id int) (float64, error) {
	r.stats.HeuristicCalls++
	h, err := r.grid.Heuristic(id, r.goal)
	if err != nil {
		return 0, fmt.Errorf("%w: heuristic(%d, %d): %w", ErrGrid, id, r.goal, err)
	}
	return h, nil
}

// result snapshots the episode state.
func (r *runner) result() *Result {
	res := &Result{
		start:  r.start,
		goal:   r.goal,
		found:  r.found,
		cost:   math.Inf(1),
		opened: r.opened.All(),
		closed: r.closed,
		Stats:  r.stats,
	}
	if r.found {
		res.cost = r.best.G
		res.path = ReconstructPath(r.closed, r.start, r.best.ID)
	} else {
		res.path = []int{}
	}
	return res
}

// Weight fetches the entry cost of id and rejects negative or NaN values.
func Weight(g Grid, id int) (float64, error) {
	w, err := g.Weight(id)
	if err != nil {
		return 0, fmt.Errorf("%w: weight(%d): %w", ErrGrid, id, err)
	}
	if w < 0 || math.IsNaN(w) {
		return 0, fmt.Errorf("%w: cell %d weight=%g", ErrNegativeWeight, id, w)
	}
	return w, nil
}
