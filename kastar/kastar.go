package kastar

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/frontier"
)

// Search runs KA*: one shared A* expansion from start that resolves every goal.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (astar.ErrNilGrid).
//  2. goals must be non-empty (ErrNoGoals); duplicates are ignored.
//  3. start must be traversable (astar.ErrInvalidStart).
//  4. every goal must be traversable (astar.ErrInvalidGoal).
//
// Goals the expansion never reaches map to empty paths.
func Search(g astar.Grid, start int, goals []int, opts ...astar.Option) (*MultiResult, error) {
	cfg := astar.BuildOptions(opts...)
	targets, err := validate(g, start, goals)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	r := &runner{
		grid:    g,
		options: cfg,
		start:   start,
		goals:   targets,
		active:  append([]int(nil), targets...),
		opened:  frontier.New(0),
		closed:  make(map[int]frontier.Record),
	}
	if err = r.init(); err != nil {
		return nil, err
	}
	if err = r.process(); err != nil {
		return nil, err
	}

	res := r.result()
	cfg.Recorder.ObserveSearch(Algorithm, res.Stats, time.Since(began))
	cfg.Logger.Debug("kastar: search finished",
		"start", start, "goals", len(targets), "unreachable", res.Stats.Unreachable,
		"expanded", res.Stats.Expanded, "heuristic_calls", res.Stats.HeuristicCalls)

	return res, nil
}

// ActiveHeuristic returns the minimum of g.Heuristic(id, goal) over active,
// or +Inf when active is empty.
func ActiveHeuristic(g astar.Grid, id int, active []int) (float64, error) {
	h := math.Inf(1)
	for _, goal := range active {
		d, err := g.Heuristic(id, goal)
		if err != nil {
			return 0, fmt.Errorf("%w: heuristic(%d, %d): %w", astar.ErrGrid, id, goal, err)
		}
		h = math.Min(h, d)
	}
	return h, nil
}

// validate checks the inputs shared by Search and SearchSeeded and returns
// the normalized goal list.
func validate(g astar.Grid, start int, goals []int) ([]int, error) {
	if g == nil {
		return nil, astar.ErrNilGrid
	}
	targets := normalizeGoals(goals)
	if len(targets) == 0 {
		return nil, ErrNoGoals
	}
	if !g.Traversable(start) {
		return nil, fmt.Errorf("%w: %d", astar.ErrInvalidStart, start)
	}
	for _, goal := range targets {
		if !g.Traversable(goal) {
			return nil, fmt.Errorf("%w: %d", astar.ErrInvalidGoal, goal)
		}
	}
	return targets, nil
}

// runner holds the mutable state for a single KA* episode.
type runner struct {
	grid    astar.Grid
	options astar.Options
	start   int
	goals   []int // all goals, ascending
	active  []int // goals not yet closed, ascending
	opened  *frontier.Frontier
	closed  map[int]frontier.Record
	best    frontier.Record // last popped record
	stats   astar.Stats
}

// init scores the start record against every goal and pushes it with g = 0.
func (r *runner) init() error {
	rec := frontier.NewRecord(r.start)
	r.best = rec
	if err := r.update(&rec, 0); err != nil {
		return err
	}
	r.opened.Push(rec)
	r.stats.Pushed++

	return nil
}

// process pops records until every goal is resolved or the frontier is empty.
func (r *runner) process() error {
	for len(r.active) > 0 {
		best, ok := r.opened.Pop()
		if !ok {
			break
		}
		r.best = best
		r.closed[best.ID] = best
		r.stats.Expanded++
		r.options.OnExpand(best)

		if r.deactivate(best.ID) {
			r.options.Logger.Debug("kastar: goal resolved",
				"goal", best.ID, "cost", best.G, "remaining", len(r.active))
			if len(r.active) == 0 {
				return nil
			}
			if err := r.rescore(); err != nil {
				return err
			}
		}
		if err := r.expand(); err != nil {
			return err
		}
	}
	r.stats.Unreachable = len(r.active)

	return nil
}

// deactivate removes id from the active goals and reports whether it was one.
func (r *runner) deactivate(id int) bool {
	i := sort.SearchInts(r.active, id)
	if i == len(r.active) || r.active[i] != id {
		return false
	}
	r.active = append(r.active[:i], r.active[i+1:]...)
	return true
}

// rescore recomputes h and f of every open record against the shrunken
// active goal set and restores the heap order.
func (r *runner) rescore() error {
	var firstErr error
	r.opened.Rescore(func(rec *frontier.Record) {
		if firstErr != nil {
			return
		}
		h, err := r.heuristic(rec.ID)
		if err != nil {
			firstErr = err
			return
		}
		rec.Set(rec.G, h)
	})
	return firstErr
}

// expand relaxes every non-closed neighbor of r.best, in ascending id order,
// pushing only strict improvements.
func (r *runner) expand() error {
	ids, err := astar.SortedNeighbors(r.grid, r.best.ID)
	if err != nil {
		return fmt.Errorf("%w: neighbors(%d): %w", astar.ErrGrid, r.best.ID, err)
	}

	for _, id := range ids {
		if _, done := r.closed[id]; done {
			continue
		}
		child, ok := r.opened.Get(id)
		if !ok {
			child = frontier.NewRecord(id)
		}
		w, err := astar.Weight(r.grid, id)
		if err != nil {
			return err
		}
		gNew := r.best.G + w
		if child.G <= gNew {
			continue
		}
		if err = r.update(&child, gNew); err != nil {
			return err
		}
		r.opened.Push(child)
		r.stats.Pushed++
	}

	return nil
}

// update sets g and the active-goal heuristic of rec. The parent link is only
// written when rec is not the record currently being expanded.
func (r *runner) update(rec *frontier.Record, g float64) error {
	if rec.ID != r.best.ID {
		rec.Parent = r.best.ID
	}
	h, err := r.heuristic(rec.ID)
	if err != nil {
		return err
	}
	rec.Set(g, h)

	return nil
}

// heuristic evaluates the active-goal heuristic of id and counts the calls.
func (r *runner) heuristic(id int) (float64, error) {
	r.stats.HeuristicCalls += len(r.active)
	return ActiveHeuristic(r.grid, id, r.active)
}

// result snapshots the episode into a MultiResult.
func (r *runner) result() *MultiResult {
	res := &MultiResult{
		start:  r.start,
		goals:  r.goals,
		paths:  make(map[int][]int, len(r.goals)),
		costs:  make(map[int]float64, len(r.goals)),
		opened: r.opened.All(),
		closed: r.closed,
		Stats:  r.stats,
	}
	for _, goal := range r.goals {
		res.paths[goal] = astar.ReconstructPath(r.closed, r.start, goal)
		if rec, ok := r.closed[goal]; ok {
			res.costs[goal] = rec.G
		}
	}
	return res
}
