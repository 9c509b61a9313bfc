package kastar

import (
	"sort"
	"time"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/frontier"
)

// SearchSeeded runs KA*-H: an independent astar.Search per goal, nearest goal
// (by heuristic from start, ties by id) first. Opened and closed records of
// all runs are unioned, keeping the first record seen for each id.
//
// Validation matches Search. Stats are summed over the runs plus the
// heuristic calls spent sorting the goals.
func SearchSeeded(g astar.Grid, start int, goals []int, opts ...astar.Option) (*MultiResult, error) {
	cfg := astar.BuildOptions(opts...)
	targets, err := validate(g, start, goals)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	order, err := SortGoals(g, start, targets)
	if err != nil {
		return nil, err
	}

	res := &MultiResult{
		start: start,
		goals: targets,
		paths: make(map[int][]int, len(targets)),
		costs: make(map[int]float64, len(targets)),
	}
	res.Stats.HeuristicCalls = len(targets)

	opened := make(map[int]frontier.Record)
	closed := make(map[int]frontier.Record)
	for _, goal := range order {
		one, err := astar.Search(g, start, goal,
			astar.WithLogger(cfg.Logger), astar.WithOnExpand(cfg.OnExpand))
		if err != nil {
			return nil, err
		}
		res.paths[goal] = one.Path()
		if one.Found() {
			res.costs[goal] = one.Cost()
		}
		for _, rec := range one.Opened() {
			if _, ok := opened[rec.ID]; !ok {
				opened[rec.ID] = rec
			}
		}
		for id, rec := range one.Closed() {
			if _, ok := closed[id]; !ok {
				closed[id] = rec
			}
		}
		res.Stats = res.Stats.Add(one.Stats)
	}

	res.closed = closed
	res.opened = make([]frontier.Record, 0, len(opened))
	for _, rec := range opened {
		res.opened = append(res.opened, rec)
	}
	sort.Slice(res.opened, func(i, j int) bool { return res.opened[i].ID < res.opened[j].ID })

	cfg.Recorder.ObserveSearch(AlgorithmSeeded, res.Stats, time.Since(began))
	cfg.Logger.Debug("kastar: seeded search finished",
		"start", start, "goals", len(targets), "unreachable", res.Stats.Unreachable,
		"expanded", res.Stats.Expanded)

	return res, nil
}

// SortGoals orders goals by ascending g.Heuristic(start, goal), ties by id.
// It makes exactly one heuristic call per goal.
func SortGoals(g astar.Grid, start int, goals []int) ([]int, error) {
	type scored struct {
		id int
		h  float64
	}
	list := make([]scored, 0, len(goals))
	for _, goal := range goals {
		h, err := ActiveHeuristic(g, start, []int{goal})
		if err != nil {
			return nil, err
		}
		list = append(list, scored{id: goal, h: h})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].h != list[j].h {
			return list[i].h < list[j].h
		}
		return list[i].id < list[j].id
	})

	out := make([]int, len(list))
	for i, s := range list {
		out[i] = s.id
	}
	return out, nil
}
