package astar

import (
	"sort"

	"github.com/katalvlaran/gridsearch/frontier"
)

// ReconstructPath walks parent ids from terminal back to start through the
// closed set and returns the ids in start → terminal order. It returns an
// empty slice when terminal is not closed or the chain does not reach start.
func ReconstructPath(closed map[int]frontier.Record, start, terminal int) []int {
	rec, ok := closed[terminal]
	if !ok {
		return []int{}
	}
	path := []int{rec.ID}
	for rec.ID != start {
		// A chain longer than the closed set can only come from a cycle.
		if !rec.HasParent() || len(path) > len(closed) {
			return []int{}
		}
		if rec, ok = closed[rec.Parent]; !ok {
			return []int{}
		}
		path = append(path, rec.ID)
	}
	// reverse to get start → terminal
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// SortedNeighbors fetches the neighbors of id, drops duplicates and returns
// them in ascending order so relaxation order is deterministic.
func SortedNeighbors(g Grid, id int) ([]int, error) {
	ids, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, v := range ids {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}
