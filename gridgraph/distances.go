package gridgraph

import (
	"container/heap"
	"fmt"
)

// Distances computes the exact least entry cost from start to every cell
// reachable from it, by exhaustive relaxation. Unreachable cells are absent
// from the returned map; start maps to 0.
//
// Behavior:
//  1. Validate start (ErrCellOutOfRange, ErrCellBlocked).
//  2. Unit weights: plain BFS, each step costs 1.
//  3. Weighted: uniform-cost relaxation with a lazy min-heap.
//
// It is the brute-force reference search results are checked against.
//
// Complexity: O(W·H·d) unweighted, O(W·H·d·log(W·H)) weighted.
// Memory:     O(W·H).
func (gg *GridGraph) Distances(start int) (map[int]float64, error) {
	if !gg.contains(start) {
		return nil, fmt.Errorf("%w: %d", ErrCellOutOfRange, start)
	}
	if !gg.Traversable(start) {
		return nil, fmt.Errorf("%w: %d", ErrCellBlocked, start)
	}
	if !gg.Weighted {
		return gg.bfsDistances(start), nil
	}
	return gg.uniformCostDistances(start), nil
}

// bfsDistances is breadth-first search from start over unit-cost cells.
func (gg *GridGraph) bfsDistances(start int) map[int]float64 {
	dist := map[int]float64{start: 0}
	queue := []int{start}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		next, _ := gg.Neighbors(u)
		for _, v := range next {
			if _, ok := dist[v]; ok {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return dist
}

// uniformCostDistances relaxes entry costs with a lazy decrease-key heap.
func (gg *GridGraph) uniformCostDistances(start int) map[int]float64 {
	dist := map[int]float64{start: 0}
	done := make(map[int]bool, gg.Size())
	pq := &costPQ{{id: start, cost: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(costItem)
		if done[item.id] {
			continue // stale entry
		}
		done[item.id] = true
		next, _ := gg.Neighbors(item.id)
		for _, v := range next {
			w, err := gg.Weight(v)
			if err != nil || done[v] {
				continue
			}
			nd := item.cost + w
			if cur, ok := dist[v]; ok && nd >= cur {
				continue
			}
			dist[v] = nd
			heap.Push(pq, costItem{id: v, cost: nd})
		}
	}
	return dist
}

// costItem is a (cell, tentative cost) heap entry.
type costItem struct {
	id   int
	cost float64
}

// costPQ is a min-heap of costItem ordered by cost.
type costPQ []costItem

func (pq costPQ) Len() int            { return len(pq) }
func (pq costPQ) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq costPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *costPQ) Push(x interface{}) { *pq = append(*pq, x.(costItem)) }
func (pq *costPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
