// Package kastar_test contains unit tests for the multi-goal searches:
// validation, reference scenarios, optimality against single-goal A* and
// brute-force distances, goal bookkeeping, and determinism.
package kastar_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/frontier"
	"github.com/katalvlaran/gridsearch/gridgraph"
	"github.com/katalvlaran/gridsearch/kastar"
)

// searchFunc is the shared signature of Search and SearchSeeded.
type searchFunc func(g astar.Grid, start int, goals []int, opts ...astar.Option) (*kastar.MultiResult, error)

var searches = []struct {
	name string
	run  searchFunc
}{
	{kastar.Algorithm, kastar.Search},
	{kastar.AlgorithmSeeded, kastar.SearchSeeded},
}

// mustGrid builds a Conn4 grid or fails the test.
func mustGrid(t testing.TB, values [][]int) *gridgraph.GridGraph {
	t.Helper()
	gg, err := gridgraph.From2D(values, gridgraph.Conn4)
	require.NoError(t, err)
	return gg
}

// walledGrid is the 4×4 grid with cells (1,1) and (2,1) blocked.
func walledGrid(t testing.TB) *gridgraph.GridGraph {
	grid := gridgraph.Open(4)
	grid[1][1] = gridgraph.Obstacle
	grid[2][1] = gridgraph.Obstacle
	return mustGrid(t, grid)
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSearch_Validation(t *testing.T) {
	gg := walledGrid(t)
	for _, s := range searches {
		t.Run(s.name, func(t *testing.T) {
			_, err := s.run(nil, 0, []int{1})
			assert.ErrorIs(t, err, astar.ErrNilGrid)

			_, err = s.run(gg, 0, nil)
			assert.ErrorIs(t, err, kastar.ErrNoGoals)
			_, err = s.run(gg, 0, []int{})
			assert.ErrorIs(t, err, kastar.ErrNoGoals)

			_, err = s.run(gg, 5, []int{0})
			assert.ErrorIs(t, err, astar.ErrInvalidStart)
			_, err = s.run(gg, 0, []int{3, 9})
			assert.ErrorIs(t, err, astar.ErrInvalidGoal)
			_, err = s.run(gg, 0, []int{16})
			assert.ErrorIs(t, err, astar.ErrInvalidGoal)
		})
	}
}

// ------------------------------------------------------------------------
// 2. Reference scenarios
// ------------------------------------------------------------------------

func TestSearch_SingleGoalScenarios(t *testing.T) {
	cases := []struct {
		name  string
		grid  *gridgraph.GridGraph
		start int
		goal  int
		want  []int
	}{
		{"Open3x3_0to8", mustGrid(t, gridgraph.Open(3)), 0, 8, []int{0, 3, 6, 7, 8}},
		{"Open4x4_0to12", mustGrid(t, gridgraph.Open(4)), 0, 12, []int{0, 4, 8, 12}},
		{"Walled4x4_8to10", walledGrid(t), 8, 10, []int{8, 12, 13, 14, 10}},
	}
	for _, s := range searches {
		for _, tc := range cases {
			t.Run(s.name+"/"+tc.name, func(t *testing.T) {
				res, err := s.run(tc.grid, tc.start, []int{tc.goal})
				require.NoError(t, err)
				require.True(t, res.Found(tc.goal))
				if diff := cmp.Diff(tc.want, res.Path(tc.goal)); diff != "" {
					t.Errorf("path mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, float64(len(tc.want)-1), res.Cost(tc.goal))
			})
		}
	}
}

func TestActiveHeuristic(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(3))

	h, err := kastar.ActiveHeuristic(gg, 0, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, h, "nearest active goal is 3")

	h, err = kastar.ActiveHeuristic(gg, 0, []int{2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, h)

	h, err = kastar.ActiveHeuristic(gg, 0, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(h, 1))
}

func TestSearch_StartAmongGoals(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(3))
	for _, s := range searches {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(gg, 0, []int{8, 0, 8})
			require.NoError(t, err)
			assert.Equal(t, []int{0, 8}, res.Goals())
			assert.Equal(t, []int{0}, res.Path(0))
			assert.Equal(t, 0.0, res.Cost(0))
			assert.Len(t, res.Path(8), 5)
			assert.Equal(t, 4.0, res.Cost(8))
			assert.Empty(t, res.Unreachable())
		})
	}
}

// ------------------------------------------------------------------------
// 3. Optimality
// ------------------------------------------------------------------------

// TestSearch_MatchesSingleGoal compares every goal's cost with an
// independent A* run and with BFS distances on grids with obstacles.
func TestSearch_MatchesSingleGoal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 5 + rng.Intn(8)
		grid, err := gridgraph.RandomObstacles(n, rng.Intn(35), rng)
		require.NoError(t, err)
		gg := mustGrid(t, grid)
		valid := gg.ValidIDs()
		if len(valid) < 2 {
			continue
		}
		rng.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })
		start := valid[0]
		k := 1 + rng.Intn(min(5, len(valid)-1))
		goals := valid[1 : 1+k]
		dist, err := gg.Distances(start)
		require.NoError(t, err)

		for _, s := range searches {
			res, err := s.run(gg, start, goals)
			require.NoError(t, err, "%s trial %d", s.name, trial)
			for _, goal := range goals {
				single, err := astar.Search(gg, start, goal)
				require.NoError(t, err)
				assert.Equal(t, single.Found(), res.Found(goal), "%s trial %d goal %d", s.name, trial, goal)
				assert.Equal(t, single.Cost(), res.Cost(goal), "%s trial %d goal %d", s.name, trial, goal)

				d, reachable := dist[goal]
				if !reachable {
					assert.Empty(t, res.Path(goal))
					continue
				}
				path := res.Path(goal)
				require.Len(t, path, int(d)+1, "%s trial %d goal %d", s.name, trial, goal)
				assert.Equal(t, start, path[0])
				assert.Equal(t, goal, path[len(path)-1])
				for i := 1; i < len(path); i++ {
					assert.Equal(t, 1, gg.Manhattan(path[i-1], path[i]), "non-adjacent step")
				}
			}
		}
	}
}

// TestSearch_SingleGoalIdenticalToAStar checks that one-goal KA* expands
// exactly like A* and returns the same path.
func TestSearch_SingleGoalIdenticalToAStar(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		grid, _ := gridgraph.RandomObstacles(10, 25, rng)
		gg := mustGrid(t, grid)
		valid := gg.ValidIDs()
		if len(valid) < 2 {
			continue
		}
		start, goal := valid[0], valid[len(valid)-1]

		single, err := astar.Search(gg, start, goal)
		require.NoError(t, err)
		multi, err := kastar.Search(gg, start, []int{goal})
		require.NoError(t, err)

		assert.Equal(t, single.Path(), multi.Path(goal), "trial %d", trial)
		assert.Equal(t, single.Stats.Expanded, multi.Stats.Expanded, "trial %d", trial)
	}
}

// TestSearch_Weighted uses uniform-cost distances as the reference.
//
//	1 9 1 1
//	1 5 1 3
//	1 1 1 1
func TestSearch_Weighted(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	opts.Weighted = true
	gg, err := gridgraph.NewGridGraph([][]int{{1, 9, 1, 1}, {1, 5, 1, 3}, {1, 1, 1, 1}}, opts)
	require.NoError(t, err)
	dist, err := gg.Distances(0)
	require.NoError(t, err)

	goals := []int{2, 3, 7, 10}
	for _, s := range searches {
		res, err := s.run(gg, 0, goals)
		require.NoError(t, err)
		for _, goal := range goals {
			assert.Equal(t, dist[goal], res.Cost(goal), "%s goal %d", s.name, goal)
		}
	}
}

// ------------------------------------------------------------------------
// 4. Unreachable goals and episode state
// ------------------------------------------------------------------------

func TestSearch_Unreachable(t *testing.T) {
	//	1 -1 1
	//	1 -1 1
	gg := mustGrid(t, [][]int{{1, -1, 1}, {1, -1, 1}})
	for _, s := range searches {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(gg, 0, []int{2, 3, 5})
			require.NoError(t, err)
			assert.Equal(t, []int{0, 3}, res.Path(3))
			assert.Equal(t, []int{2, 5}, res.Unreachable())
			assert.Equal(t, 2, res.Stats.Unreachable)
			assert.NotNil(t, res.Path(2))
			assert.Empty(t, res.Path(2))
			assert.False(t, res.Found(5))
			assert.True(t, math.IsInf(res.Cost(5), 1))

			paths := res.Paths()
			assert.Len(t, paths, 3)
			assert.Empty(t, paths[5])
		})
	}
}

func TestSearch_EpisodeState(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(5))
	var expanded []int
	res, err := kastar.Search(gg, 12, []int{0, 4, 20, 24}, astar.WithOnExpand(func(r frontier.Record) {
		expanded = append(expanded, r.ID)
	}))
	require.NoError(t, err)

	closed := res.Closed()
	assert.Len(t, closed, res.Stats.Expanded)
	assert.Len(t, expanded, res.Stats.Expanded)
	assert.Equal(t, 12, expanded[0])
	assert.False(t, closed[12].HasParent(), "start has no parent")
	for _, goal := range []int{0, 4, 20, 24} {
		assert.Contains(t, closed, goal)
		assert.Equal(t, 4.0, res.Cost(goal))
	}
	for _, r := range res.Opened() {
		_, dup := closed[r.ID]
		assert.False(t, dup, "id %d is both opened and closed", r.ID)
	}
	assert.Zero(t, res.Stats.Unreachable)
	assert.Equal(t, 12, res.Start())
}

// TestSearch_RescoresAfterGoal resolves the nearer goal 11 first; every
// record still open afterwards must be scored against goal 14 alone.
//
//	 .  .  .  .  .
//	 .  .  .  .  .
//	 . G1  S  . G2
//	 .  .  .  .  .
//	 .  .  .  .  .
func TestSearch_RescoresAfterGoal(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(5))
	var expanded []int
	res, err := kastar.Search(gg, 12, []int{11, 14}, astar.WithOnExpand(func(r frontier.Record) {
		expanded = append(expanded, r.ID)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 13, 14}, expanded)

	opened := res.Opened()
	require.NotEmpty(t, opened)
	for _, r := range opened {
		want, err := gg.Heuristic(r.ID, 14)
		require.NoError(t, err)
		assert.Equal(t, want, r.H, "record %d keeps a heuristic toward the resolved goal", r.ID)
		assert.Equal(t, r.G+r.H, r.F, "record %d", r.ID)
	}

	// 7 and 17 were scored toward 11 (h=2) before it resolved; toward 14 h=3.
	byID := make(map[int]frontier.Record, len(opened))
	for _, r := range opened {
		byID[r.ID] = r
	}
	assert.Equal(t, 3.0, byID[7].H)
	assert.Equal(t, 4.0, byID[17].F)

	// 2 (start) + 4·2 (neighbors of 12) + 3 (rescan of 13, 7, 17)
	// + 3 (neighbors of 11) + 3 (neighbors of 13).
	assert.Equal(t, 19, res.Stats.HeuristicCalls)
}

// TestSearch_SharedExpansion checks that KA* does no more expansion work than
// the per-goal runs of KA*-H on an open grid.
func TestSearch_SharedExpansion(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(20))
	goals := []int{19, 380, 399, 210}

	shared, err := kastar.Search(gg, 0, goals)
	require.NoError(t, err)
	seeded, err := kastar.SearchSeeded(gg, 0, goals)
	require.NoError(t, err)

	assert.LessOrEqual(t, shared.Stats.Expanded, seeded.Stats.Expanded)
	for _, goal := range goals {
		assert.Equal(t, seeded.Cost(goal), shared.Cost(goal))
	}
}

func TestSearch_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	grid, _ := gridgraph.RandomObstacles(12, 20, rng)
	gg := mustGrid(t, grid)
	valid := gg.ValidIDs()
	goals := []int{valid[len(valid)-1], valid[len(valid)/2], valid[len(valid)/3]}

	for _, s := range searches {
		first, err := s.run(gg, valid[0], goals)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := s.run(gg, valid[0], goals)
			require.NoError(t, err)
			if diff := cmp.Diff(first.Paths(), again.Paths()); diff != "" {
				t.Errorf("%s paths differ (-first +again):\n%s", s.name, diff)
			}
			assert.Equal(t, first.Stats, again.Stats)
		}
	}
}

// ------------------------------------------------------------------------
// 5. Goal ordering, failures, recorder
// ------------------------------------------------------------------------

func TestSortGoals(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(4))

	got, err := kastar.SortGoals(gg, 0, []int{15, 12, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 12, 15}, got, "ties at distance 3 break by id")

	got, err = kastar.SortGoals(gg, 5, []int{0, 2, 8, 10})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 8, 10}, got)
}

var errBoom = errors.New("boom")

// faultyGrid wraps a grid and fails selected queries.
type faultyGrid struct {
	*gridgraph.GridGraph
	failNeighbors bool
	failHeuristic bool
}

func (f faultyGrid) Neighbors(id int) ([]int, error) {
	if f.failNeighbors {
		return nil, errBoom
	}
	return f.GridGraph.Neighbors(id)
}

func (f faultyGrid) Heuristic(a, b int) (float64, error) {
	if f.failHeuristic && a != b {
		return 0, errBoom
	}
	return f.GridGraph.Heuristic(a, b)
}

func TestSearch_GridFailuresPropagate(t *testing.T) {
	base := mustGrid(t, gridgraph.Open(3))
	for _, s := range searches {
		_, err := s.run(faultyGrid{GridGraph: base, failNeighbors: true}, 0, []int{8})
		assert.ErrorIs(t, err, astar.ErrGrid, s.name)
		assert.ErrorIs(t, err, errBoom, s.name)

		_, err = s.run(faultyGrid{GridGraph: base, failHeuristic: true}, 0, []int{4, 8})
		assert.ErrorIs(t, err, astar.ErrGrid, s.name)
	}
}

// namedRecorder captures the algorithm names passed to ObserveSearch.
type namedRecorder struct {
	names []string
	stats []astar.Stats
}

func (n *namedRecorder) ObserveSearch(algorithm string, stats astar.Stats, _ time.Duration) {
	n.names = append(n.names, algorithm)
	n.stats = append(n.stats, stats)
}

func TestSearch_Recorder(t *testing.T) {
	gg := mustGrid(t, gridgraph.Open(4))

	rec := &namedRecorder{}
	res, err := kastar.Search(gg, 0, []int{3, 15}, astar.WithRecorder(rec))
	require.NoError(t, err)
	assert.Equal(t, []string{kastar.Algorithm}, rec.names)
	assert.Equal(t, res.Stats, rec.stats[0])

	rec = &namedRecorder{}
	res, err = kastar.SearchSeeded(gg, 0, []int{3, 15}, astar.WithRecorder(rec))
	require.NoError(t, err)
	assert.Equal(t, []string{kastar.AlgorithmSeeded}, rec.names, "inner runs are not recorded")
	assert.Equal(t, res.Stats, rec.stats[0])
}
