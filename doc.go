// Package gridsearch computes least-cost paths on weighted grid graphs with
// A* and two multi-goal extensions.
//
// What is in the box?
//
//	frontier/    Record (per-cell search state) and the indexed priority frontier
//	astar/       single-goal A*, the Grid interface, options, Stats
//	kastar/      KA*: one shared expansion for a set of goals; KA*-H: per-goal A*, nearest first
//	gridgraph/   GridGraph over [][]int: obstacles, Conn4/Conn8, weights, components, reference distances
//	metrics/     Prometheus collector for search Stats
//	config/      YAML scenario and verification settings
//
// The gridsearch command (cmd/gridsearch) solves scenario files and runs
// randomized property checks against brute-force distances.
//
// Quick example:
//
//	. . . .
//	. # . .      astar.Search(gg, 8, 10)
//	S # G .      → [8 12 13 14 10], cost 4
//	. . . .
//
//	go get github.com/katalvlaran/gridsearch
package gridsearch
