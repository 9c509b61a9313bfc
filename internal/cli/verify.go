package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/config"
	"github.com/katalvlaran/gridsearch/gridgraph"
	"github.com/katalvlaran/gridsearch/kastar"
	"github.com/katalvlaran/gridsearch/metrics"
)

func buildVerifyCommand(lf *logFlags) *cobra.Command {
	var file string
	flags := config.Default().Verify

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every algorithm against brute-force distances on random grids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if file != "" {
				loaded, err := config.Load(file)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = *loaded
			}
			overrideVerify(cmd, &cfg.Verify, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log, lf)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			reg := prometheus.NewRegistry()
			collector := metrics.NewCollector(reg)
			var (
				srv     *http.Server
				srvErrs <-chan error
			)
			if cfg.Verify.MetricsAddr != "" {
				if srv, srvErrs, err = serveMetrics(cfg.Verify.MetricsAddr, reg, logger); err != nil {
					return err
				}
			}

			rep, err := runVerify(ctx, cfg.Verify, logger, collector)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "trials: %d  grids skipped: %d  checks: %d  failures: %d\n",
				rep.Trials, rep.Skipped, rep.Checks, len(rep.Failures))
			for _, f := range rep.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", f)
			}

			if srv != nil {
				logger.Info("verification finished, serving metrics until interrupted", "addr", srv.Addr)
				select {
				case <-ctx.Done():
				case err = <-srvErrs:
					if err != nil {
						return err
					}
				}
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}
			if len(rep.Failures) > 0 {
				return fmt.Errorf("%w: %d of %d", ErrVerifyFailed, len(rep.Failures), rep.Checks)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "config", "c", "", "optional YAML file with a verify section")
	cmd.Flags().IntVar(&flags.Trials, "trials", flags.Trials, "number of random grids")
	cmd.Flags().Int64Var(&flags.Seed, "seed", flags.Seed, "random seed")
	cmd.Flags().IntVar(&flags.MinSize, "min-size", flags.MinSize, "smallest grid side")
	cmd.Flags().IntVar(&flags.MaxSize, "max-size", flags.MaxSize, "largest grid side")
	cmd.Flags().IntVar(&flags.Obstacles, "obstacles", flags.Obstacles, "percent of blocked cells")
	cmd.Flags().IntVar(&flags.MaxGoals, "max-goals", flags.MaxGoals, "largest goal set per trial")
	cmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// overrideVerify copies every explicitly set flag into v.
func overrideVerify(cmd *cobra.Command, v *config.Verify, flags config.Verify) {
	set := cmd.Flags().Changed
	if set("trials") {
		v.Trials = flags.Trials
	}
	if set("seed") {
		v.Seed = flags.Seed
	}
	if set("min-size") {
		v.MinSize = flags.MinSize
	}
	if set("max-size") {
		v.MaxSize = flags.MaxSize
	}
	if set("obstacles") {
		v.Obstacles = flags.Obstacles
	}
	if set("max-goals") {
		v.MaxGoals = flags.MaxGoals
	}
	if set("metrics-addr") {
		v.MetricsAddr = flags.MetricsAddr
	}
}

// serveMetrics binds addr and serves /metrics in the background. A bind
// failure is returned at once; a later Serve failure is sent on the channel,
// which is closed when the server stops.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (*http.Server, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics server: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: ln.Addr().String(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		logger.Info("metrics server listening", "addr", srv.Addr)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("metrics server: %w", err)
		}
	}()
	return srv, errs, nil
}

// verifyReport summarizes a verification run.
type verifyReport struct {
	Trials   int
	Skipped  int // grids with fewer than two traversable cells
	Checks   int
	Failures []string
}

func (r *verifyReport) check(ok bool, format string, args ...any) {
	r.Checks++
	if !ok {
		r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	}
}

// runVerify generates v.Trials random grids and checks, per trial:
//  1. A* cost equals the brute-force distance, or the path is empty when the
//     goal is unreachable.
//  2. every returned path is a connected walk from start to goal whose entry
//     costs sum to the reported cost.
//  3. KA* and KA*-H costs equal the A* costs for every goal.
//  4. on open grids the A* cost equals the heuristic distance.
//  5. a goal is reachable exactly when it shares a component with start.
//
// Every third trial is weighted; every fourth has no obstacles.
func runVerify(ctx context.Context, v config.Verify, logger *slog.Logger, rec astar.Recorder) (*verifyReport, error) {
	rng := rand.New(rand.NewSource(v.Seed))
	rep := &verifyReport{}
	opts := []astar.Option{astar.WithLogger(logger), astar.WithRecorder(rec)}

	for trial := 0; trial < v.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Trials++

		n := v.MinSize + rng.Intn(v.MaxSize-v.MinSize+1)
		open := trial%4 == 0
		percent := v.Obstacles
		if open {
			percent = 0
		}
		values, err := gridgraph.RandomObstacles(n, percent, rng)
		if err != nil {
			return rep, err
		}
		gopts := gridgraph.DefaultGridOptions()
		if trial%3 == 0 {
			gopts.Weighted = true
			randomWeights(values, rng)
		}
		if trial%5 == 0 {
			gopts.Conn = gridgraph.Conn8
		}
		gg, err := gridgraph.NewGridGraph(values, gopts)
		if err != nil {
			return rep, err
		}

		valid := gg.ValidIDs()
		if len(valid) < 2 {
			rep.Skipped++
			continue
		}
		rng.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })
		start := valid[0]
		k := 1 + rng.Intn(min(v.MaxGoals, len(valid)-1))
		goals := valid[1 : 1+k]

		if err = verifyTrial(rep, trial, gg, start, goals, open && !gopts.Weighted, opts); err != nil {
			return rep, err
		}
		logger.Debug("verify: trial done", "trial", trial, "size", n, "conn", gopts.Conn.String(),
			"weighted", gopts.Weighted, "goals", len(goals), "failures", len(rep.Failures))
	}

	logger.Info("verify: finished", "trials", rep.Trials, "checks", rep.Checks, "failures", len(rep.Failures))
	return rep, nil
}

// randomWeights replaces every traversable cell with a weight in 1..9.
func randomWeights(values [][]int, rng *rand.Rand) {
	for _, row := range values {
		for x, v := range row {
			if v != gridgraph.Obstacle {
				row[x] = 1 + rng.Intn(9)
			}
		}
	}
}

func verifyTrial(rep *verifyReport, trial int, gg *gridgraph.GridGraph, start int, goals []int, open bool, opts []astar.Option) error {
	dist, err := gg.Distances(start)
	if err != nil {
		return err
	}

	labels := gg.ComponentLabels()
	singles := make(map[int]float64, len(goals))
	for _, goal := range goals {
		res, err := astar.Search(gg, start, goal, opts...)
		if err != nil {
			return err
		}
		singles[goal] = res.Cost()

		want, reachable := dist[goal]
		rep.check(reachable == (labels[start] == labels[goal]),
			"trial %d: %d->%d reachability disagrees with components", trial, start, goal)
		if !reachable {
			rep.check(len(res.Path()) == 0, "trial %d astar %d->%d: path to unreachable goal", trial, start, goal)
			continue
		}
		rep.check(res.Cost() == want, "trial %d astar %d->%d: cost %g, want %g", trial, start, goal, res.Cost(), want)
		if err = checkPath(rep, trial, astar.Algorithm, gg, start, goal, res.Path(), res.Cost()); err != nil {
			return err
		}
		if open {
			h, err := gg.Heuristic(start, goal)
			if err != nil {
				return err
			}
			rep.check(res.Cost() == h, "trial %d astar %d->%d on open grid: cost %g, heuristic %g",
				trial, start, goal, res.Cost(), h)
		}
	}

	for _, run := range []struct {
		name   string
		search func(astar.Grid, int, []int, ...astar.Option) (*kastar.MultiResult, error)
	}{
		{kastar.Algorithm, kastar.Search},
		{kastar.AlgorithmSeeded, kastar.SearchSeeded},
	} {
		multi, err := run.search(gg, start, goals, opts...)
		if err != nil {
			return err
		}
		for _, goal := range goals {
			got, want := multi.Cost(goal), singles[goal]
			rep.check(got == want || (math.IsInf(got, 1) && math.IsInf(want, 1)),
				"trial %d %s %d->%d: cost %g, astar %g", trial, run.name, start, goal, got, want)
			if multi.Found(goal) {
				if err = checkPath(rep, trial, run.name, gg, start, goal, multi.Path(goal), got); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkPath verifies that path walks from start to goal through adjacent
// traversable cells and that its entry costs sum to cost.
func checkPath(rep *verifyReport, trial int, name string, gg *gridgraph.GridGraph, start, goal int, path []int, cost float64) error {
	ok := len(path) > 0 && path[0] == start && path[len(path)-1] == goal
	rep.check(ok, "trial %d %s %d->%d: bad endpoints %v", trial, name, start, goal, path)
	if !ok {
		return nil
	}

	var sum float64
	for i := 1; i < len(path); i++ {
		nbrs, err := gg.Neighbors(path[i-1])
		if err != nil {
			return err
		}
		rep.check(slices.Contains(nbrs, path[i]), "trial %d %s: step %d->%d is not a move", trial, name, path[i-1], path[i])
		w, err := gg.Weight(path[i])
		if err != nil {
			return err
		}
		sum += w
	}
	rep.check(sum == cost, "trial %d %s %d->%d: path sums to %g, reported %g", trial, name, start, goal, sum, cost)
	return nil
}
