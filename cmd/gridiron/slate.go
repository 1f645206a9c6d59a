package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/metrics"
	"github.com/vovakirdan/gridiron/internal/slate"
	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	flagWorkers     int
	flagMetricsAddr string
	flagServe       bool
)

var slateCmd = &cobra.Command{
	Use:   "slate [teams...]",
	Short: "Play a round robin of games in parallel",
	Long: `Schedule every listed team (default: the whole catalog) against every
other once and play the games on a pool of workers. Each game gets its own
seed derived from --seed, so a slate is reproducible regardless of the
number of workers.

With --metrics-addr the play and game counters are served for
Prometheus at /metrics.

Examples:
  gridiron slate
  gridiron slate BOS CHI DEN SEA --workers 2
  gridiron slate --metrics-addr :9464 --serve`,
	Run: runSlate,
}

func init() {
	slateCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Games played at once (default from config)")
	slateCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	slateCmd.Flags().BoolVar(&flagServe, "serve", false, "Keep serving metrics after the slate until interrupted")
}

func runSlate(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	if flagWorkers > 0 {
		cfg.Sim.Workers = flagWorkers
	}
	if flagMetricsAddr != "" {
		cfg.Sim.MetricsAddr = flagMetricsAddr
	}

	teams := cfg.Teams
	if len(args) > 0 {
		teams = make([]config.TeamConfig, 0, len(args))
		for _, ref := range args {
			t, err := cfg.Team(ref)
			if err != nil {
				exitf("%v", err)
			}
			teams = append(teams, t)
		}
	}
	games := slate.RoundRobin(teams)
	if len(games) == 0 {
		exitf("a slate needs at least two teams")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	recorder, handler, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:     cfg.Sim.MetricsAddr != "",
		ServiceName: "gridiron",
	})
	if err != nil {
		exitf("metrics: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("metrics shutdown failed", "err", err)
		}
	}()

	if handler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		srv := &http.Server{Addr: cfg.Sim.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("serving metrics", "addr", cfg.Sim.MetricsAddr)
	}

	opts := slate.Options{
		Config:   cfg,
		Seed:     cfg.Sim.Seed,
		Workers:  cfg.Sim.Workers,
		Logger:   logger,
		Recorder: recorder,
	}
	store, err := storage.Open(cfg.Sim.DBPath)
	if err != nil {
		logger.Warn("could not open games database, games will not be saved", "err", err)
	} else {
		defer store.Close()
		opts.Persister = store
	}

	logger.Info("slate", "games", len(games), "workers", opts.Workers, "seed", opts.Seed)
	start := time.Now()
	results, err := slate.Run(ctx, games, opts)
	if err != nil {
		logger.Error("slate interrupted", "err", err)
	}

	printSlate(results)
	fmt.Printf("%d games in %s\n\n", len(results), time.Since(start).Round(time.Millisecond))
	printStandings(slate.Standings(results))

	if flagServe && handler != nil && err == nil {
		fmt.Printf("Serving metrics on %s/metrics, press Ctrl+C to stop\n", cfg.Sim.MetricsAddr)
		<-ctx.Done()
	}
}

func printSlate(results []slate.Result) {
	fmt.Printf("  %-3s  %-11s  %-9s  %-3s  %5s  %8s  %s\n", "#", "Matchup", "Score", "OT", "Plays", "Time", "Result")
	fmt.Printf("  %-3s  %-11s  %-9s  %-3s  %5s  %8s  %s\n", "-", "-------", "-----", "--", "-----", "----", "------")
	for _, r := range results {
		if r.Game == nil {
			status := "not played"
			if r.Err != nil {
				status = r.Err.Error()
			}
			fmt.Printf("  %-3d  %-11s  %-9s  %-3s  %5s  %8s  %s\n", r.Index+1, r.Matchup, "-", "", "-", "-", status)
			continue
		}
		g := r.Game
		ot := ""
		if g.Overtime {
			ot = "OT"
		}
		status := "tie"
		if r.Err != nil {
			status = "halted: " + r.Err.Error()
		} else if w := teamLabel(g)(g.Winner); w != "-" {
			status = w
		}
		fmt.Printf("  %-3d  %-11s  %-9s  %-3s  %5d  %8s  %s\n",
			r.Index+1, r.Matchup, fmt.Sprintf("%d-%d", g.Final.Away, g.Final.Home), ot,
			len(g.Plays), r.Elapsed.Round(time.Millisecond), status)
	}
	fmt.Println()
}

func printStandings(rows []slate.Standing) {
	if len(rows) == 0 {
		return
	}
	fmt.Printf("  %-4s  %3s  %3s  %3s  %4s  %4s  %5s\n", "Team", "W", "L", "T", "PF", "PA", "Diff")
	fmt.Printf("  %-4s  %3s  %3s  %3s  %4s  %4s  %5s\n", "----", "-", "-", "-", "--", "--", "----")
	for _, s := range rows {
		fmt.Printf("  %-4s  %3d  %3d  %3d  %4d  %4d  %+5d\n",
			s.Team, s.Wins, s.Losses, s.Ties, s.PointsFor, s.PointsAgainst, s.Differential())
	}
	fmt.Println()
}
