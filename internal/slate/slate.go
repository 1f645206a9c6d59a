// Package slate runs many independent games in parallel. Games share no
// mutable state: each gets its own registry, RNG, engine and box score.
// Only the sinks and persister passed in Options are shared, and those
// must be safe for concurrent use.
package slate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/engine"
	"github.com/vovakirdan/gridiron/internal/logging"
	"github.com/vovakirdan/gridiron/internal/metrics"
	"github.com/vovakirdan/gridiron/internal/playsim"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/stats"
)

// Matchup is one scheduled game.
type Matchup struct {
	Home config.TeamConfig
	Away config.TeamConfig
}

func (m Matchup) String() string {
	return fmt.Sprintf("%s @ %s", m.Away.Abbreviation, m.Home.Abbreviation)
}

// Options configure a slate.
type Options struct {
	Config    config.Config
	Seed      int64 // slate seed; each game derives its own
	Workers   int
	Logger    *log.Logger
	Tracer    trace.Tracer
	Recorder  *metrics.Recorder
	Persister engine.Persister
}

// Result is the outcome of one game of the slate.
type Result struct {
	Index   int
	Matchup Matchup
	Seed    int64
	Game    *engine.GameResult
	Box     *stats.Aggregator
	Elapsed time.Duration
	Err     error
}

// GameSeed derives a game's seed from the slate seed and its index
// (splitmix64 finalizer).
func GameSeed(slateSeed int64, index int) int64 {
	z := uint64(slateSeed) + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// NewGame wires an engine for one matchup with the reference caller and
// simulator. The returned aggregator is already attached as a sink.
func NewGame(m Matchup, seed int64, opts Options) (*engine.Engine, *stats.Aggregator, error) {
	reg, err := registry.New(m.Home.Identity(), m.Away.Identity())
	if err != nil {
		return nil, nil, fmt.Errorf("slate: %s: %w", m, err)
	}

	cfg := opts.Config
	cfg.Sim.Seed = seed
	rng := rand.New(rand.NewSource(seed))

	box := stats.NewAggregator()
	sinks := []engine.Sink{box}
	if opts.Recorder != nil {
		sinks = append(sinks, opts.Recorder)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	e, err := engine.New(engine.Deps{
		Registry: reg,
		Caller:   playsim.NewCaller(rng, cfg.Sim.TwoPointRate),
		Simulator: playsim.NewSimulator(rng, map[core.TeamHandle]playsim.Ratings{
			core.Home: playsim.RatingsFrom(m.Home),
			core.Away: playsim.RatingsFrom(m.Away),
		}),
		Rand:   rng,
		Logger: logger.With("matchup", m.String()),
		Tracer: opts.Tracer,
		Discipline: map[core.TeamHandle]float64{
			core.Home: disciplineOf(m.Home),
			core.Away: disciplineOf(m.Away),
		},
		Sinks:     sinks,
		Persister: opts.Persister,
	}, cfg)
	if err != nil {
		return nil, nil, err
	}
	return e, box, nil
}

func disciplineOf(t config.TeamConfig) float64 {
	if t.Discipline <= 0 {
		return 1.0
	}
	return t.Discipline
}

// Run plays every matchup with at most opts.Workers games at a time.
// A game that halts is reported in its Result; only cancellation of ctx
// stops the slate early.
func Run(ctx context.Context, games []Matchup, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("github.com/vovakirdan/gridiron/internal/slate")
		opts.Tracer = tracer
	}

	ctx, span := tracer.Start(ctx, "slate.Run", trace.WithAttributes(
		attribute.Int("slate.games", len(games)),
		attribute.Int("slate.workers", workers),
		attribute.Int64("slate.seed", opts.Seed),
	))
	defer span.End()

	results := make([]Result, len(games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range games {
		seed := GameSeed(opts.Seed, i)
		results[i] = Result{Index: i, Matchup: m, Seed: seed}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			res := &results[i]

			e, box, err := NewGame(m, seed, opts)
			if err != nil {
				res.Err = err
				return nil
			}
			res.Box = box

			res.Game, res.Err = e.Run(ctx)
			res.Elapsed = time.Since(start)

			plays := 0
			if res.Game != nil {
				plays = len(res.Game.Plays)
			}
			opts.Recorder.RecordGame(res.Elapsed, plays, res.Err)

			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// RoundRobin schedules every team against every other team once using the
// circle method, alternating home teams between rounds.
func RoundRobin(teams []config.TeamConfig) []Matchup {
	n := len(teams)
	if n < 2 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if n%2 == 1 {
		idx = append(idx, -1) // bye
	}
	size := len(idx)

	var games []Matchup
	for round := 0; round < size-1; round++ {
		for i := 0; i < size/2; i++ {
			a, b := idx[i], idx[size-1-i]
			if a < 0 || b < 0 {
				continue
			}
			if (round+i)%2 == 1 {
				a, b = b, a
			}
			games = append(games, Matchup{Home: teams[a], Away: teams[b]})
		}
		// Rotate everything but the first slot.
		last := idx[size-1]
		copy(idx[2:], idx[1:size-1])
		idx[1] = last
	}
	return games
}
