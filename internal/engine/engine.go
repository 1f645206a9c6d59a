// Package engine runs one game play by play. Each play goes through a fixed
// pipeline: pre-snap penalty, external simulation, live-ball and dead-ball
// penalties, field, downs, scoring, possession, commit, drive bookkeeping and
// finally the sinks. A play either commits completely or not at all.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/downs"
	"github.com/vovakirdan/gridiron/internal/drive"
	"github.com/vovakirdan/gridiron/internal/field"
	"github.com/vovakirdan/gridiron/internal/logging"
	"github.com/vovakirdan/gridiron/internal/penalty"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/scoring"
	"github.com/vovakirdan/gridiron/internal/transition"
)

var (
	// ErrPlayLimit is returned when a game exceeds the configured play limit.
	ErrPlayLimit = errors.New("play limit reached")
	// ErrAlreadyRun is returned when Run is called twice on one engine.
	ErrAlreadyRun = errors.New("engine: game already run")
)

// PlayCaller chooses the play for each snap.
type PlayCaller interface {
	Call(s core.Situation) core.PlayCall
}

// PlaySimulator produces the raw outcome of a called play.
type PlaySimulator interface {
	Simulate(call core.PlayCall, s core.Situation) core.PlayOutcome
}

// Sink receives every committed play.
type Sink interface {
	RecordPlay(res core.GameStateResult, outcome core.PlayOutcome)
}

// Persister stores finished drives and games. Failures are logged and never
// stop a game.
type Persister interface {
	SaveDrive(gameID string, d core.Drive) error
	SaveGame(res GameResult) error
}

// Deps are the collaborators of one game.
type Deps struct {
	Registry   *registry.Registry
	Caller     PlayCaller
	Simulator  PlaySimulator
	Rand       *rand.Rand                  // defaults to a source seeded with cfg.Sim.Seed
	Logger     *log.Logger                 // defaults to a discarding logger
	Tracer     trace.Tracer                // defaults to a no-op tracer
	Discipline map[core.TeamHandle]float64 // penalty rate factor per team
	Sinks      []Sink
	Persister  Persister
	GameID     string // defaults to a random UUID
}

// GameResult is the finished game and its play-by-play trace.
type GameResult struct {
	ID       string
	Home     registry.TeamIdentity
	Away     registry.TeamIdentity
	Final    core.Score
	Winner   core.TeamHandle // Neutral for a tie
	Overtime bool
	Periods  int
	Plays    []core.GameStateResult
	Drives   []core.Drive
}

// Engine owns the live state of one game.
type Engine struct {
	id     string
	cfg    config.Config
	reg    *registry.Registry
	caller PlayCaller
	sim    PlaySimulator
	rng    *rand.Rand
	logger *log.Logger
	tracer trace.Tracer

	sinks     []Sink
	persister Persister

	penalties  *penalty.Detector
	field      *field.Tracker
	downs      *downs.Tracker
	scoring    *scoring.Calculator
	applicator *transition.Applicator
	drives     *drive.Manager

	state         core.GameState
	plays         []core.GameStateResult
	openingKicker core.TeamHandle
	overtime      overtime
	started       bool
	span          trace.Span
}

// New wires an engine for one game.
func New(deps Deps, cfg config.Config) (*Engine, error) {
	if deps.Registry == nil || deps.Caller == nil || deps.Simulator == nil {
		return nil, errors.New("engine: registry, play caller and simulator are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		id:         deps.GameID,
		cfg:        cfg,
		reg:        deps.Registry,
		caller:     deps.Caller,
		sim:        deps.Simulator,
		rng:        deps.Rand,
		logger:     deps.Logger,
		tracer:     deps.Tracer,
		sinks:      deps.Sinks,
		persister:  deps.Persister,
		field:      field.New(),
		downs:      downs.New(),
		scoring:    scoring.New(deps.Registry),
		applicator: transition.New(deps.Registry, cfg.Rules),
		drives:     drive.New(),
		span:       noop.Span{},
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(cfg.Sim.Seed))
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer("gridiron/engine")
	}
	e.penalties = penalty.New(cfg.Penalties, deps.Discipline, e.rng)

	return e, nil
}

// ID returns the game id.
func (e *Engine) ID() string {
	return e.id
}

// State returns a copy of the live state.
func (e *Engine) State() core.GameState {
	return e.state
}

// Run plays the game to completion. ctx is checked between plays; a
// cancelled game returns ctx.Err() and never commits a partial play.
func (e *Engine) Run(ctx context.Context) (*GameResult, error) {
	if e.started {
		return nil, ErrAlreadyRun
	}
	e.started = true

	ctx, e.span = e.tracer.Start(ctx, "engine.Run", trace.WithAttributes(attribute.String("game.id", e.id)))
	defer e.span.End()

	e.state = core.GameState{Quarter: 1, Clock: e.cfg.Rules.QuarterLength}
	e.openingKicker = e.coinToss()
	if err := e.applicator.PrepareFreeKick(&e.state, e.openingKicker, core.ModeKickoff); err != nil {
		return nil, e.halt(&core.PlayError{Index: 1, Component: "transition", Err: err})
	}
	e.logger.Debug("opening kickoff", "game", e.id, "kicking", e.label(e.openingKicker))

	for {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("game aborted", "game", e.id, "plays", len(e.plays), "err", err)
			e.span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if len(e.plays) >= e.cfg.Rules.MaxPlays {
			return nil, e.halt(&core.PlayError{Index: e.state.PlayIndex + 1, Component: "engine", Err: ErrPlayLimit})
		}

		if err := e.play(); err != nil {
			return nil, e.halt(err)
		}

		done, err := e.advance()
		if err != nil {
			return nil, e.halt(&core.PlayError{Index: e.state.PlayIndex, Component: "engine", Err: err})
		}
		if done {
			break
		}
	}

	return e.finish(), nil
}

func (e *Engine) halt(err error) error {
	var pe *core.PlayError
	if errors.As(err, &pe) {
		e.logger.Error("game halted", "game", e.id, "play", pe.Index, "component", pe.Component, "err", pe.Err)
	} else {
		e.logger.Error("game halted", "game", e.id, "err", err)
	}
	e.span.RecordError(err)
	e.span.SetStatus(codes.Error, err.Error())
	return err
}

func (e *Engine) coinToss() core.TeamHandle {
	if e.rng.Intn(2) == 0 {
		return core.Home
	}
	return core.Away
}

// situation builds the read-only view handed to collaborators.
func (e *Engine) situation() core.Situation {
	offense := e.state.Offense()
	s := core.Situation{
		Quarter:  e.state.Quarter,
		Clock:    e.state.Clock,
		Mode:     e.state.Mode,
		Offense:  offense,
		Field:    e.state.Field,
		Downs:    e.state.Downs,
		Overtime: e.state.Quarter > e.cfg.Rules.Quarters,
	}
	if side, err := e.reg.ScoreboardTarget(offense); err == nil {
		s.OffenseScore = e.state.Score.Of(side)
	}
	if side, err := e.reg.ScoreboardTarget(offense.Opponent()); err == nil {
		s.DefenseScore = e.state.Score.Of(side)
	}
	return s
}

func (e *Engine) label(h core.TeamHandle) string {
	return e.reg.Label(h)
}
