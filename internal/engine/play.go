package engine

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/downs"
	"github.com/vovakirdan/gridiron/internal/transition"
)

// play runs one snap through the pipeline and commits it.
func (e *Engine) play() error {
	index := e.state.PlayIndex + 1
	fail := func(component string, err error) error {
		return &core.PlayError{Index: index, Component: component, Err: err}
	}

	sit := e.situation()

	outcome, component, err := e.snap(sit)
	if err != nil {
		return fail(component, err)
	}

	fieldRes, err := e.field.Apply(e.state.Field, outcome)
	if err != nil {
		return fail("field", fmt.Errorf("%w: %w", core.ErrInvalidTransition, err))
	}

	var downRes downs.Result
	if e.needsDowns(outcome, fieldRes.ChangeOfPossession, fieldRes.Event) {
		mods := downs.ModifiersFor(outcome, sit.Offense, false)
		downRes, err = e.downs.Apply(e.state.Downs, fieldRes.Net, fieldRes.Spot.YardLine, mods)
		if err != nil {
			return fail("downs", fmt.Errorf("%w: %w", core.ErrInvalidTransition, err))
		}
	}

	score, err := e.scoring.Evaluate(outcome, fieldRes, sit.Offense)
	if err != nil {
		return fail("scoring", err)
	}

	change, status := e.drives.Possession(e.state, outcome, fieldRes, downRes, score)

	result, err := e.applicator.Commit(&e.state, transition.Proposal{
		Play:       outcome,
		Field:      fieldRes,
		Downs:      downRes,
		Score:      score,
		Possession: change,
		Status:     status,
	})
	if err != nil {
		return fail("transition", err)
	}
	e.plays = append(e.plays, result)

	ended, err := e.drives.Record(result)
	if err != nil {
		return fail("drive", err)
	}

	for _, sink := range e.sinks {
		sink.RecordPlay(result, outcome)
	}

	if score != nil {
		e.logger.Info("score",
			"game", e.id,
			"team", e.label(score.Team),
			"kind", score.Kind,
			"points", score.Points,
			"home", result.ScoreAfter.Home,
			"away", result.ScoreAfter.Away,
		)
		e.span.AddEvent("score", trace.WithAttributes(
			attribute.Int("play", result.Index),
			attribute.String("team", e.label(score.Team)),
			attribute.String("kind", score.Kind.String()),
		))
	}
	if ended != nil {
		e.driveEnded(*ended)
	}
	if e.overtime.active && sit.Mode.Kick() {
		e.overtime.kickScored(score)
	}
	return nil
}

// snap produces the play outcome, with penalties attached. The second return
// value names the component that failed.
func (e *Engine) snap(sit core.Situation) (core.PlayOutcome, string, error) {
	if p := e.penalties.PreSnap(sit); p != nil {
		return core.PlayOutcome{Result: core.NoPlay{}}.WithPenalty(*p), "", nil
	}

	call := e.caller.Call(sit)
	switch {
	case sit.Mode.Kick():
		call.Kind = core.KindKickoff
	case sit.Mode == core.ModeTry:
		call.Kind = core.KindTry
	case call.Kind == core.KindKickoff || call.Kind == core.KindTry || call.Kind == core.KindNoPlay:
		return core.PlayOutcome{}, "play caller", fmt.Errorf("%s called on a scrimmage down", call.Kind)
	}

	outcome := e.sim.Simulate(call, sit)
	if outcome.Result == nil || outcome.Kind() != call.Kind {
		return core.PlayOutcome{}, "simulator", fmt.Errorf("%s outcome for a %s call", outcome.Kind(), call.Kind)
	}

	outcome = e.penalties.DuringPlay(sit, outcome)
	outcome = e.penalties.PostPlay(sit, outcome)
	return outcome, "", nil
}

// needsDowns reports whether the play continues the offense's series.
func (e *Engine) needsDowns(outcome core.PlayOutcome, changeOfPossession bool, event core.BoundaryEvent) bool {
	if e.state.Mode != core.ModeScrimmage || changeOfPossession || event != core.BoundaryNone {
		return false
	}
	k := outcome.Kind()
	return k.Scrimmage() || k == core.KindNoPlay
}

func (e *Engine) driveEnded(d core.Drive) {
	e.logger.Debug("drive ended",
		"game", e.id,
		"drive", d.Number,
		"team", e.label(d.Team),
		"plays", len(d.Plays),
		"yards", d.Yards(),
		"reason", d.Reason,
	)

	if e.overtime.active && d.StartQuarter > e.cfg.Rules.Quarters {
		e.overtime.record(d)
	}

	if e.persister != nil {
		if err := e.persister.SaveDrive(e.id, d); err != nil {
			e.logger.Warn("failed to save drive", "game", e.id, "drive", d.Number, "error", err)
		}
	}
}

func (e *Engine) closeDrive(reason core.EndReason) {
	if d := e.drives.Close(reason); d != nil {
		e.driveEnded(*d)
	}
}
