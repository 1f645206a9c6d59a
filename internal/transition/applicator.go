// Package transition is the only writer of a game's live state. Each play's
// field, down, score and possession effects are validated together and
// applied in one assignment, so a rejected play leaves the state untouched.
package transition

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/downs"
	"github.com/vovakirdan/gridiron/internal/field"
)

// SideResolver maps a team handle to its scoreboard column.
type SideResolver interface {
	ScoreboardTarget(h core.TeamHandle) (core.Side, error)
}

// Proposal is everything the pipeline decided about one play.
type Proposal struct {
	Play       core.PlayOutcome
	Field      field.Result
	Downs      downs.Result
	Score      *core.ScoreEvent
	Possession *core.PossessionChange
	Status     core.DriveStatus
}

// Applicator commits proposals to a game state.
type Applicator struct {
	sides SideResolver
	rules config.RulesConfig
}

// New creates an applicator. sides is normally the game's *registry.Registry.
func New(sides SideResolver, rules config.RulesConfig) *Applicator {
	return &Applicator{sides: sides, rules: rules}
}

// Commit applies a play to state and returns its record.
// On error state is not modified and the error wraps core.ErrInvalidTransition.
func (a *Applicator) Commit(state *core.GameState, p Proposal) (core.GameStateResult, error) {
	prior := *state
	next, side, err := a.build(prior, p)
	if err == nil {
		err = a.validate(prior, next, p, side)
	}
	if err != nil {
		return core.GameStateResult{}, fmt.Errorf("transition: play %d: %w: %w", prior.PlayIndex+1, core.ErrInvalidTransition, err)
	}

	*state = next

	var delta core.Score
	if p.Score != nil {
		delta = delta.Add(side, p.Score.Points)
	}

	newField := p.Field.Spot
	if p.Possession != nil {
		newField = p.Possession.Field
	}

	return core.GameStateResult{
		Index:             next.PlayIndex,
		Quarter:           prior.Quarter,
		Clock:             next.Clock,
		Elapsed:           p.Play.Elapsed,
		Kind:              p.Play.Kind(),
		Offense:           prior.Offense(),
		PriorField:        prior.Field,
		NewField:          newField,
		PriorDowns:        prior.Downs,
		NewDowns:          next.Downs,
		PossessionChanged: p.Possession != nil,
		NewPossession:     next.Possession,
		Score:             p.Score,
		ScoreDelta:        delta,
		ScoreAfter:        next.Score,
		Status:            p.Status,
		Event:             p.Field.Event,
		FirstDown:         p.Downs.FirstDown,
		TurnoverOnDowns:   p.Downs.TurnoverOnDowns,
		Penalties:         append([]core.Penalty(nil), p.Play.Penalties...),
	}, nil
}

// build computes the next state on a copy of prior.
func (a *Applicator) build(prior core.GameState, p Proposal) (core.GameState, core.Side, error) {
	next := prior
	next.PlayIndex++

	if p.Play.Elapsed < 0 {
		return next, 0, fmt.Errorf("negative elapsed time %s", p.Play.Elapsed)
	}
	next.Clock = max(prior.Clock-p.Play.Elapsed, 0)

	switch {
	case p.Possession != nil:
		next.Possession = p.Possession.To
		next.Field = p.Possession.Field
		next.Downs = p.Possession.Downs
		next.Mode = core.ModeScrimmage
	case prior.Mode == core.ModeScrimmage:
		next.Field = p.Field.Spot
		if p.Score == nil {
			next.Downs = p.Downs.State
		}
	default:
		next.Field = p.Field.Spot
	}

	var side core.Side
	kicking, kickMode := core.Neutral, core.ModeKickoff

	if p.Score != nil {
		var err error
		if side, err = a.sides.ScoreboardTarget(p.Score.Team); err != nil {
			return next, 0, err
		}
		next.Score = next.Score.Add(side, p.Score.Points)

		switch p.Score.Kind {
		case core.ScoreTouchdown:
			next.Mode = core.ModeTry
			next.Possession = p.Score.Team
			next.Downs = core.FreshDowns(next.Field.YardLine)
		case core.ScoreSafety:
			kicking, kickMode = p.Score.Team.Opponent(), core.ModeFreeKick
		default:
			kicking = p.Score.Team
		}

		if d := p.Field.Deferred; d != nil {
			kicker := kicking
			if p.Score.Kind == core.ScoreTouchdown {
				kicker = p.Score.Team
			}
			if d.Against == kicker {
				next.KickoffAdjust -= d.Yards
			} else {
				next.KickoffAdjust += d.Yards
			}
		}
	}

	// A try that fails still ends with a kickoff by the trying team.
	if prior.Mode == core.ModeTry && kicking == core.Neutral {
		kicking = prior.Possession
	}
	if kicking != core.Neutral {
		a.positionKick(&next, kicking, kickMode)
	}

	return next, side, nil
}

// validate checks the postconditions of a transition.
func (a *Applicator) validate(prior, next core.GameState, p Proposal, side core.Side) error {
	if next.Clock < 0 {
		return fmt.Errorf("clock %s", next.Clock)
	}

	if err := next.Field.Validate(); err != nil {
		return err
	}

	if next.Mode.Kick() {
		if next.Possession != core.Neutral {
			return fmt.Errorf("%s possession during a free kick", next.Possession)
		}
	} else {
		if !next.Possession.Valid() {
			return fmt.Errorf("no team in possession for %s", next.Mode)
		}
		if next.Field.Attacking() != next.Possession {
			return fmt.Errorf("field oriented for %s but %s has the ball", next.Field.Attacking(), next.Possession)
		}
	}

	if next.Mode == core.ModeScrimmage {
		if err := next.Downs.Validate(); err != nil {
			return err
		}
	}

	if c := p.Possession; c != nil {
		if !c.To.Valid() {
			return fmt.Errorf("possession change to %s: %w", c.To, core.ErrUnresolvedTeam)
		}
		if c.To == prior.Possession {
			return fmt.Errorf("possession change to %s, who already has the ball", c.To)
		}
		if c.Field.Attacking() != c.To {
			return fmt.Errorf("possession change field oriented for %s", c.Field.Attacking())
		}
	}

	if prior.Mode.Kick() && p.Possession == nil {
		return errors.New("free kick did not establish possession")
	}

	if p.Downs.TurnoverOnDowns && p.Possession == nil {
		return errors.New("turnover on downs without a possession change")
	}

	if s := p.Score; s != nil {
		if !s.Team.Valid() {
			return fmt.Errorf("score credited to %s: %w", s.Team, core.ErrUnresolvedTeam)
		}
		if s.Side != side {
			return fmt.Errorf("score for %s credited to the %s column, expected %s", s.Team, s.Side, side)
		}
		if s.Points <= 0 || s.Points != s.Kind.Points() {
			return fmt.Errorf("%s worth %d points", s.Kind, s.Points)
		}
	}

	return nil
}

// PrepareFreeKick spots a kickoff (mode core.ModeKickoff) or a free kick after
// a safety (core.ModeFreeKick) for the kicking team. Any pending kickoff
// adjustment from a dead-ball foul is applied and cleared.
func (a *Applicator) PrepareFreeKick(state *core.GameState, kicking core.TeamHandle, mode core.Mode) error {
	if !kicking.Valid() {
		return fmt.Errorf("transition: free kick by %s: %w: %w", kicking, core.ErrInvalidTransition, core.ErrUnresolvedTeam)
	}
	if !mode.Kick() {
		return fmt.Errorf("transition: %w: %s is not a kick", core.ErrInvalidTransition, mode)
	}

	next := *state
	a.positionKick(&next, kicking, mode)
	*state = next
	return nil
}

// StartPeriod rolls the game over to a new period.
func (a *Applicator) StartPeriod(state *core.GameState, quarter int, length time.Duration) error {
	if quarter <= state.Quarter || length <= 0 {
		return fmt.Errorf("transition: %w: period %d of %s after period %d", core.ErrInvalidTransition, quarter, length, state.Quarter)
	}
	state.Quarter = quarter
	state.Clock = length
	return nil
}

func (a *Applicator) positionKick(state *core.GameState, kicking core.TeamHandle, mode core.Mode) {
	spot := a.rules.KickoffSpot
	if mode == core.ModeFreeKick {
		spot = a.rules.SafetyKickSpot
	}
	spot = core.Clamp(spot+state.KickoffAdjust, 1, core.OpponentGoalLine-1)

	state.Mode = mode
	state.Possession = core.Neutral
	state.Field = core.NewFieldPosition(kicking, spot)
	state.Downs = core.DownState{}
	state.KickoffAdjust = 0
}
