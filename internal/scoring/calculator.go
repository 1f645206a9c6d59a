// Package scoring decides whether a play scored, for whom and for how much.
// It never writes a scoreboard; the transition applicator does.
package scoring

import (
	"fmt"

	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/field"
)

// SideResolver maps a team handle to its scoreboard column.
type SideResolver interface {
	ScoreboardTarget(h core.TeamHandle) (core.Side, error)
}

// Calculator evaluates plays against the game's identity registry.
type Calculator struct {
	sides SideResolver
}

// New creates a calculator. sides is normally the game's *registry.Registry.
func New(sides SideResolver) *Calculator {
	return &Calculator{sides: sides}
}

// Evaluate returns the score produced by a play, or nil.
// possession is the team that snapped or kicked the ball.
func (c *Calculator) Evaluate(play core.PlayOutcome, res field.Result, possession core.TeamHandle) (*core.ScoreEvent, error) {
	if !possession.Valid() {
		return nil, fmt.Errorf("scoring: possession %s: %w", possession, core.ErrUnresolvedTeam)
	}

	var team core.TeamHandle
	var kind core.ScoreKind

	// Explicit kinds first: field goals and tries score without a boundary event.
	switch r := play.Result.(type) {
	case core.FieldGoal:
		if !r.Good {
			return nil, nil
		}
		team, kind = possession, core.ScoreFieldGoal
	case core.Try:
		if !r.Good {
			return nil, nil
		}
		team, kind = possession, core.ScoreExtraPoint
		if r.TwoPoint {
			kind = core.ScoreTwoPoint
		}
	default:
		switch res.Event {
		case core.BoundaryTouchdown:
			team, kind = possession, core.ScoreTouchdown
			if res.ChangeOfPossession {
				team = possession.Opponent()
			}
		case core.BoundarySafety:
			team, kind = possession.Opponent(), core.ScoreSafety
		default:
			return nil, nil
		}
	}

	side, err := c.sides.ScoreboardTarget(team)
	if err != nil {
		return nil, fmt.Errorf("scoring: %s: %w", kind, err)
	}

	return &core.ScoreEvent{
		Team:   team,
		Side:   side,
		Kind:   kind,
		Points: kind.Points(),
	}, nil
}
