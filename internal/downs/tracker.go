// Package downs advances the down and distance after a play.
package downs

import (
	"fmt"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Modifiers carry penalty effects into the down calculation.
type Modifiers struct {
	RepeatDown    bool // replay the down (pre-snap fouls, accepted live-ball fouls)
	AutoFirstDown bool // defensive foul carrying an automatic first down
}

// Result is the down and distance for the next snap.
type Result struct {
	State           core.DownState
	FirstDown       bool
	TurnoverOnDowns bool
}

// Tracker is stateless; the zero value is ready to use.
type Tracker struct{}

// New creates a down tracker.
func New() *Tracker {
	return &Tracker{}
}

// Apply advances prev by a play that netted gained yards and ended at
// yardLine, both in the offense's orientation.
//
// A failed fourth down sets TurnoverOnDowns and leaves the state at fourth
// down; the possession change itself is decided by the drive manager.
func (t *Tracker) Apply(prev core.DownState, gained, yardLine int, mods Modifiers) (Result, error) {
	if err := prev.Validate(); err != nil {
		return Result{}, fmt.Errorf("downs: previous state: %w", err)
	}
	if yardLine < core.OwnGoalLine || yardLine > core.OpponentGoalLine {
		return Result{}, fmt.Errorf("downs: %w: yard line %d", core.ErrOutOfRange, yardLine)
	}

	if mods.AutoFirstDown || gained >= prev.ToGo {
		return Result{State: Fresh(yardLine), FirstDown: true}, nil
	}

	toGo := prev.ToGo - gained
	next := core.DownState{Down: prev.Down, ToGo: toGo}
	if !mods.RepeatDown {
		next.Down = prev.Down + 1
	}
	// Goal to go when the line to gain is at or past the goal line.
	if toGoal := core.OpponentGoalLine - yardLine; toGo >= toGoal {
		next.ToGo = max(toGoal, 1)
		next.GoalToGo = true
	}

	if next.Down > 4 {
		return Result{State: prev, TurnoverOnDowns: true}, nil
	}
	if err := next.Validate(); err != nil {
		return Result{}, fmt.Errorf("downs: next state: %w", err)
	}
	return Result{State: next}, nil
}

// Fresh returns first and ten (or first and goal) at yardLine. It is the
// reset used for a new series and for a change of possession.
func Fresh(yardLine int) core.DownState {
	return core.FreshDowns(yardLine)
}

// ModifiersFor derives the down modifiers from the penalties a play carries.
// offense is the team that snapped the ball.
func ModifiersFor(play core.PlayOutcome, offense core.TeamHandle, changeOfPossession bool) Modifiers {
	var mods Modifiers

	for _, p := range play.Penalties {
		if !p.Accepted() {
			continue
		}
		againstDefense := p.Against != offense

		switch p.Phase {
		case core.PhasePreSnap, core.PhaseDuringPlay:
			mods.RepeatDown = true
			if againstDefense && p.AutoFirstDown {
				mods.AutoFirstDown = true
			}
		case core.PhasePostPlay:
			if againstDefense && p.AutoFirstDown && !changeOfPossession {
				mods.AutoFirstDown = true
			}
		}
	}
	return mods
}
