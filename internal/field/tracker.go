// Package field applies a play outcome to the ball's position and
// classifies goal-line boundary events.
//
// Every result is expressed in the orientation the play started in: yard
// line 0 is the snapping team's own goal line. Re-orienting the spot for a
// new possessor is the drive manager's job.
package field

import (
	"fmt"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Result is where a play left the ball.
type Result struct {
	Spot               core.FieldPosition
	Event              core.BoundaryEvent
	ChangeOfPossession bool
	Net                int // spot minus the line of scrimmage

	// Accepted lists the penalties enforced on this play.
	Accepted []core.Penalty
	// Deferred is a dead-ball foul after a score. It is not enforced on the
	// field; its yardage moves the ensuing kickoff.
	Deferred *core.Penalty
}

// Tracker is stateless; the zero value is ready to use.
type Tracker struct{}

// New creates a field tracker.
func New() *Tracker {
	return &Tracker{}
}

// Apply computes the dead-ball spot for a play snapped from pos.
func (t *Tracker) Apply(pos core.FieldPosition, play core.PlayOutcome) (Result, error) {
	if err := pos.Validate(); err != nil {
		return Result{}, fmt.Errorf("field: line of scrimmage: %w", err)
	}

	res := Result{Spot: pos}
	offense := pos.Attacking()

	if p, ok := play.Penalty(core.PhasePreSnap); ok && p.Accepted() {
		res.Spot.YardLine = enforce(pos.YardLine, p, offense)
		res.Accepted = append(res.Accepted, p)
		res.Net = res.Spot.YardLine - pos.YardLine
		return res, nil
	}

	if p, ok := play.Penalty(core.PhaseDuringPlay); ok && p.Accepted() {
		// An accepted live-ball foul wipes out the play and is enforced from
		// the line of scrimmage.
		res.Spot.YardLine = enforce(pos.YardLine, p, offense)
		res.Accepted = append(res.Accepted, p)
	} else {
		var err error
		if res, err = t.resolve(pos, play); err != nil {
			return Result{}, err
		}
	}

	if p, ok := play.Penalty(core.PhasePostPlay); ok && p.Accepted() {
		res.Accepted = append(res.Accepted, p)
		if scored(res, play) {
			deferred := p
			res.Deferred = &deferred
		} else {
			res.Spot.YardLine = enforce(res.Spot.YardLine, p, offense)
		}
	}

	res.Net = res.Spot.YardLine - pos.YardLine
	return res, nil
}

// resolve dispatches on the outcome kind. Scoring is never consulted here:
// a made field goal and a touchdown produce different geometry.
func (t *Tracker) resolve(pos core.FieldPosition, play core.PlayOutcome) (Result, error) {
	res := Result{Spot: pos}
	line := pos.YardLine

	switch r := play.Result.(type) {
	case core.Rush, core.Pass:
		if to := play.Turnover(); to != nil {
			res.ChangeOfPossession = true
			res.Spot.YardLine, res.Event = turnoverSpot(line+to.Spot, to.ReturnYards)
			return res, nil
		}
		res.Spot.YardLine, res.Event = scrimmageSpot(line + play.ScrimmageYards())

	case core.Punt:
		res.ChangeOfPossession = true
		landing := line + r.Distance
		if r.Result == core.PuntTouchback || landing >= core.OpponentGoalLine {
			res.Spot.YardLine = core.OpponentGoalLine - core.PuntTouchbackSpot
			res.Event = core.BoundaryTouchback
			return res, nil
		}
		spot := landing - r.ReturnYards
		switch {
		case spot <= core.OwnGoalLine:
			res.Spot.YardLine, res.Event = core.OwnGoalLine, core.BoundaryTouchdown
		case spot >= core.OpponentGoalLine:
			res.Spot.YardLine = core.OpponentGoalLine - 1
		default:
			res.Spot.YardLine = spot
		}

	case core.Kickoff:
		res.ChangeOfPossession = true
		receiver, event := kickoffReceiverLine(r)
		if event == core.BoundaryTouchdown {
			res.Spot.YardLine, res.Event = core.OwnGoalLine, event
			return res, nil
		}
		res.Spot.YardLine = core.OpponentGoalLine - receiver
		res.Event = event

	case core.FieldGoal:
		// The spot of the snap stands whether or not the kick is good.
		res.ChangeOfPossession = !r.Good

	case core.Try, core.NoPlay:
		// Spot unchanged.

	default:
		return Result{}, fmt.Errorf("field: unsupported outcome %T", play.Result)
	}

	return res, nil
}

// scrimmageSpot classifies the end of a run or pass.
func scrimmageSpot(spot int) (int, core.BoundaryEvent) {
	switch {
	case spot >= core.OpponentGoalLine:
		return core.OpponentGoalLine, core.BoundaryTouchdown
	case spot <= core.OwnGoalLine:
		return core.OwnGoalLine, core.BoundarySafety
	default:
		return spot, core.BoundaryNone
	}
}

// turnoverSpot moves the ball from the spot of the change back toward the
// original offense's goal line by the return yardage.
func turnoverSpot(change, returnYards int) (int, core.BoundaryEvent) {
	spot := change - returnYards
	switch {
	case spot <= core.OwnGoalLine:
		return core.OwnGoalLine, core.BoundaryTouchdown
	case spot >= core.OpponentGoalLine:
		// Downed in the recovering team's end zone.
		return core.OpponentGoalLine - core.TurnoverTouchbackSpot, core.BoundaryTouchback
	default:
		return spot, core.BoundaryNone
	}
}

// kickoffReceiverLine returns the receiving team's yard line after a kick.
// Every fixed spot, the short or out-of-bounds 40 included, is a touchback.
func kickoffReceiverLine(k core.Kickoff) (int, core.BoundaryEvent) {
	switch k.Result {
	case core.KickEndZoneDirect:
		return core.KickoffTouchbackEndZone, core.BoundaryTouchback
	case core.KickLandingZoneThenEndZone:
		return core.KickoffTouchbackLandingZone, core.BoundaryTouchback
	case core.KickShortOrOutOfBounds:
		return core.KickoffShortOrOutOfBounds, core.BoundaryTouchback
	default:
		if k.ReturnSpot >= core.OpponentGoalLine {
			return core.OpponentGoalLine, core.BoundaryTouchdown
		}
		return core.Clamp(k.ReturnSpot, 1, core.OpponentGoalLine-1), core.BoundaryNone
	}
}

// scored reports whether the play put points on the board, in which case a
// dead-ball foul carries over to the kickoff.
func scored(res Result, play core.PlayOutcome) bool {
	switch res.Event {
	case core.BoundaryTouchdown, core.BoundarySafety:
		return true
	}
	if fg, ok := play.Result.(core.FieldGoal); ok && fg.Good {
		return true
	}
	return false
}

// enforce moves the ball for a foul: toward 0 when the attacking team fouled,
// toward 100 otherwise, never more than half the distance to the goal.
func enforce(line int, p core.Penalty, attacking core.TeamHandle) int {
	if p.Against == attacking {
		return core.ClampYardLine(line - core.HalfDistance(p.Yards, line))
	}
	return core.ClampYardLine(line + core.HalfDistance(p.Yards, core.OpponentGoalLine-line))
}

// Enforcement returns the yards a foul moves the ball from line, signed from
// the attacking team's perspective.
func Enforcement(line int, p core.Penalty, attacking core.TeamHandle) int {
	return enforce(line, p, attacking) - line
}
