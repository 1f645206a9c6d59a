package core

import "fmt"

// Goal lines on the 0-100 yard scale. Yard lines are measured from the
// attacking team's own goal line.
const (
	OwnGoalLine      = 0
	OpponentGoalLine = 100
	Midfield         = 50
)

// FieldPosition is a validated spot on the field together with its
// orientation: Defending is the team whose goal line sits at 100.
type FieldPosition struct {
	YardLine  int
	Defending TeamHandle
}

// NewFieldPosition creates a position for the attacking team at yardLine.
func NewFieldPosition(attacking TeamHandle, yardLine int) FieldPosition {
	return FieldPosition{YardLine: yardLine, Defending: attacking.Opponent()}
}

// Attacking returns the team moving toward the 100 yard line.
func (p FieldPosition) Attacking() TeamHandle {
	return p.Defending.Opponent()
}

// Flip re-expresses the same spot from the other team's perspective.
func (p FieldPosition) Flip() FieldPosition {
	return FieldPosition{
		YardLine:  OpponentGoalLine - p.YardLine,
		Defending: p.Attacking(),
	}
}

// ToGoal returns the yards between the spot and the defended goal line.
func (p FieldPosition) ToGoal() int {
	return OpponentGoalLine - p.YardLine
}

// Validate checks the position is on the field with a real orientation.
func (p FieldPosition) Validate() error {
	if p.YardLine < OwnGoalLine || p.YardLine > OpponentGoalLine {
		return fmt.Errorf("%w: yard line %d", ErrOutOfRange, p.YardLine)
	}
	if !p.Defending.Valid() {
		return fmt.Errorf("%w: field orientation %s", ErrOutOfRange, p.Defending)
	}
	return nil
}

// String renders the spot the way a broadcast would ("own 35", "opp 8").
func (p FieldPosition) String() string {
	switch {
	case p.YardLine == Midfield:
		return "50"
	case p.YardLine < Midfield:
		return fmt.Sprintf("own %d", p.YardLine)
	default:
		return fmt.Sprintf("opp %d", OpponentGoalLine-p.YardLine)
	}
}

// BoundaryEvent classifies a play that crossed or ended at a goal line.
type BoundaryEvent uint8

const (
	BoundaryNone BoundaryEvent = iota
	BoundaryTouchdown
	BoundarySafety
	BoundaryTouchback
)

// String returns a human-readable name for the event.
func (e BoundaryEvent) String() string {
	switch e {
	case BoundaryNone:
		return "none"
	case BoundaryTouchdown:
		return "touchdown"
	case BoundarySafety:
		return "safety"
	case BoundaryTouchback:
		return "touchback"
	default:
		return "unknown"
	}
}
