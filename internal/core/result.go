package core

import "time"

// ScoreKind is the type of a scoring play.
type ScoreKind uint8

const (
	ScoreTouchdown ScoreKind = iota + 1
	ScoreFieldGoal
	ScoreSafety
	ScoreExtraPoint
	ScoreTwoPoint
)

// Points returns the value of the score.
func (k ScoreKind) Points() int {
	switch k {
	case ScoreTouchdown:
		return 6
	case ScoreFieldGoal:
		return 3
	case ScoreSafety, ScoreTwoPoint:
		return 2
	case ScoreExtraPoint:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name for the score kind.
func (k ScoreKind) String() string {
	switch k {
	case ScoreTouchdown:
		return "touchdown"
	case ScoreFieldGoal:
		return "field_goal"
	case ScoreSafety:
		return "safety"
	case ScoreExtraPoint:
		return "extra_point"
	case ScoreTwoPoint:
		return "two_point_conversion"
	default:
		return "unknown"
	}
}

// ScoreEvent is a score credited to exactly one team.
type ScoreEvent struct {
	Team   TeamHandle
	Side   Side
	Kind   ScoreKind
	Points int
}

// PossessionChange is a proposed hand-over of the ball. Field and Downs are
// already expressed from the new possessor's perspective.
type PossessionChange struct {
	To    TeamHandle
	Field FieldPosition
	Downs DownState
}

// DriveStatus tags what one play did to the drive.
type DriveStatus uint8

const (
	StatusContinuing DriveStatus = iota
	StatusScored
	StatusTurnover
	StatusPunted
	StatusFreeKick // kickoff or free kick establishing possession
	StatusTry      // conversion attempt after a touchdown
)

// String returns a human-readable name for the status.
func (s DriveStatus) String() string {
	switch s {
	case StatusContinuing:
		return "continuing"
	case StatusScored:
		return "scored"
	case StatusTurnover:
		return "turnover"
	case StatusPunted:
		return "punted"
	case StatusFreeKick:
		return "free_kick"
	case StatusTry:
		return "try"
	default:
		return "unknown"
	}
}

// GameStateResult is the immutable record of one committed play.
type GameStateResult struct {
	Index   int
	Quarter int
	Clock   time.Duration // remaining after the play
	Elapsed time.Duration
	Kind    OutcomeKind
	Offense TeamHandle

	PriorField FieldPosition
	NewField   FieldPosition
	PriorDowns DownState
	NewDowns   DownState

	PossessionChanged bool
	NewPossession     TeamHandle

	Score      *ScoreEvent
	ScoreDelta Score
	ScoreAfter Score

	Status          DriveStatus
	Event           BoundaryEvent
	FirstDown       bool
	TurnoverOnDowns bool
	Penalties       []Penalty
}

// Scored reports whether the play put points on the board.
func (r GameStateResult) Scored() bool {
	return r.Score != nil
}
