package core

import "time"

// Mode is the kind of snap the game is waiting for.
type Mode uint8

const (
	ModeKickoff Mode = iota
	ModeScrimmage
	ModeTry
	ModeFreeKick // after a safety
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeKickoff:
		return "kickoff"
	case ModeScrimmage:
		return "scrimmage"
	case ModeTry:
		return "try"
	case ModeFreeKick:
		return "free_kick"
	default:
		return "unknown"
	}
}

// Kick reports whether the next snap is a kickoff or free kick.
func (m Mode) Kick() bool {
	return m == ModeKickoff || m == ModeFreeKick
}

// GameState is the single live state of one game. The orchestrator owns it;
// only the transition applicator writes to it.
type GameState struct {
	Quarter    int
	Clock      time.Duration // remaining in the current period
	Possession TeamHandle    // Neutral while a free kick is pending
	Field      FieldPosition
	Downs      DownState
	Score      Score
	Mode       Mode

	// KickoffAdjust shifts the next free kick spot, in yards from the kicking
	// team's perspective. Post-play fouls after a score land here.
	KickoffAdjust int

	PlayIndex int
}

// Offense returns the team snapping or kicking the ball.
func (s GameState) Offense() TeamHandle {
	if s.Possession.Valid() {
		return s.Possession
	}
	return s.Field.Attacking()
}

// Situation is the read-only view of the game handed to the play caller,
// the simulator and the penalty detector.
type Situation struct {
	Quarter      int
	Clock        time.Duration
	Mode         Mode
	Offense      TeamHandle
	Field        FieldPosition
	Downs        DownState
	OffenseScore int
	DefenseScore int
	Overtime     bool
}

// Margin returns the offense's lead (negative when trailing).
func (s Situation) Margin() int {
	return s.OffenseScore - s.DefenseScore
}

// TwoMinute reports whether the period clock is inside two minutes of a half.
func (s Situation) TwoMinute() bool {
	return (s.Quarter == 2 || s.Quarter >= 4) && s.Clock <= 2*time.Minute
}
