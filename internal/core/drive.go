package core

import "time"

// DriveState is the lifecycle of a drive.
type DriveState uint8

const (
	DriveStarting DriveState = iota
	DriveActive
	DriveEnded
)

// String returns a human-readable name for the state.
func (s DriveState) String() string {
	switch s {
	case DriveStarting:
		return "starting"
	case DriveActive:
		return "active"
	case DriveEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason says why a drive ended.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndScore
	EndTurnover
	EndTurnoverOnDowns
	EndPunt
	EndMissedFieldGoal
	EndOfHalf
	EndOfGame
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndScore:
		return "score"
	case EndTurnover:
		return "turnover"
	case EndTurnoverOnDowns:
		return "turnover_on_downs"
	case EndPunt:
		return "punt"
	case EndMissedFieldGoal:
		return "missed_field_goal"
	case EndOfHalf:
		return "end_of_half"
	case EndOfGame:
		return "end_of_game"
	default:
		return "unknown"
	}
}

// Drive is a contiguous run of plays by one possessing team.
type Drive struct {
	Number       int
	Team         TeamHandle
	Start        FieldPosition
	StartQuarter int
	StartClock   time.Duration
	Plays        []GameStateResult
	State        DriveState
	Reason       EndReason
	Final        FieldPosition
}

// Yards returns the net field gained from the start spot to the final spot,
// both from the driving team's perspective.
func (d Drive) Yards() int {
	final := d.Final
	if final.Attacking() != d.Team {
		final = final.Flip()
	}
	return final.YardLine - d.Start.YardLine
}

// Elapsed returns the game clock consumed by the drive's plays.
func (d Drive) Elapsed() time.Duration {
	var total time.Duration
	for _, p := range d.Plays {
		total += p.Elapsed
	}
	return total
}

// Points returns the points the driving team scored on the drive.
func (d Drive) Points() int {
	points := 0
	for _, p := range d.Plays {
		if p.Score != nil && p.Score.Team == d.Team {
			points += p.Score.Points
		}
	}
	return points
}
