package core

import "fmt"

// FirstDownDistance is the yardage needed for a fresh set of downs.
const FirstDownDistance = 10

// DownState is the down and distance.
type DownState struct {
	Down     int
	ToGo     int
	GoalToGo bool
}

// FreshDowns returns 1st and 10 at yardLine, or 1st and goal when the goal
// line is closer than ten yards.
func FreshDowns(yardLine int) DownState {
	toGoal := OpponentGoalLine - yardLine
	if toGoal < 1 {
		toGoal = 1
	}
	if toGoal <= FirstDownDistance {
		return DownState{Down: 1, ToGo: toGoal, GoalToGo: true}
	}
	return DownState{Down: 1, ToGo: FirstDownDistance}
}

// Validate checks 1 <= down <= 4 and to-go >= 1.
func (d DownState) Validate() error {
	if d.Down < 1 || d.Down > 4 {
		return fmt.Errorf("%w: down %d", ErrOutOfRange, d.Down)
	}
	if d.ToGo < 1 {
		return fmt.Errorf("%w: yards to go %d", ErrOutOfRange, d.ToGo)
	}
	return nil
}

// String renders the down and distance ("3rd & 7", "1st & goal").
func (d DownState) String() string {
	dist := fmt.Sprintf("%d", d.ToGo)
	if d.GoalToGo {
		dist = "goal"
	}
	return fmt.Sprintf("%s & %s", ordinal(d.Down), dist)
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
