package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampYardLine restricts a yard line to the field.
func ClampYardLine(line int) int {
	return Clamp(line, OwnGoalLine, OpponentGoalLine)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HalfDistance caps a penalty at half the distance to the offended team's
// goal. toGoal is the distance from the enforcement spot to the goal line of
// the penalized team.
func HalfDistance(yards, toGoal int) int {
	if toGoal <= 0 {
		return 0
	}
	if yards*2 > toGoal {
		return toGoal / 2
	}
	return yards
}
