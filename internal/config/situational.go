package config

import (
	"math"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Field zones used by the situational multipliers, as yards to the goal.
const (
	redZoneYards  = 20
	goalLineYards = 5
	backedUpLine  = 10
)

// SituationalManager calculates penalty rate multipliers from the game situation.
type SituationalManager struct {
	cfg SituationalConfig
}

// NewSituationalManager creates a new multiplier calculator.
func NewSituationalManager(cfg SituationalConfig) *SituationalManager {
	return &SituationalManager{cfg: cfg}
}

// Multiplier returns down × zone × clock for the situation.
func (m *SituationalManager) Multiplier(s core.Situation) float64 {
	return m.Down(s.Downs.Down) * m.Zone(s.Field.YardLine) * m.Clock(s)
}

// Down returns the multiplier for the current down. Unconfigured downs are 1.0.
func (m *SituationalManager) Down(down int) float64 {
	if down < 1 || down > len(m.cfg.Down) {
		return 1.0
	}
	return orOne(m.cfg.Down[down-1])
}

// Zone returns the multiplier for the line of scrimmage.
func (m *SituationalManager) Zone(yardLine int) float64 {
	toGoal := core.OpponentGoalLine - yardLine
	switch {
	case toGoal <= goalLineYards:
		return orOne(m.cfg.GoalLine)
	case toGoal <= redZoneYards:
		return orOne(m.cfg.RedZone)
	case yardLine <= backedUpLine:
		return orOne(m.cfg.BackedUp)
	default:
		return 1.0
	}
}

// Clock returns the multiplier for the game clock.
func (m *SituationalManager) Clock(s core.Situation) float64 {
	if s.TwoMinute() {
		return orOne(m.cfg.TwoMinute)
	}
	return 1.0
}

// Probability scales a base rate and clamps it to a valid probability.
func Probability(base, multiplier float64) float64 {
	return clampF(base*multiplier, 0.0, 1.0)
}

// orOne treats an unset multiplier as neutral.
func orOne(v float64) float64 {
	if v == 0 {
		return 1.0
	}
	return v
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
