// Package playsim is the reference play caller and play simulator used by
// the CLI. It makes situational decisions and draws outcomes from simple
// rating-driven distributions with the game's seeded RNG.
package playsim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Field goal geometry: the kick is spotted seven yards behind the line of
// scrimmage and the posts stand ten yards deep in the end zone.
const (
	fieldGoalOffset = 17
	maxFieldGoal    = 55
)

// Caller chooses plays like a conservative coordinator.
type Caller struct {
	rng          *rand.Rand
	twoPointRate float64
}

// NewCaller creates a caller. twoPointRate is how often a try is a two-point
// attempt when the score does not force the decision.
func NewCaller(rng *rand.Rand, twoPointRate float64) *Caller {
	return &Caller{rng: rng, twoPointRate: twoPointRate}
}

// Call picks the play for a snap.
func (c *Caller) Call(s core.Situation) core.PlayCall {
	switch s.Mode {
	case core.ModeKickoff, core.ModeFreeKick:
		return core.PlayCall{Kind: core.KindKickoff, Name: "kickoff"}
	case core.ModeTry:
		return c.try(s)
	}

	if s.Downs.Down == 4 {
		if call, ok := c.fourthDown(s); ok {
			return call
		}
	}
	return c.scrimmage(s)
}

func (c *Caller) try(s core.Situation) core.PlayCall {
	// Margin already includes the touchdown.
	twoPoint := c.rng.Float64() < c.twoPointRate
	if s.Quarter >= 4 {
		switch s.Margin() {
		case -2, 1, -5:
			twoPoint = true
		case -1, 0:
			twoPoint = false
		}
	}
	name := "extra point"
	if twoPoint {
		name = "two-point conversion"
	}
	return core.PlayCall{Kind: core.KindTry, TwoPoint: twoPoint, Name: name}
}

// fourthDown returns a kick call, or false to go for it.
func (c *Caller) fourthDown(s core.Situation) (core.PlayCall, bool) {
	toGoal := s.Field.ToGoal()
	kick := toGoal+fieldGoalOffset <= maxFieldGoal

	late := s.Quarter >= 4 && s.Clock <= 5*time.Minute
	switch {
	case late && s.Margin() < 0 && (s.Margin() < -3 || !kick):
		return core.PlayCall{}, false
	case late && s.Margin() < 0 && s.Margin() >= -3 && kick:
		return core.PlayCall{Kind: core.KindFieldGoal, Name: "field goal"}, true
	case s.Downs.ToGo <= 1 && s.Field.YardLine >= 45 && !s.Downs.GoalToGo:
		return core.PlayCall{}, false
	case s.Downs.ToGo <= 2 && s.Field.YardLine >= 55 && s.Field.YardLine <= 65:
		return core.PlayCall{}, false
	case kick:
		return core.PlayCall{Kind: core.KindFieldGoal, Name: "field goal"}, true
	default:
		return core.PlayCall{Kind: core.KindPunt, Name: "punt"}, true
	}
}

// PassRate is the chance of a pass call for the situation.
func PassRate(s core.Situation) float64 {
	rate := 0.55
	switch {
	case s.Downs.ToGo >= 7 && s.Downs.Down >= 2:
		rate = 0.78
	case s.Downs.ToGo <= 2:
		rate = 0.35
	}
	if s.TwoMinute() && s.Margin() <= 0 {
		rate = max(rate, 0.8)
	}
	if s.Quarter >= 4 && s.Margin() > 0 && s.Clock <= 5*time.Minute {
		// Protect the lead and run clock.
		rate = min(rate, 0.3)
	}
	return rate
}

func (c *Caller) scrimmage(s core.Situation) core.PlayCall {
	if c.rng.Float64() < PassRate(s) {
		names := []string{"quick slant", "play action", "four verticals", "screen", "dagger"}
		return core.PlayCall{Kind: core.KindPass, Name: names[c.rng.Intn(len(names))]}
	}
	names := []string{"inside zone", "power", "counter", "outside zone", "draw"}
	return core.PlayCall{Kind: core.KindRush, Name: names[c.rng.Intn(len(names))]}
}
