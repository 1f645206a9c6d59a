package playsim

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/core"
)

// Ratings are a team's strengths, 0.0 (weak) to 1.0 (elite).
type Ratings struct {
	Offense float64
	Defense float64
	Kicking float64
}

// RatingsFrom reads the ratings of a catalog team.
func RatingsFrom(t config.TeamConfig) Ratings {
	return Ratings{Offense: t.Offense, Defense: t.Defense, Kicking: t.Kicking}
}

var average = Ratings{Offense: 0.5, Defense: 0.5, Kicking: 0.5}

// Simulator draws play outcomes. Not safe for concurrent use.
type Simulator struct {
	rng     *rand.Rand
	ratings map[core.TeamHandle]Ratings
}

// NewSimulator creates a simulator. Teams missing from ratings play as
// league average.
func NewSimulator(rng *rand.Rand, ratings map[core.TeamHandle]Ratings) *Simulator {
	s := &Simulator{rng: rng, ratings: make(map[core.TeamHandle]Ratings, len(ratings))}
	for h, r := range ratings {
		s.ratings[h] = r
	}
	return s
}

func (s *Simulator) rating(h core.TeamHandle) Ratings {
	if r, ok := s.ratings[h]; ok {
		return r
	}
	return average
}

// Simulate produces the outcome of a called play.
func (s *Simulator) Simulate(call core.PlayCall, sit core.Situation) core.PlayOutcome {
	off := s.rating(sit.Offense)
	def := s.rating(sit.Offense.Opponent())
	edge := off.Offense - def.Defense

	switch call.Kind {
	case core.KindRush:
		return s.rush(sit, edge)
	case core.KindPass:
		return s.pass(sit, edge)
	case core.KindPunt:
		return s.punt(off.Kicking)
	case core.KindFieldGoal:
		return s.fieldGoal(sit, off.Kicking)
	case core.KindKickoff:
		return s.kickoff(off.Kicking)
	case core.KindTry:
		return s.try(call.TwoPoint, off.Kicking, edge)
	default:
		return core.PlayOutcome{Result: core.NoPlay{}}
	}
}

func (s *Simulator) rush(sit core.Situation, edge float64) core.PlayOutcome {
	yards := s.normal(3.8+4*edge, 3.5)
	if s.rng.Float64() < 0.04 {
		yards += s.rng.Intn(40)
	}
	yards = core.Clamp(yards, -8, sit.Field.ToGoal())

	r := core.Rush{Yards: yards}
	if s.rng.Float64() < 0.012 {
		r.Fumble = &core.Turnover{
			Spot:        core.Clamp(yards, -sit.Field.YardLine, sit.Field.ToGoal()),
			ReturnYards: s.rng.Intn(12),
		}
	}
	return core.PlayOutcome{Result: r, Elapsed: s.runoff(sit, 26, 40)}
}

func (s *Simulator) pass(sit core.Situation, edge float64) core.PlayOutcome {
	draw := s.rng.Float64()
	complete := 0.62 + 0.25*edge

	switch {
	case draw < 0.065:
		return core.PlayOutcome{
			Result:  core.Pass{Result: core.PassSack, Yards: -core.Clamp(s.normal(7, 3), 1, sit.Field.YardLine)},
			Elapsed: s.runoff(sit, 24, 38),
		}
	case draw < 0.09:
		air := core.Clamp(s.normal(14, 8), 1, sit.Field.ToGoal())
		return core.PlayOutcome{
			Result: core.Pass{
				Result:       core.PassIntercepted,
				Interception: &core.Turnover{Spot: air, ReturnYards: core.Clamp(s.normal(10, 9), 0, 100)},
			},
			Elapsed: 8 * time.Second,
		}
	case draw < 0.09+complete*0.91:
		yards := s.normal(8+6*edge, 6)
		if s.rng.Float64() < 0.06 {
			yards += 15 + s.rng.Intn(35)
		}
		yards = core.Clamp(yards, -3, sit.Field.ToGoal())
		return core.PlayOutcome{
			Result:  core.Pass{Result: core.PassComplete, Yards: yards},
			Elapsed: s.runoff(sit, 24, 40),
		}
	default:
		return core.PlayOutcome{Result: core.Pass{Result: core.PassIncomplete}, Elapsed: 6 * time.Second}
	}
}

func (s *Simulator) punt(kicking float64) core.PlayOutcome {
	p := core.Punt{Distance: core.Clamp(s.normal(40+10*kicking, 6), 15, 70)}

	switch draw := s.rng.Float64(); {
	case draw < 0.3:
		p.Result = core.PuntFairCatch
	case draw < 0.4:
		p.Result = core.PuntDowned
	case draw < 0.48:
		p.Result = core.PuntOutOfBounds
	default:
		p.Result = core.PuntReturned
		p.ReturnYards = core.Clamp(s.normal(9, 6), 0, 100)
	}
	return core.PlayOutcome{Result: p, Elapsed: 9 * time.Second}
}

// FieldGoalChance is the make probability for a kick of the given distance.
func FieldGoalChance(distance int, kicking float64) float64 {
	p := 1.02 - float64(max(distance-20, 0))*0.017 + (kicking-0.5)*0.12
	return math.Max(0.05, math.Min(0.99, p))
}

func (s *Simulator) fieldGoal(sit core.Situation, kicking float64) core.PlayOutcome {
	distance := sit.Field.ToGoal() + fieldGoalOffset
	good := s.rng.Float64() < FieldGoalChance(distance, kicking)
	return core.PlayOutcome{Result: core.FieldGoal{Good: good}, Elapsed: 5 * time.Second}
}

func (s *Simulator) kickoff(kicking float64) core.PlayOutcome {
	k := core.Kickoff{}
	touchback := 0.5 + 0.25*kicking

	switch draw := s.rng.Float64(); {
	case draw < touchback:
		k.Result = core.KickEndZoneDirect
	case draw < touchback+0.12:
		k.Result = core.KickLandingZoneThenEndZone
	case draw < touchback+0.16:
		k.Result = core.KickShortOrOutOfBounds
	default:
		k.Result = core.KickReturned
		k.ReturnSpot = core.Clamp(s.normal(27, 8), 1, 99)
		if s.rng.Float64() < 0.01 {
			k.ReturnSpot = core.OpponentGoalLine
		}
	}

	elapsed := 6 * time.Second
	if k.Result == core.KickEndZoneDirect || k.Result == core.KickLandingZoneThenEndZone {
		elapsed = 0
	}
	return core.PlayOutcome{Result: k, Elapsed: elapsed}
}

func (s *Simulator) try(twoPoint bool, kicking, edge float64) core.PlayOutcome {
	chance := 0.93 + 0.05*kicking
	if twoPoint {
		chance = 0.47 + 0.2*edge
	}
	return core.PlayOutcome{Result: core.Try{TwoPoint: twoPoint, Good: s.rng.Float64() < chance}}
}

// runoff is the clock a play with a running clock uses, huddle included.
// Inside two minutes the offense hurries when it is not ahead.
func (s *Simulator) runoff(sit core.Situation, lo, hi int) time.Duration {
	if sit.TwoMinute() && sit.Margin() <= 0 {
		lo, hi = lo/2, hi/2
	}
	return time.Duration(lo+s.rng.Intn(hi-lo+1)) * time.Second
}

func (s *Simulator) normal(mean, stddev float64) int {
	return int(math.Round(s.rng.NormFloat64()*stddev + mean))
}
