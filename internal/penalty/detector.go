// Package penalty decides whether a flag is thrown in each of the three
// penalty phases and whether the offended team accepts it.
//
// Each phase rolls independently: the configured base rate is scaled by the
// situational multipliers, split between offense and defense by the
// offensive share and each team's discipline factor, and resolved with one
// uniform draw. A second draw picks the foul by weight. Phases never read
// each other's probabilities and at most one foul is called per phase.
package penalty

import (
	"math/rand"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/core"
)

// Detector calls penalties for one game. Not safe for concurrent use; it
// shares the game's RNG.
type Detector struct {
	cfg         config.PenaltyConfig
	situational *config.SituationalManager
	discipline  map[core.TeamHandle]float64
	rng         *rand.Rand
	byPhase     map[core.PenaltyPhase][]config.PenaltyRule
}

// New creates a detector. discipline scales each team's foul rate (1.0 is
// average); missing entries default to 1.0.
func New(cfg config.PenaltyConfig, discipline map[core.TeamHandle]float64, rng *rand.Rand) *Detector {
	d := &Detector{
		cfg:         cfg,
		situational: config.NewSituationalManager(cfg.Situational),
		discipline:  make(map[core.TeamHandle]float64, len(discipline)),
		rng:         rng,
		byPhase:     make(map[core.PenaltyPhase][]config.PenaltyRule),
	}
	for h, f := range discipline {
		d.discipline[h] = f
	}
	for _, rule := range cfg.Rules {
		phase := rule.PhaseValue()
		d.byPhase[phase] = append(d.byPhase[phase], rule)
	}
	return d
}

// PreSnap returns a foul that stops the snap, or nil.
// Only scrimmage downs are checked.
func (d *Detector) PreSnap(s core.Situation) *core.Penalty {
	if s.Mode != core.ModeScrimmage {
		return nil
	}
	return d.roll(core.PhasePreSnap, s)
}

// DuringPlay may attach a live-ball foul to a run or pass and decides
// whether the offended team accepts it.
func (d *Detector) DuringPlay(s core.Situation, outcome core.PlayOutcome) core.PlayOutcome {
	if s.Mode != core.ModeScrimmage || !outcome.Kind().Scrimmage() {
		return outcome
	}

	p := d.roll(core.PhaseDuringPlay, s)
	if p == nil {
		return outcome
	}
	p.Declined = declined(*p, s, outcome)
	return outcome.WithPenalty(*p)
}

// PostPlay may attach a dead-ball foul after any scrimmage-down play.
// Dead-ball fouls are always enforced; they never cancel a score.
func (d *Detector) PostPlay(s core.Situation, outcome core.PlayOutcome) core.PlayOutcome {
	if s.Mode != core.ModeScrimmage || outcome.Kind() == core.KindNoPlay {
		return outcome
	}

	p := d.roll(core.PhasePostPlay, s)
	if p == nil {
		return outcome
	}
	return outcome.WithPenalty(*p)
}

// Rates returns the per-side foul probabilities for a phase.
func (d *Detector) Rates(phase core.PenaltyPhase, s core.Situation) (offense, defense float64) {
	if !d.cfg.Enabled {
		return 0, 0
	}

	p := config.Probability(d.cfg.BaseRates.Of(phase), d.situational.Multiplier(s))
	share := d.cfg.OffenseShare.Of(phase)

	offense = p * share * d.factor(s.Offense)
	defense = p * (1 - share) * d.factor(s.Offense.Opponent())

	// Keep the combined probability a probability.
	if total := offense + defense; total > 1 {
		offense /= total
		defense /= total
	}
	return offense, defense
}

func (d *Detector) roll(phase core.PenaltyPhase, s core.Situation) *core.Penalty {
	offense, defense := d.Rates(phase, s)
	if offense+defense <= 0 {
		return nil
	}

	var against core.TeamHandle
	var side string

	draw := d.rng.Float64()
	switch {
	case draw < offense:
		against, side = s.Offense, config.AgainstOffense
	case draw < offense+defense:
		against, side = s.Offense.Opponent(), config.AgainstDefense
	default:
		return nil
	}

	rule, ok := d.pick(phase, side)
	if !ok {
		return nil
	}

	return &core.Penalty{
		Type:          rule.Type,
		Phase:         phase,
		Against:       against,
		Yards:         rule.Yards,
		AutoFirstDown: rule.AutoFirstDown,
	}
}

// pick selects a foul for the phase and side by weight.
func (d *Detector) pick(phase core.PenaltyPhase, side string) (config.PenaltyRule, bool) {
	var total float64
	for _, rule := range d.byPhase[phase] {
		if rule.Against == side {
			total += rule.Weight
		}
	}
	if total <= 0 {
		return config.PenaltyRule{}, false
	}

	target := d.rng.Float64() * total
	var last config.PenaltyRule
	for _, rule := range d.byPhase[phase] {
		if rule.Against != side || rule.Weight <= 0 {
			continue
		}
		last = rule
		target -= rule.Weight
		if target < 0 {
			return rule, true
		}
	}
	return last, true
}

func (d *Detector) factor(h core.TeamHandle) float64 {
	if f, ok := d.discipline[h]; ok {
		return f
	}
	return 1.0
}

// declined reports whether the offended team prefers the play result.
func declined(p core.Penalty, s core.Situation, outcome core.PlayOutcome) bool {
	gained := outcome.ScrimmageYards()
	turnover := outcome.Turnover() != nil
	touchdown := !turnover && s.Field.YardLine+gained >= core.OpponentGoalLine
	safety := !turnover && s.Field.YardLine+gained <= core.OwnGoalLine

	if p.Against == s.Offense {
		// The defense keeps a takeaway, a safety or a loss bigger than the foul.
		return turnover || safety || gained <= -p.Yards
	}

	// The offense keeps a touchdown, and keeps a gain at least as long as the
	// foul unless the foul's automatic first down is worth more.
	if turnover {
		return false
	}
	if touchdown {
		return true
	}
	if gained >= p.Yards {
		return !p.AutoFirstDown || gained >= s.Downs.ToGo
	}
	return false
}
