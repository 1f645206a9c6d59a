package core

import "time"

// OutcomeKind tags the Outcome variants.
type OutcomeKind uint8

const (
	KindNoPlay OutcomeKind = iota
	KindRush
	KindPass
	KindPunt
	KindFieldGoal
	KindKickoff
	KindTry
)

// String returns a human-readable name for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case KindNoPlay:
		return "no_play"
	case KindRush:
		return "rush"
	case KindPass:
		return "pass"
	case KindPunt:
		return "punt"
	case KindFieldGoal:
		return "field_goal"
	case KindKickoff:
		return "kickoff"
	case KindTry:
		return "try"
	default:
		return "unknown"
	}
}

// Scrimmage reports whether the kind is a run or pass from scrimmage.
func (k OutcomeKind) Scrimmage() bool {
	return k == KindRush || k == KindPass
}

// Outcome is the kind-specific part of a simulated play. The set of variants
// is closed; consumers switch on the concrete type or on Kind.
type Outcome interface {
	Kind() OutcomeKind
	isOutcome()
}

// Turnover describes a change of possession on a live ball. Spot is measured
// in yards past the line of scrimmage where the defense gained the ball;
// ReturnYards move it back toward the offense's goal line.
type Turnover struct {
	Spot        int
	ReturnYards int
}

// NoPlay is a snap that never happened because of a pre-snap foul.
type NoPlay struct{}

// Rush is a running play.
type Rush struct {
	Yards  int
	Fumble *Turnover // nil unless the defense recovered
}

// PassResult distinguishes what happened to a pass attempt.
type PassResult uint8

const (
	PassComplete PassResult = iota
	PassIncomplete
	PassSack
	PassIntercepted
)

// Pass is a pass attempt; a sack carries negative Yards.
type Pass struct {
	Result       PassResult
	Yards        int
	Interception *Turnover // set when Result is PassIntercepted
}

// PuntResult says how a punt ended.
type PuntResult uint8

const (
	PuntReturned PuntResult = iota
	PuntFairCatch
	PuntDowned
	PuntOutOfBounds
	PuntTouchback
)

// Punt is a punt from scrimmage. Distance is measured from the line of
// scrimmage to where the ball was caught or died.
type Punt struct {
	Distance    int
	Result      PuntResult
	ReturnYards int
}

// FieldGoal is a field goal attempt.
type FieldGoal struct {
	Good bool
}

// KickResult says how a kickoff or free kick ended.
type KickResult uint8

const (
	// KickReturned means the receiver fielded and returned the ball to ReturnSpot.
	KickReturned KickResult = iota
	// KickEndZoneDirect is a kick into the end zone on the fly, downed there.
	KickEndZoneDirect
	// KickLandingZoneThenEndZone landed in the landing zone and rolled into the end zone.
	KickLandingZoneThenEndZone
	// KickShortOrOutOfBounds fell short of the landing zone or went out of bounds.
	KickShortOrOutOfBounds
)

// Touchback spots, as receiving-team yard lines.
const (
	KickoffTouchbackEndZone     = 35
	KickoffTouchbackLandingZone = 20
	KickoffShortOrOutOfBounds   = 40
	PuntTouchbackSpot           = 20
	TurnoverTouchbackSpot       = 20
)

// Kickoff is a kickoff or free kick. ReturnSpot is the receiving team's
// yard line where the return ended; 100 or more is a return touchdown.
type Kickoff struct {
	Result     KickResult
	ReturnSpot int
}

// Try is a conversion attempt after a touchdown.
type Try struct {
	TwoPoint bool
	Good     bool
}

func (NoPlay) Kind() OutcomeKind    { return KindNoPlay }
func (Rush) Kind() OutcomeKind      { return KindRush }
func (Pass) Kind() OutcomeKind      { return KindPass }
func (Punt) Kind() OutcomeKind      { return KindPunt }
func (FieldGoal) Kind() OutcomeKind { return KindFieldGoal }
func (Kickoff) Kind() OutcomeKind   { return KindKickoff }
func (Try) Kind() OutcomeKind       { return KindTry }

func (NoPlay) isOutcome()    {}
func (Rush) isOutcome()      {}
func (Pass) isOutcome()      {}
func (Punt) isOutcome()      {}
func (FieldGoal) isOutcome() {}
func (Kickoff) isOutcome()   {}
func (Try) isOutcome()       {}

// PlayOutcome is the raw result of one play before it is applied to the game
// state. Values are treated as immutable: helpers return modified copies.
type PlayOutcome struct {
	Result    Outcome
	Elapsed   time.Duration
	Penalties []Penalty
}

// Kind returns the kind of the underlying result.
func (o PlayOutcome) Kind() OutcomeKind {
	if o.Result == nil {
		return KindNoPlay
	}
	return o.Result.Kind()
}

// WithPenalty returns a copy of the outcome with p appended.
func (o PlayOutcome) WithPenalty(p Penalty) PlayOutcome {
	penalties := make([]Penalty, 0, len(o.Penalties)+1)
	penalties = append(penalties, o.Penalties...)
	o.Penalties = append(penalties, p)
	return o
}

// Penalty returns the penalty called in the given phase, if any.
func (o PlayOutcome) Penalty(phase PenaltyPhase) (Penalty, bool) {
	for _, p := range o.Penalties {
		if p.Phase == phase {
			return p, true
		}
	}
	return Penalty{}, false
}

// Turnover returns the live-ball turnover carried by a run or pass.
func (o PlayOutcome) Turnover() *Turnover {
	switch r := o.Result.(type) {
	case Rush:
		return r.Fumble
	case Pass:
		if r.Result == PassIntercepted {
			return r.Interception
		}
	}
	return nil
}

// ScrimmageYards returns the yards a run or pass gained before any turnover.
func (o PlayOutcome) ScrimmageYards() int {
	switch r := o.Result.(type) {
	case Rush:
		return r.Yards
	case Pass:
		if r.Result == PassIncomplete || r.Result == PassIntercepted {
			return 0
		}
		return r.Yards
	}
	return 0
}

// PlayCall is the play chosen for a snap by an external play caller.
type PlayCall struct {
	Kind     OutcomeKind
	TwoPoint bool   // for KindTry
	Name     string // free-form label, e.g. "inside zone"
}
