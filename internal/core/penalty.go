package core

// PenaltyPhase is when a flag was thrown relative to the snap.
type PenaltyPhase uint8

const (
	PhasePreSnap PenaltyPhase = iota + 1
	PhaseDuringPlay
	PhasePostPlay
)

// String returns a human-readable name for the phase.
func (p PenaltyPhase) String() string {
	switch p {
	case PhasePreSnap:
		return "pre-snap"
	case PhaseDuringPlay:
		return "during-play"
	case PhasePostPlay:
		return "post-play"
	default:
		return "unknown"
	}
}

// PenaltyType names a foul.
type PenaltyType string

const (
	FalseStart          PenaltyType = "false_start"
	DelayOfGame         PenaltyType = "delay_of_game"
	Encroachment        PenaltyType = "encroachment"
	NeutralZone         PenaltyType = "neutral_zone_infraction"
	OffensiveHolding    PenaltyType = "offensive_holding"
	IllegalBlock        PenaltyType = "illegal_block_in_the_back"
	DefensiveHolding    PenaltyType = "defensive_holding"
	PassInterference    PenaltyType = "defensive_pass_interference"
	FaceMask            PenaltyType = "face_mask"
	Unsportsmanlike     PenaltyType = "unsportsmanlike_conduct"
	PersonalFoulLateHit PenaltyType = "personal_foul_late_hit"
)

// Penalty is an immutable foul record. Yards is the nominal distance; the
// field tracker applies half-the-distance limits when it enforces it.
type Penalty struct {
	Type          PenaltyType
	Phase         PenaltyPhase
	Against       TeamHandle
	Yards         int
	AutoFirstDown bool
	Declined      bool
}

// Accepted reports whether the penalty affects the play.
func (p Penalty) Accepted() bool {
	return !p.Declined
}
