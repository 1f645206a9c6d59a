package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrKind    = "kind"
	AttrScore   = "score"
	AttrPenalty = "penalty"
	AttrPhase   = "phase"
	AttrOutcome = "outcome"
)
