// Package core holds the domain types shared by every stage of the play
// pipeline. It has no dependencies beyond the standard library so the
// trackers, calculators and the orchestrator can all import it.
package core

// TeamHandle is the game-scoped identity of a team. Raw numeric ids, side
// labels and roster ids are converted into a handle exactly once, by the
// identity registry; nothing else in the engine compares raw references.
type TeamHandle uint8

const (
	// Neutral is the zero value. It marks a free kick in flight, where no team
	// has established possession yet.
	Neutral TeamHandle = iota
	Home
	Away
)

// String returns a human-readable name for the handle.
func (t TeamHandle) String() string {
	switch t {
	case Home:
		return "Home"
	case Away:
		return "Away"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// Valid reports whether the handle names a team (Home or Away).
func (t TeamHandle) Valid() bool {
	return t == Home || t == Away
}

// Opponent returns the other team. Neutral has no opponent and maps to itself.
func (t TeamHandle) Opponent() TeamHandle {
	switch t {
	case Home:
		return Away
	case Away:
		return Home
	default:
		return Neutral
	}
}

// Side is a scoreboard column. Only the identity registry maps a handle to a
// side, so score credit never depends on how a caller spelled the team.
type Side uint8

const (
	SideHome Side = iota + 1
	SideAway
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	default:
		return "unknown"
	}
}

// Score is the scoreboard, one column per side.
type Score struct {
	Home int
	Away int
}

// Add returns the score with points credited to the given side.
func (s Score) Add(side Side, points int) Score {
	switch side {
	case SideHome:
		s.Home += points
	case SideAway:
		s.Away += points
	}
	return s
}

// Of returns the points held by the given side.
func (s Score) Of(side Side) int {
	if side == SideAway {
		return s.Away
	}
	if side == SideHome {
		return s.Home
	}
	return 0
}

// Leader returns the leading side, or false when the game is tied.
func (s Score) Leader() (Side, bool) {
	switch {
	case s.Home > s.Away:
		return SideHome, true
	case s.Away > s.Home:
		return SideAway, true
	default:
		return 0, false
	}
}
