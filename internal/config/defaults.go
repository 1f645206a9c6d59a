package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			Quarters:       4,
			QuarterLength:  15 * time.Minute,
			KickoffSpot:    35,
			SafetyKickSpot: 20,
			MaxPlays:       400,
			Overtime: OvertimeConfig{
				Enabled:              true,
				PeriodLength:         10 * time.Minute,
				MaxPeriods:           1,
				GuaranteedPossession: true,
				AllowTie:             true,
			},
		},
		Penalties: PenaltyConfig{
			Enabled: true,
			BaseRates: PhaseRates{
				PreSnap:    0.03,
				DuringPlay: 0.05,
				PostPlay:   0.01,
			},
			OffenseShare: PhaseRates{
				PreSnap:    0.6,
				DuringPlay: 0.5,
				PostPlay:   0.35,
			},
			Situational: SituationalConfig{
				Down:      []float64{1.0, 1.0, 1.1, 1.2},
				RedZone:   1.15,
				GoalLine:  1.25,
				BackedUp:  1.1,
				TwoMinute: 1.2,
			},
			Rules: DefaultPenaltyRules(),
		},
		Teams: DefaultTeams(),
		Sim: SimConfig{
			Workers:      4,
			DBPath:       "~/.gridiron/gridiron.db",
			LogLevel:     "info",
			TwoPointRate: 0.08,
		},
	}
}

// DefaultPenaltyRules returns the standard foul catalog.
func DefaultPenaltyRules() []PenaltyRule {
	return []PenaltyRule{
		{Type: core.FalseStart, Phase: PhasePreSnap, Against: AgainstOffense, Yards: 5, Weight: 0.65},
		{Type: core.DelayOfGame, Phase: PhasePreSnap, Against: AgainstOffense, Yards: 5, Weight: 0.35},
		{Type: core.Encroachment, Phase: PhasePreSnap, Against: AgainstDefense, Yards: 5, Weight: 0.4},
		{Type: core.NeutralZone, Phase: PhasePreSnap, Against: AgainstDefense, Yards: 5, Weight: 0.6},

		{Type: core.OffensiveHolding, Phase: PhaseDuringPlay, Against: AgainstOffense, Yards: 10, Weight: 0.7},
		{Type: core.IllegalBlock, Phase: PhaseDuringPlay, Against: AgainstOffense, Yards: 10, Weight: 0.3},
		{Type: core.DefensiveHolding, Phase: PhaseDuringPlay, Against: AgainstDefense, Yards: 5, AutoFirstDown: true, Weight: 0.45},
		{Type: core.PassInterference, Phase: PhaseDuringPlay, Against: AgainstDefense, Yards: 15, AutoFirstDown: true, Weight: 0.35},
		{Type: core.FaceMask, Phase: PhaseDuringPlay, Against: AgainstDefense, Yards: 15, AutoFirstDown: true, Weight: 0.2},

		{Type: core.Unsportsmanlike, Phase: PhasePostPlay, Against: AgainstOffense, Yards: 15, Weight: 1.0},
		{Type: core.Unsportsmanlike, Phase: PhasePostPlay, Against: AgainstDefense, Yards: 15, AutoFirstDown: true, Weight: 0.5},
		{Type: core.PersonalFoulLateHit, Phase: PhasePostPlay, Against: AgainstDefense, Yards: 15, AutoFirstDown: true, Weight: 0.5},
	}
}

// DefaultTeams returns the built-in league.
func DefaultTeams() []TeamConfig {
	return []TeamConfig{
		{ID: 1, Abbreviation: "BOS", Name: "Boston Harriers", RosterID: "bos", Discipline: 0.9, Offense: 0.62, Defense: 0.55, Kicking: 0.6},
		{ID: 2, Abbreviation: "CHI", Name: "Chicago Ironclads", RosterID: "chi", Discipline: 1.0, Offense: 0.48, Defense: 0.68, Kicking: 0.5},
		{ID: 3, Abbreviation: "DEN", Name: "Denver Peaks", RosterID: "den", Discipline: 1.1, Offense: 0.55, Defense: 0.5, Kicking: 0.75},
		{ID: 4, Abbreviation: "HOU", Name: "Houston Comets", RosterID: "hou", Discipline: 1.2, Offense: 0.58, Defense: 0.45, Kicking: 0.45},
		{ID: 5, Abbreviation: "MIA", Name: "Miami Tides", RosterID: "mia", Discipline: 1.05, Offense: 0.7, Defense: 0.42, Kicking: 0.55},
		{ID: 6, Abbreviation: "POR", Name: "Portland Lumberjacks", RosterID: "por", Discipline: 0.85, Offense: 0.45, Defense: 0.6, Kicking: 0.5},
		{ID: 7, Abbreviation: "STL", Name: "St. Louis Arches", RosterID: "stl", Discipline: 1.0, Offense: 0.5, Defense: 0.5, Kicking: 0.5},
		{ID: 8, Abbreviation: "SEA", Name: "Seattle Squall", RosterID: "sea", Discipline: 0.95, Offense: 0.6, Defense: 0.62, Kicking: 0.65},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
