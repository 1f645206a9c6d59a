// Package config provides YAML-based game configuration loading, runtime
// environment overrides and the situational penalty multipliers.
package config

import (
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Config is the full simulator configuration.
type Config struct {
	Rules     RulesConfig   `yaml:"rules"`
	Penalties PenaltyConfig `yaml:"penalties"`
	Teams     []TeamConfig  `yaml:"teams"`
	Sim       SimConfig     `yaml:"sim"`
}

// RulesConfig defines game structure and kick spots.
type RulesConfig struct {
	Quarters       int            `yaml:"quarters"`
	QuarterLength  time.Duration  `yaml:"quarter_length"`
	KickoffSpot    int            `yaml:"kickoff_spot"`     // kicking team's yard line
	SafetyKickSpot int            `yaml:"safety_kick_spot"` // free kick after a safety
	MaxPlays       int            `yaml:"max_plays"`        // hard stop for a runaway game loop
	Overtime       OvertimeConfig `yaml:"overtime"`
}

// OvertimeConfig defines what happens when regulation ends tied.
type OvertimeConfig struct {
	Enabled              bool          `yaml:"enabled"`
	PeriodLength         time.Duration `yaml:"period_length"`
	MaxPeriods           int           `yaml:"max_periods"`
	GuaranteedPossession bool          `yaml:"guaranteed_possession"` // both teams get the ball unless the first drive is a touchdown
	AllowTie             bool          `yaml:"allow_tie"`
}

// PenaltyConfig defines penalty occurrence and the foul catalog.
type PenaltyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	BaseRates    PhaseRates        `yaml:"base_rates"`    // chance of any flag per snap
	OffenseShare PhaseRates        `yaml:"offense_share"` // fraction of flags against the offense
	Situational  SituationalConfig `yaml:"situational"`
	Rules        []PenaltyRule     `yaml:"rules"`
}

// PhaseRates holds one value per penalty phase.
type PhaseRates struct {
	PreSnap    float64 `yaml:"pre_snap"`
	DuringPlay float64 `yaml:"during_play"`
	PostPlay   float64 `yaml:"post_play"`
}

// Of returns the value for a phase.
func (r PhaseRates) Of(phase core.PenaltyPhase) float64 {
	switch phase {
	case core.PhasePreSnap:
		return r.PreSnap
	case core.PhaseDuringPlay:
		return r.DuringPlay
	case core.PhasePostPlay:
		return r.PostPlay
	default:
		return 0
	}
}

// SituationalConfig scales penalty rates by down, field zone and clock.
type SituationalConfig struct {
	Down      []float64 `yaml:"down"`       // index 0 is 1st down
	RedZone   float64   `yaml:"red_zone"`   // inside the opponent's 20
	GoalLine  float64   `yaml:"goal_line"`  // inside the opponent's 5
	BackedUp  float64   `yaml:"backed_up"`  // inside the offense's own 10
	TwoMinute float64   `yaml:"two_minute"` // final two minutes of a half
}

// Penalty sides in PenaltyRule.Against.
const (
	AgainstOffense = "offense"
	AgainstDefense = "defense"
)

// Penalty phases in PenaltyRule.Phase.
const (
	PhasePreSnap    = "pre_snap"
	PhaseDuringPlay = "during_play"
	PhasePostPlay   = "post_play"
)

// PenaltyRule is one foul the detector can call.
type PenaltyRule struct {
	Type          core.PenaltyType `yaml:"type"`
	Phase         string           `yaml:"phase"`
	Against       string           `yaml:"against"`
	Yards         int              `yaml:"yards"`
	AutoFirstDown bool             `yaml:"auto_first_down"`
	Weight        float64          `yaml:"weight"`
}

// PhaseValue converts the configured phase name.
func (r PenaltyRule) PhaseValue() core.PenaltyPhase {
	switch r.Phase {
	case PhasePreSnap:
		return core.PhasePreSnap
	case PhaseDuringPlay:
		return core.PhaseDuringPlay
	case PhasePostPlay:
		return core.PhasePostPlay
	default:
		return 0
	}
}

// AgainstOffense reports whether the foul is charged to the offense.
func (r PenaltyRule) AgainstOffense() bool {
	return r.Against == AgainstOffense
}

// TeamConfig describes a team in the league catalog.
type TeamConfig struct {
	ID           int      `yaml:"id"`
	Abbreviation string   `yaml:"abbreviation"`
	Name         string   `yaml:"name"`
	RosterID     string   `yaml:"roster_id"`
	Aliases      []string `yaml:"aliases"`
	Discipline   float64  `yaml:"discipline"` // penalty rate factor, 1.0 is league average
	Offense      float64  `yaml:"offense"`    // 0.0 = weak, 1.0 = elite
	Defense      float64  `yaml:"defense"`
	Kicking      float64  `yaml:"kicking"`
}

// SimConfig contains runtime settings that are not part of the rules.
type SimConfig struct {
	Seed         int64   `yaml:"seed"` // 0 means derive from the current time
	Workers      int     `yaml:"workers"`
	DBPath       string  `yaml:"db_path"`
	LogLevel     string  `yaml:"log_level"`
	MetricsAddr  string  `yaml:"metrics_addr"`
	TwoPointRate float64 `yaml:"two_point_rate"` // how often the reference caller goes for two
}
