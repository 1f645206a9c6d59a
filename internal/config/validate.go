package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/gridiron/internal/registry"
)

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	var errs []error

	r := c.Rules
	if r.Quarters <= 0 {
		errs = append(errs, fmt.Errorf("rules.quarters must be positive, got %d", r.Quarters))
	}
	if r.QuarterLength <= 0 {
		errs = append(errs, fmt.Errorf("rules.quarter_length must be positive, got %s", r.QuarterLength))
	}
	if r.KickoffSpot <= 0 || r.KickoffSpot >= 100 {
		errs = append(errs, fmt.Errorf("rules.kickoff_spot must be on the field, got %d", r.KickoffSpot))
	}
	if r.SafetyKickSpot <= 0 || r.SafetyKickSpot >= 100 {
		errs = append(errs, fmt.Errorf("rules.safety_kick_spot must be on the field, got %d", r.SafetyKickSpot))
	}
	if r.MaxPlays <= 0 {
		errs = append(errs, fmt.Errorf("rules.max_plays must be positive, got %d", r.MaxPlays))
	}
	if r.Overtime.Enabled {
		if r.Overtime.PeriodLength <= 0 {
			errs = append(errs, fmt.Errorf("rules.overtime.period_length must be positive, got %s", r.Overtime.PeriodLength))
		}
		if r.Overtime.MaxPeriods < 0 {
			errs = append(errs, fmt.Errorf("rules.overtime.max_periods must not be negative, got %d", r.Overtime.MaxPeriods))
		}
	}

	errs = append(errs, c.Penalties.validate()...)

	seen := make(map[string]bool)
	for i, t := range c.Teams {
		if t.Discipline < 0 {
			errs = append(errs, fmt.Errorf("teams[%d].discipline must not be negative", i))
		}
		for _, key := range []string{strconv.Itoa(t.ID), strings.ToLower(t.Abbreviation)} {
			if key == "0" || key == "" {
				continue
			}
			if seen[key] {
				errs = append(errs, fmt.Errorf("teams[%d]: duplicate reference %q", i, key))
			}
			seen[key] = true
		}
	}

	if c.Sim.TwoPointRate < 0 || c.Sim.TwoPointRate > 1 {
		errs = append(errs, fmt.Errorf("sim.two_point_rate must be in [0,1], got %v", c.Sim.TwoPointRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (p PenaltyConfig) validate() []error {
	var errs []error

	check := func(name string, rates PhaseRates) {
		for _, v := range []float64{rates.PreSnap, rates.DuringPlay, rates.PostPlay} {
			if v < 0 || v > 1 {
				errs = append(errs, fmt.Errorf("penalties.%s values must be in [0,1], got %v", name, v))
			}
		}
	}
	check("base_rates", p.BaseRates)
	check("offense_share", p.OffenseShare)

	for _, m := range append([]float64{p.Situational.RedZone, p.Situational.GoalLine, p.Situational.BackedUp, p.Situational.TwoMinute}, p.Situational.Down...) {
		if m < 0 {
			errs = append(errs, fmt.Errorf("penalties.situational multipliers must not be negative, got %v", m))
		}
	}

	for i, rule := range p.Rules {
		if rule.PhaseValue() == 0 {
			errs = append(errs, fmt.Errorf("penalties.rules[%d]: unknown phase %q", i, rule.Phase))
		}
		if rule.Against != AgainstOffense && rule.Against != AgainstDefense {
			errs = append(errs, fmt.Errorf("penalties.rules[%d]: against must be offense or defense, got %q", i, rule.Against))
		}
		if rule.Yards <= 0 {
			errs = append(errs, fmt.Errorf("penalties.rules[%d]: yards must be positive", i))
		}
		if rule.Weight < 0 {
			errs = append(errs, fmt.Errorf("penalties.rules[%d]: weight must not be negative", i))
		}
	}
	return errs
}

// Team finds a catalog team by id, abbreviation or name (case-insensitive).
func (c Config) Team(ref string) (TeamConfig, error) {
	key := strings.ToLower(strings.TrimSpace(ref))
	for _, t := range c.Teams {
		if strconv.Itoa(t.ID) == key || strings.ToLower(t.Abbreviation) == key || strings.ToLower(t.Name) == key {
			return t, nil
		}
	}
	return TeamConfig{}, fmt.Errorf("config: unknown team %q", ref)
}

// Identity converts a catalog entry to a registry identity.
func (t TeamConfig) Identity() registry.TeamIdentity {
	return registry.TeamIdentity{
		ID:           t.ID,
		Abbreviation: t.Abbreviation,
		Name:         t.Name,
		RosterID:     t.RosterID,
		Aliases:      t.Aliases,
	}
}
