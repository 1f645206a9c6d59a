package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
)

func TestAggregatorBoxScore(t *testing.T) {
	a := NewAggregator()

	plays := []struct {
		res     core.GameStateResult
		outcome core.PlayOutcome
	}{
		{
			res:     core.GameStateResult{Offense: core.Home, Kind: core.KindRush, Elapsed: 30 * time.Second, FirstDown: true},
			outcome: core.PlayOutcome{Result: core.Rush{Yards: 12}},
		},
		{
			res:     core.GameStateResult{Offense: core.Home, Kind: core.KindPass, Elapsed: 6 * time.Second},
			outcome: core.PlayOutcome{Result: core.Pass{Result: core.PassIncomplete}},
		},
		{
			res:     core.GameStateResult{Offense: core.Home, Kind: core.KindPass, Elapsed: 25 * time.Second},
			outcome: core.PlayOutcome{Result: core.Pass{Result: core.PassSack, Yards: -7}},
		},
		{
			res: core.GameStateResult{
				Offense: core.Home,
				Kind:    core.KindFieldGoal,
				Score:   &core.ScoreEvent{Team: core.Home, Kind: core.ScoreFieldGoal, Points: 3},
			},
			outcome: core.PlayOutcome{Result: core.FieldGoal{Good: true}},
		},
		{
			res: core.GameStateResult{
				Offense:   core.Away,
				Kind:      core.KindPass,
				Penalties: []core.Penalty{{Type: core.OffensiveHolding, Phase: core.PhaseDuringPlay, Against: core.Away, Yards: 10}},
			},
			outcome: core.PlayOutcome{
				Result:    core.Pass{Result: core.PassComplete, Yards: 30},
				Penalties: []core.Penalty{{Type: core.OffensiveHolding, Phase: core.PhaseDuringPlay, Against: core.Away, Yards: 10}},
			},
		},
	}
	for _, p := range plays {
		a.RecordPlay(p.res, p.outcome)
	}

	home := a.Team(core.Home)
	if home.RushYards != 12 || home.PassYards != -7 || home.TotalYards() != 5 {
		t.Errorf("yards = %d rush %d pass", home.RushYards, home.PassYards)
	}
	if home.PassAttempts != 1 || home.Sacks != 1 || home.FirstDowns != 1 {
		t.Errorf("home = %+v", home)
	}
	if home.FieldGoals != 1 || home.FieldGoalTries != 1 || home.Points != 3 {
		t.Errorf("kicking = %+v", home)
	}
	if home.Possession != 61*time.Second {
		t.Errorf("Possession = %v", home.Possession)
	}

	away := a.Team(core.Away)
	if away.Penalties != 1 || away.PenaltyYards != 10 {
		t.Errorf("penalties = %d for %d", away.Penalties, away.PenaltyYards)
	}
	if away.PassYards != 0 || away.Plays != 0 {
		t.Errorf("a negated play counted: %+v", away)
	}
}

func TestDescribe(t *testing.T) {
	label := func(h core.TeamHandle) string {
		return map[core.TeamHandle]string{core.Home: "BOS", core.Away: "CHI"}[h]
	}

	tests := []struct {
		name string
		res  core.GameStateResult
		want []string
	}{
		{
			name: "gain",
			res: core.GameStateResult{
				Kind:       core.KindRush,
				Offense:    core.Home,
				PriorField: core.NewFieldPosition(core.Home, 30),
				NewField:   core.NewFieldPosition(core.Home, 41),
				FirstDown:  true,
			},
			want: []string{"BOS rush", "11 yards", "first down"},
		},
		{
			name: "touchdown",
			res: core.GameStateResult{
				Kind:       core.KindPass,
				Offense:    core.Away,
				PriorField: core.NewFieldPosition(core.Away, 90),
				NewField:   core.NewFieldPosition(core.Away, 100),
				Event:      core.BoundaryTouchdown,
				Score:      &core.ScoreEvent{Team: core.Away, Kind: core.ScoreTouchdown, Points: 6},
			},
			want: []string{"CHI pass", "TOUCHDOWN CHI"},
		},
		{
			name: "turnover on downs",
			res: core.GameStateResult{
				Kind:              core.KindRush,
				Offense:           core.Home,
				PriorField:        core.NewFieldPosition(core.Home, 35),
				NewField:          core.NewFieldPosition(core.Away, 63),
				PossessionChanged: true,
				NewPossession:     core.Away,
				TurnoverOnDowns:   true,
			},
			want: []string{"CHI ball", "turnover on downs"},
		},
		{
			name: "declined flag",
			res: core.GameStateResult{
				Kind:       core.KindPass,
				Offense:    core.Home,
				PriorField: core.NewFieldPosition(core.Home, 50),
				NewField:   core.NewFieldPosition(core.Home, 50),
				Penalties:  []core.Penalty{{Type: core.DefensiveHolding, Against: core.Away, Declined: true}},
			},
			want: []string{"no gain", "defensive holding on CHI, declined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.res, label)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Describe() = %q, missing %q", got, w)
				}
			}
		})
	}
}
