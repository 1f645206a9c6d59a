// Package stats turns the committed play stream into team box scores and
// play-by-play text.
package stats

import (
	"sync"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
)

// TeamStats is one team's box score line.
type TeamStats struct {
	Plays          int
	FirstDowns     int
	RushAttempts   int
	RushYards      int
	PassAttempts   int
	Completions    int
	PassYards      int
	Sacks          int // taken
	Interceptions  int // thrown
	FumblesLost    int
	Punts          int
	FieldGoals     int
	FieldGoalTries int
	Penalties      int
	PenaltyYards   int
	Points         int
	Possession     time.Duration
}

// TotalYards is rushing plus passing yardage.
func (s TeamStats) TotalYards() int {
	return s.RushYards + s.PassYards
}

// Turnovers counts giveaways.
func (s TeamStats) Turnovers() int {
	return s.Interceptions + s.FumblesLost
}

// Aggregator is an engine sink that accumulates a box score.
type Aggregator struct {
	mu    sync.Mutex
	teams map[core.TeamHandle]*TeamStats
}

// NewAggregator creates an empty box score.
func NewAggregator() *Aggregator {
	return &Aggregator{
		teams: map[core.TeamHandle]*TeamStats{
			core.Home: {},
			core.Away: {},
		},
	}
}

// RecordPlay adds a committed play.
func (a *Aggregator) RecordPlay(res core.GameStateResult, outcome core.PlayOutcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, p := range res.Penalties {
		if t, ok := a.teams[p.Against]; ok && p.Accepted() {
			t.Penalties++
			t.PenaltyYards += p.Yards
		}
	}

	if res.Score != nil {
		if t, ok := a.teams[res.Score.Team]; ok {
			t.Points += res.Score.Points
		}
	}

	off, ok := a.teams[res.Offense]
	if !ok {
		return
	}
	if res.FirstDown {
		off.FirstDowns++
	}

	// A live-ball foul that was accepted wipes out the play.
	if p, ok := outcome.Penalty(core.PhaseDuringPlay); ok && p.Accepted() {
		return
	}

	switch r := outcome.Result.(type) {
	case core.Rush:
		off.Plays++
		off.Possession += res.Elapsed
		off.RushAttempts++
		off.RushYards += r.Yards
		if r.Fumble != nil {
			off.FumblesLost++
		}
	case core.Pass:
		off.Plays++
		off.Possession += res.Elapsed
		switch r.Result {
		case core.PassSack:
			off.Sacks++
			off.PassYards += r.Yards
		case core.PassComplete:
			off.PassAttempts++
			off.Completions++
			off.PassYards += r.Yards
		case core.PassIncomplete:
			off.PassAttempts++
		case core.PassIntercepted:
			off.PassAttempts++
			off.Interceptions++
		}
	case core.Punt:
		off.Punts++
		off.Possession += res.Elapsed
	case core.FieldGoal:
		off.FieldGoalTries++
		off.Possession += res.Elapsed
		if r.Good {
			off.FieldGoals++
		}
	}
}

// Team returns a copy of one team's line.
func (a *Aggregator) Team(h core.TeamHandle) TeamStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.teams[h]; ok {
		return *t
	}
	return TeamStats{}
}
