package slate

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Standing is one team's record over a slate.
type Standing struct {
	Team          string // abbreviation
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
}

// Differential is points for minus points against.
func (s Standing) Differential() int {
	return s.PointsFor - s.PointsAgainst
}

// Standings tallies the finished games of a slate, best record first.
// Halted games do not count. Ties break on point differential, then
// abbreviation.
func Standings(results []Result) []Standing {
	table := make(map[string]*Standing)
	entry := func(abbr string) *Standing {
		s, ok := table[abbr]
		if !ok {
			s = &Standing{Team: abbr}
			table[abbr] = s
		}
		return s
	}

	for _, r := range results {
		if r.Err != nil || r.Game == nil {
			continue
		}
		g := r.Game
		home, away := entry(g.Home.Abbreviation), entry(g.Away.Abbreviation)
		home.PointsFor += g.Final.Home
		home.PointsAgainst += g.Final.Away
		away.PointsFor += g.Final.Away
		away.PointsAgainst += g.Final.Home

		switch g.Winner {
		case core.Home:
			home.Wins++
			away.Losses++
		case core.Away:
			away.Wins++
			home.Losses++
		default:
			home.Ties++
			away.Ties++
		}
	}

	out := make([]Standing, 0, len(table))
	for _, s := range table {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Standing) int {
		return cmp.Or(
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.Differential(), a.Differential()),
			cmp.Compare(a.Team, b.Team),
		)
	})
	return out
}
