package main

import (
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/engine"
	"github.com/vovakirdan/gridiron/internal/stats"
)

func teamLabel(res *engine.GameResult) func(core.TeamHandle) string {
	return func(h core.TeamHandle) string {
		switch h {
		case core.Home:
			return res.Home.Abbreviation
		case core.Away:
			return res.Away.Abbreviation
		default:
			return "-"
		}
	}
}

func printPlayByPlay(w io.Writer, res *engine.GameResult) {
	label := teamLabel(res)
	quarter := 0
	for _, p := range res.Plays {
		if p.Quarter != quarter {
			quarter = p.Quarter
			fmt.Fprintf(w, "\n%s\n", periodName(quarter))
		}
		situation := ""
		if p.PriorDowns.Down > 0 {
			situation = fmt.Sprintf("%d&%d at %d", p.PriorDowns.Down, p.PriorDowns.ToGo, p.PriorField.YardLine)
		}
		fmt.Fprintf(w, "  %5s  %-3s %-12s %-5s %s\n",
			formatClock(p.Clock),
			label(p.Offense),
			situation,
			fmt.Sprintf("%d-%d", p.ScoreAfter.Away, p.ScoreAfter.Home),
			stats.Describe(p, label),
		)
	}
	fmt.Fprintln(w)
}

func printBoxScore(w io.Writer, res *engine.GameResult, box *stats.Aggregator) {
	away, home := box.Team(core.Away), box.Team(core.Home)
	row := func(name string, f func(stats.TeamStats) string) {
		fmt.Fprintf(w, "  %-16s %10s %10s\n", name, f(away), f(home))
	}
	itoa := func(f func(stats.TeamStats) int) func(stats.TeamStats) string {
		return func(s stats.TeamStats) string { return fmt.Sprint(f(s)) }
	}

	fmt.Fprintf(w, "  %-16s %10s %10s\n", "", res.Away.Abbreviation, res.Home.Abbreviation)
	row("Points", itoa(func(s stats.TeamStats) int { return s.Points }))
	row("First downs", itoa(func(s stats.TeamStats) int { return s.FirstDowns }))
	row("Total yards", itoa(stats.TeamStats.TotalYards))
	row("Rushing", func(s stats.TeamStats) string { return fmt.Sprintf("%d-%d", s.RushAttempts, s.RushYards) })
	row("Passing", func(s stats.TeamStats) string {
		return fmt.Sprintf("%d/%d-%d", s.Completions, s.PassAttempts, s.PassYards)
	})
	row("Sacks taken", itoa(func(s stats.TeamStats) int { return s.Sacks }))
	row("Turnovers", itoa(stats.TeamStats.Turnovers))
	row("Punts", itoa(func(s stats.TeamStats) int { return s.Punts }))
	row("Field goals", func(s stats.TeamStats) string { return fmt.Sprintf("%d/%d", s.FieldGoals, s.FieldGoalTries) })
	row("Penalties", func(s stats.TeamStats) string { return fmt.Sprintf("%d-%d", s.Penalties, s.PenaltyYards) })
	row("Possession", func(s stats.TeamStats) string { return formatClock(s.Possession) })
	fmt.Fprintln(w)
}

func printFinal(w io.Writer, res *engine.GameResult) {
	label := teamLabel(res)
	result := "tie"
	if res.Winner != core.Neutral {
		result = label(res.Winner) + " win"
	}
	ot := ""
	if res.Overtime {
		ot = " (OT)"
	}
	fmt.Fprintf(w, "Final%s: %s %d, %s %d - %s in %d plays\n",
		ot, res.Away.Abbreviation, res.Final.Away, res.Home.Abbreviation, res.Final.Home, result, len(res.Plays))
	fmt.Fprintf(w, "Game ID: %s\n", res.ID)
}

func periodName(q int) string {
	if q > 4 {
		return fmt.Sprintf("Overtime %d", q-4)
	}
	return fmt.Sprintf("Quarter %d", q)
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
