package engine

import (
	"github.com/vovakirdan/gridiron/internal/core"
)

// overtime tracks possessions in the extra periods.
type overtime struct {
	active      bool
	possessions map[core.TeamHandle]int
	decided     bool // the opening drive ended in a touchdown or a defensive score
}

// suddenDeath reports whether the next score wins.
func (o overtime) suddenDeath(guaranteed bool) bool {
	if !guaranteed || o.decided {
		return true
	}
	return o.possessions[core.Home] > 0 && o.possessions[core.Away] > 0
}

// record counts a finished overtime drive.
func (o *overtime) record(d core.Drive) {
	opening := o.possessions[core.Home]+o.possessions[core.Away] == 0
	if opening && openingScoreDecides(d) {
		o.decided = true
	}
	o.possessions[d.Team]++
}

// kickScored handles a score on an overtime free kick. A score on the
// opening kick stands in for the receiving team's opening possession.
func (o *overtime) kickScored(s *core.ScoreEvent) {
	if s == nil || o.possessions[core.Home]+o.possessions[core.Away] > 0 {
		return
	}
	if s.Kind != core.ScoreFieldGoal {
		o.decided = true
	}
}

// openingScoreDecides reports whether a score on the first overtime drive
// ends the game outright. Only a field goal by the driving team gives the
// other team its possession.
func openingScoreDecides(d core.Drive) bool {
	if len(d.Plays) == 0 {
		return false
	}
	s := d.Plays[len(d.Plays)-1].Score
	return s != nil && (s.Kind != core.ScoreFieldGoal || s.Team != d.Team)
}

// advance handles period and game boundaries after a committed play.
// It returns true when the game is over.
func (e *Engine) advance() (bool, error) {
	rules := e.cfg.Rules

	if e.overtime.active && e.overtime.suddenDeath(rules.Overtime.GuaranteedPossession) {
		if _, lead := e.state.Score.Leader(); lead {
			e.closeDrive(core.EndOfGame)
			return true, nil
		}
	}

	// A touchdown on the last snap still gets its try.
	if e.state.Clock > 0 || e.state.Mode == core.ModeTry {
		return false, nil
	}

	q := e.state.Quarter
	if q < rules.Quarters {
		if err := e.applicator.StartPeriod(&e.state, q+1, rules.QuarterLength); err != nil {
			return false, err
		}
		if q == rules.Quarters/2 {
			e.closeDrive(core.EndOfHalf)
			e.logger.Debug("halftime", "game", e.id, "home", e.state.Score.Home, "away", e.state.Score.Away)
			if err := e.applicator.PrepareFreeKick(&e.state, e.openingKicker.Opponent(), core.ModeKickoff); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	// End of regulation or of an overtime period.
	if _, lead := e.state.Score.Leader(); lead {
		e.closeDrive(core.EndOfGame)
		return true, nil
	}

	ot := rules.Overtime
	played := q - rules.Quarters
	if !ot.Enabled || (ot.AllowTie && ot.MaxPeriods > 0 && played >= ot.MaxPeriods) {
		e.closeDrive(core.EndOfGame)
		return true, nil
	}

	if err := e.applicator.StartPeriod(&e.state, q+1, ot.PeriodLength); err != nil {
		return false, err
	}
	if played == 0 {
		e.closeDrive(core.EndOfHalf)
		kicker := e.coinToss()
		if err := e.applicator.PrepareFreeKick(&e.state, kicker, core.ModeKickoff); err != nil {
			return false, err
		}
		e.overtime = overtime{active: true, possessions: make(map[core.TeamHandle]int)}
		e.logger.Info("overtime", "game", e.id, "score", e.state.Score.Home, "kicking", e.label(kicker))
	}
	return false, nil
}

// finish closes the game and reports it to the persister.
func (e *Engine) finish() *GameResult {
	e.closeDrive(core.EndOfGame)

	home, _ := e.reg.Identity(core.Home)
	away, _ := e.reg.Identity(core.Away)

	result := &GameResult{
		ID:       e.id,
		Home:     home,
		Away:     away,
		Final:    e.state.Score,
		Winner:   core.Neutral,
		Overtime: e.state.Quarter > e.cfg.Rules.Quarters,
		Periods:  e.state.Quarter,
		Plays:    append([]core.GameStateResult(nil), e.plays...),
		Drives:   e.drives.Drives(),
	}
	if side, ok := e.state.Score.Leader(); ok {
		for _, h := range []core.TeamHandle{core.Home, core.Away} {
			if s, err := e.reg.ScoreboardTarget(h); err == nil && s == side {
				result.Winner = h
			}
		}
	}

	e.logger.Info("final",
		"game", e.id,
		"home", e.label(core.Home),
		"home_score", result.Final.Home,
		"away", e.label(core.Away),
		"away_score", result.Final.Away,
		"plays", len(result.Plays),
		"overtime", result.Overtime,
	)

	if e.persister != nil {
		if err := e.persister.SaveGame(*result); err != nil {
			e.logger.Warn("failed to save game", "game", e.id, "error", err)
		}
	}
	return result
}
