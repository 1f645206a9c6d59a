// Package drive tracks drives and decides possession changes.
//
// A drive moves through Starting -> Active -> Ended. It starts when a team
// gains possession from scrimmage or a kick, becomes active on its first
// snap and ends on a score, turnover, punt, failed fourth down, missed field
// goal or the end of a half.
package drive

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/downs"
	"github.com/vovakirdan/gridiron/internal/field"
)

// Manager holds the current drive and the completed drives of one game.
// It is the only component that keeps state across plays.
type Manager struct {
	current *core.Drive
	drives  []core.Drive
}

// New creates an empty drive manager.
func New() *Manager {
	return &Manager{}
}

// Possession decides, before commit, whether the play hands the ball to the
// other team and how the play affects the drive. It reads but never writes.
func (m *Manager) Possession(state core.GameState, play core.PlayOutcome, res field.Result, downRes downs.Result, score *core.ScoreEvent) (*core.PossessionChange, core.DriveStatus) {
	offense := state.Offense()

	switch state.Mode {
	case core.ModeKickoff, core.ModeFreeKick:
		status := core.StatusFreeKick
		if score != nil {
			status = core.StatusScored
		}
		return handOver(offense.Opponent(), res.Spot), status

	case core.ModeTry:
		return nil, core.StatusTry
	}

	switch {
	case res.ChangeOfPossession:
		status := core.StatusTurnover
		if play.Kind() == core.KindPunt {
			status = core.StatusPunted
		}
		return handOver(offense.Opponent(), res.Spot), status

	case score != nil:
		// Offensive touchdowns and field goals keep the ball for the try or
		// the kickoff; a safety sends the offense to its free kick.
		return nil, core.StatusScored

	case downRes.TurnoverOnDowns:
		return handOver(offense.Opponent(), res.Spot), core.StatusTurnover
	}

	return nil, core.StatusContinuing
}

// handOver re-orients the dead-ball spot for the new possessor.
func handOver(to core.TeamHandle, spot core.FieldPosition) *core.PossessionChange {
	flipped := spot.Flip()
	return &core.PossessionChange{
		To:    to,
		Field: flipped,
		Downs: downs.Fresh(flipped.YardLine),
	}
}

// Start opens a drive for team at pos.
func (m *Manager) Start(team core.TeamHandle, pos core.FieldPosition, quarter int, clock time.Duration) (*core.Drive, error) {
	if !team.Valid() {
		return nil, fmt.Errorf("drive: start for %s: %w", team, core.ErrUnresolvedTeam)
	}
	if m.current != nil {
		return nil, fmt.Errorf("drive: %w: drive %d for %s is still open", core.ErrInvalidTransition, m.current.Number, m.current.Team)
	}

	m.current = &core.Drive{
		Number:       len(m.drives) + 1,
		Team:         team,
		Start:        pos,
		StartQuarter: quarter,
		StartClock:   clock,
		State:        core.DriveStarting,
		Final:        pos,
	}
	return m.current, nil
}

// Record adds a committed play to the current drive. It returns the drive if
// this play ended it. Kicks and tries are not part of a drive; a kick that
// establishes possession starts the next one.
func (m *Manager) Record(res core.GameStateResult) (*core.Drive, error) {
	switch res.Kind {
	case core.KindKickoff:
		if res.PossessionChanged && !res.Scored() {
			_, err := m.Start(res.NewPossession, res.NewField, res.Quarter, res.Clock)
			return nil, err
		}
		return nil, nil
	case core.KindTry:
		return nil, nil
	}

	d := m.current
	if d == nil || d.State == core.DriveEnded {
		return nil, fmt.Errorf("drive: %w: play %d with no open drive", core.ErrInvalidTransition, res.Index)
	}
	if d.Team != res.Offense {
		return nil, fmt.Errorf("drive: %w: play %d by %s recorded into a drive for %s", core.ErrInvalidTransition, res.Index, res.Offense, d.Team)
	}

	d.Plays = append(d.Plays, res)
	d.State = core.DriveActive
	d.Final = res.NewField

	reason := endReason(res)
	if reason == core.EndNone {
		return nil, nil
	}

	ended := m.end(reason)

	// The other team's drive starts at the dead-ball spot unless the change
	// of possession came with a score, which is followed by a try and a kick.
	if res.PossessionChanged && !res.Scored() {
		if _, err := m.Start(res.NewPossession, res.NewField, res.Quarter, res.Clock); err != nil {
			return ended, err
		}
	}
	return ended, nil
}

// Close ends the open drive at the end of a half or the game.
// It returns nil if no drive is open.
func (m *Manager) Close(reason core.EndReason) *core.Drive {
	if m.current == nil {
		return nil
	}
	return m.end(reason)
}

// Current returns the open drive, or nil.
func (m *Manager) Current() *core.Drive {
	return m.current
}

// Drives returns the completed drives in order.
func (m *Manager) Drives() []core.Drive {
	out := make([]core.Drive, len(m.drives))
	copy(out, m.drives)
	return out
}

func (m *Manager) end(reason core.EndReason) *core.Drive {
	d := m.current
	d.State = core.DriveEnded
	d.Reason = reason
	m.drives = append(m.drives, *d)
	m.current = nil
	return &m.drives[len(m.drives)-1]
}

func endReason(res core.GameStateResult) core.EndReason {
	switch res.Status {
	case core.StatusScored:
		return core.EndScore
	case core.StatusPunted:
		return core.EndPunt
	case core.StatusTurnover:
		switch {
		case res.TurnoverOnDowns:
			return core.EndTurnoverOnDowns
		case res.Kind == core.KindFieldGoal:
			return core.EndMissedFieldGoal
		default:
			return core.EndTurnover
		}
	default:
		return core.EndNone
	}
}
