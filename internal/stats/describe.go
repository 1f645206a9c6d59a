package stats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Describe renders a committed play as one line of play-by-play.
// label maps a handle to the team's display name.
func Describe(res core.GameStateResult, label func(core.TeamHandle) string) string {
	offense := label(res.Offense)

	var b strings.Builder
	switch res.Kind {
	case core.KindNoPlay:
		b.WriteString("no play")
	case core.KindRush:
		fmt.Fprintf(&b, "%s rush, %s", offense, yards(res))
	case core.KindPass:
		fmt.Fprintf(&b, "%s pass, %s", offense, yards(res))
	case core.KindPunt:
		fmt.Fprintf(&b, "%s punt", offense)
	case core.KindFieldGoal:
		fmt.Fprintf(&b, "%s %d-yard field goal", offense, res.PriorField.ToGoal()+17)
		if res.Score == nil {
			b.WriteString(" is no good")
		} else {
			b.WriteString(" is good")
		}
	case core.KindKickoff:
		fmt.Fprintf(&b, "%s kicks off", offense)
	case core.KindTry:
		fmt.Fprintf(&b, "%s try", offense)
		if res.Score == nil {
			b.WriteString(" fails")
		} else {
			fmt.Fprintf(&b, " good (%s)", res.Score.Kind)
		}
	}

	if res.PossessionChanged && res.Score == nil {
		fmt.Fprintf(&b, "; %s ball at %s", label(res.NewPossession), res.NewField)
	}

	switch res.Event {
	case core.BoundaryTouchdown:
		fmt.Fprintf(&b, "; TOUCHDOWN %s", label(res.Score.Team))
	case core.BoundarySafety:
		b.WriteString("; SAFETY")
	case core.BoundaryTouchback:
		b.WriteString("; touchback")
	}

	if res.TurnoverOnDowns {
		b.WriteString("; turnover on downs")
	} else if res.FirstDown {
		b.WriteString("; first down")
	}

	for _, p := range res.Penalties {
		fmt.Fprintf(&b, "; %s on %s", strings.ReplaceAll(string(p.Type), "_", " "), label(p.Against))
		if p.Declined {
			b.WriteString(", declined")
		}
	}
	return b.String()
}

func yards(res core.GameStateResult) string {
	if res.PossessionChanged {
		return "turnover"
	}
	n := res.NewField.YardLine - res.PriorField.YardLine
	switch {
	case n == 0:
		return "no gain"
	case n == 1 || n == -1:
		return fmt.Sprintf("%d yard", n)
	default:
		return fmt.Sprintf("%d yards", n)
	}
}
