package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	ballStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	endZoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	yardLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// fieldColumn maps a play's spot to a column in a strip of the given width.
// The home team always attacks to the right.
func fieldColumn(p storage.PlayRecord, home string, width int) int {
	x := p.YardLine
	if p.Offense != home {
		x = 100 - x
	}
	return x * (width - 1) / 100
}

// RenderField draws a one-line field with the ball at the spot of p.
// Width counts only the playing field; each end zone adds two cells.
func RenderField(p storage.PlayRecord, home string, width int) string {
	if width < 11 {
		width = 11
	}
	cells := []rune(strings.Repeat("-", width))
	for yd := 10; yd < 100; yd += 10 {
		cells[yd*(width-1)/100] = '|'
	}
	ball := fieldColumn(p, home, width)

	var b strings.Builder
	b.WriteString(endZoneStyle.Render("[]"))
	for i, r := range cells {
		if i == ball {
			b.WriteString(ballStyle.Render("o"))
			continue
		}
		b.WriteString(yardLineStyle.Render(string(r)))
	}
	b.WriteString(endZoneStyle.Render("[]"))
	return b.String()
}

// spotLabel formats a yard line the way a broadcast would: "OWN 25", "50", "OPP 30".
func spotLabel(yardLine int) string {
	switch {
	case yardLine == 50:
		return "50"
	case yardLine < 50:
		return fmt.Sprintf("OWN %d", yardLine)
	default:
		return fmt.Sprintf("OPP %d", 100-yardLine)
	}
}

func downLabel(p storage.PlayRecord) string {
	if p.Down == 0 {
		return "-"
	}
	suffix := [...]string{"", "st", "nd", "rd", "th"}[min(p.Down, 4)]
	if p.GoalToGo {
		return fmt.Sprintf("%d%s & G", p.Down, suffix)
	}
	return fmt.Sprintf("%d%s & %d", p.Down, suffix, p.ToGo)
}

func quarterLabel(q int) string {
	if q > 4 {
		if q == 5 {
			return "OT"
		}
		return fmt.Sprintf("OT%d", q-4)
	}
	return fmt.Sprintf("Q%d", q)
}
