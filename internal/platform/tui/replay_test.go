package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridiron/internal/storage"
)

type fakeSource struct {
	games  []storage.GameSummary
	older  map[string]storage.GameSummary
	plays  map[string][]storage.PlayRecord
	drives map[string][]storage.DriveRecord
	err    error
}

func (f *fakeSource) Game(id string) (*storage.GameSummary, error) {
	if g, ok := f.older[id]; ok {
		return &g, nil
	}
	for _, g := range f.games {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) RecentGames(string, int) ([]storage.GameSummary, error) {
	return f.games, f.err
}

func (f *fakeSource) Plays(id string) ([]storage.PlayRecord, error) {
	return f.plays[id], nil
}

func (f *fakeSource) Drives(id string) ([]storage.DriveRecord, error) {
	return f.drives[id], nil
}

func newFakeSource() *fakeSource {
	plays := func(id string, n int) []storage.PlayRecord {
		out := make([]storage.PlayRecord, n)
		for i := range out {
			out[i] = storage.PlayRecord{
				GameID:      id,
				Index:       i + 1,
				Quarter:     1,
				Clock:       15*time.Minute - time.Duration(i)*30*time.Second,
				Offense:     "BOS",
				Kind:        "rush",
				Down:        1,
				ToGo:        10,
				YardLine:    25 + i,
				Description: "BOS rush for 1",
			}
		}
		return out
	}
	return &fakeSource{
		games: []storage.GameSummary{
			{ID: "g1", Home: "BOS", Away: "CHI", HomeScore: 24, AwayScore: 17},
			{ID: "g2", Home: "DEN", Away: "BOS", HomeScore: 10, AwayScore: 13, Overtime: true},
		},
		older: map[string]storage.GameSummary{
			"g0": {ID: "g0", Home: "CHI", Away: "DEN", HomeScore: 3, AwayScore: 0},
		},
		plays: map[string][]storage.PlayRecord{
			"g0": plays("g0", 2),
			"g1": plays("g1", 4),
			"g2": plays("g2", 3),
		},
		drives: map[string][]storage.DriveRecord{
			"g1": {
				{GameID: "g1", Number: 1, Team: "home", Reason: "touchdown"},
				{GameID: "g1", Number: 2, Team: "away", Reason: "punt"},
				{GameID: "g1", Number: 3, Team: "home", Reason: "touchdown"},
			},
		},
	}
}

func update(t *testing.T, m ReplayModel, msg tea.Msg) (ReplayModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(ReplayModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return rm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewReplayModelSelection(t *testing.T) {
	src := newFakeSource()

	tests := []struct {
		name     string
		gameID   string
		selected string
		games    int
		wantErr  error
	}{
		{"most recent by default", "", "g1", 2, nil},
		{"listed game", "g2", "g2", 2, nil},
		{"older game is prepended", "g0", "g0", 3, nil},
		{"unknown game", "nope", "", 0, ErrGameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewReplayModel(src, tt.gameID, 120, 40, 4)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewReplayModel: %v", err)
			}
			if got := m.Selected(); got != tt.selected {
				t.Errorf("Selected() = %q, want %q", got, tt.selected)
			}
			if len(m.games) != tt.games {
				t.Errorf("listed %d games, want %d", len(m.games), tt.games)
			}
			if m.revealed != len(src.plays[tt.selected]) {
				t.Errorf("revealed %d plays, want all %d", m.revealed, len(src.plays[tt.selected]))
			}
		})
	}
}

func TestNewReplayModelSourceError(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("disk on fire")
	if _, err := NewReplayModel(src, "", 80, 24, 1); err == nil {
		t.Fatal("expected error from source")
	}
}

func TestReplayPlayback(t *testing.T) {
	m, err := NewReplayModel(newFakeSource(), "g1", 120, 40, 10)
	if err != nil {
		t.Fatal(err)
	}

	m, cmd := update(t, m, runes("p"))
	if !m.Playing() {
		t.Fatal("playback did not start")
	}
	if cmd == nil {
		t.Fatal("playback should schedule a tick")
	}
	if m.revealed != 1 {
		t.Fatalf("revealed = %d after start, want 1", m.revealed)
	}

	for i := 2; i <= 4; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
		if m.revealed != i {
			t.Fatalf("revealed = %d after tick, want %d", m.revealed, i)
		}
		if got := m.table.Cursor(); got != i-1 {
			t.Errorf("cursor = %d, want last revealed play %d", got, i-1)
		}
	}
	if m.Playing() {
		t.Error("playback should stop after the final play")
	}

	m, cmd = update(t, m, TickMsg(time.Now()))
	if cmd != nil {
		t.Error("stopped playback should not schedule ticks")
	}
	if m.revealed != 4 {
		t.Errorf("revealed = %d, want 4", m.revealed)
	}
}

func TestReplayPause(t *testing.T) {
	m, _ := NewReplayModel(newFakeSource(), "g1", 120, 40, 10)

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, runes("p"))
	if m.Playing() {
		t.Fatal("second press should pause")
	}
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd != nil || m.revealed != 1 {
		t.Errorf("paused replay advanced to %d", m.revealed)
	}
}

func TestReplayGameNavigation(t *testing.T) {
	m, _ := NewReplayModel(newFakeSource(), "", 120, 40, 1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != "g2" || len(m.plays) != 3 {
		t.Fatalf("after tab: selected %q with %d plays", m.Selected(), len(m.plays))
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != "g1" {
		t.Fatalf("tab should wrap, selected %q", m.Selected())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Selected() != "g2" {
		t.Fatalf("shift+tab should wrap, selected %q", m.Selected())
	}
	if m.drives != nil {
		t.Errorf("g2 has no drives, got %d", len(m.drives))
	}
}

func TestReplayQuit(t *testing.T) {
	m, _ := NewReplayModel(newFakeSource(), "", 80, 24, 1)
	m, cmd := update(t, m, runes("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestReplayView(t *testing.T) {
	t.Run("wide", func(t *testing.T) {
		m, _ := NewReplayModel(newFakeSource(), "g1", 140, 40, 1)
		view := m.View()
		for _, want := range []string{"CHI 17 @ BOS 24", "Games", "BOS rush for 1", "Drives: 3", "touchdown 2"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("narrow overtime", func(t *testing.T) {
		m, _ := NewReplayModel(newFakeSource(), "g2", 70, 30, 1)
		view := m.View()
		if strings.Contains(view, "Games\n") {
			t.Error("narrow layout should not render the sidebar")
		}
		if !strings.Contains(view, "(OT)") {
			t.Error("overtime game should be marked")
		}
		if !strings.Contains(view, "2/2") {
			t.Error("narrow layout should show game position")
		}
	})

	t.Run("resize", func(t *testing.T) {
		m, _ := NewReplayModel(newFakeSource(), "g1", 70, 30, 1)
		m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
		if !m.showSidebar {
			t.Error("wide window should show the sidebar")
		}
	})

	t.Run("empty store", func(t *testing.T) {
		m, err := NewReplayModel(&fakeSource{}, "", 100, 30, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(m.View(), "No games recorded yet") {
			t.Error("empty store should say so")
		}
		m, _ = update(t, m, runes("p"))
		if m.Playing() {
			t.Error("nothing to play")
		}
	})
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"own territory", spotLabel(25), "OWN 25"},
		{"midfield", spotLabel(50), "50"},
		{"opponent territory", spotLabel(70), "OPP 30"},
		{"first down", downLabel(storage.PlayRecord{Down: 1, ToGo: 10}), "1st & 10"},
		{"third and goal", downLabel(storage.PlayRecord{Down: 3, ToGo: 4, GoalToGo: true}), "3rd & G"},
		{"no down", downLabel(storage.PlayRecord{}), "-"},
		{"quarter", quarterLabel(2), "Q2"},
		{"overtime", quarterLabel(5), "OT"},
		{"second overtime", quarterLabel(6), "OT2"},
		{"clock", formatClock(2*time.Minute + 5*time.Second), "2:05"},
		{"zero clock", formatClock(0), "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFieldColumn(t *testing.T) {
	tests := []struct {
		name    string
		offense string
		line    int
		want    int
	}{
		{"home at own 25 attacks right", "BOS", 25, 25},
		{"away at own 25 attacks left", "CHI", 25, 75},
		{"midfield", "CHI", 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := storage.PlayRecord{Offense: tt.offense, YardLine: tt.line}
			if got := fieldColumn(p, "BOS", 101); got != tt.want {
				t.Errorf("fieldColumn = %d, want %d", got, tt.want)
			}
		})
	}
}
