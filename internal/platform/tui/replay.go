package tui

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridiron/internal/storage"
)

// Replay layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the game list sidebar
	sidebarWidth       = 24  // Width of game list sidebar
	maxGames           = 50  // Max games to list
)

// ErrGameNotFound is returned when the requested game is not stored.
var ErrGameNotFound = errors.New("game not found")

// ReplaySource is the read side of the game store.
type ReplaySource interface {
	Game(id string) (*storage.GameSummary, error)
	RecentGames(team string, limit int) ([]storage.GameSummary, error)
	Plays(gameID string) ([]storage.PlayRecord, error)
	Drives(gameID string) ([]storage.DriveRecord, error)
}

// ReplayKeyMap defines the key bindings for the replay viewer.
type ReplayKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Play     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.NextGame, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Play, k.NextGame, k.PrevGame},
		{k.Help, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev play"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next play"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "kickoff"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "final play"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel is the Bubble Tea model for stepping through a stored game.
type ReplayModel struct {
	source      ReplaySource
	games       []storage.GameSummary
	gameCursor  int
	plays       []storage.PlayRecord
	drives      []storage.DriveRecord
	revealed    int // plays shown so far during playback
	playing     bool
	speed       int // plays per second
	err         error
	table       table.Model
	help        help.Model
	keys        ReplayKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewReplayModel creates a replay viewer over the most recent games. When
// gameID is set that game is selected first, even if it is older than the
// listed ones.
func NewReplayModel(src ReplaySource, gameID string, width, height, speed int) (ReplayModel, error) {
	games, err := src.RecentGames("", maxGames)
	if err != nil {
		return ReplayModel{}, err
	}

	cursor := 0
	if gameID != "" {
		cursor = slices.IndexFunc(games, func(g storage.GameSummary) bool { return g.ID == gameID })
		if cursor < 0 {
			g, err := src.Game(gameID)
			if err != nil {
				return ReplayModel{}, err
			}
			if g == nil {
				return ReplayModel{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
			}
			games = append([]storage.GameSummary{*g}, games...)
			cursor = 0
		}
	}

	h := help.New()
	h.ShowAll = false

	m := ReplayModel{
		source:      src,
		games:       games,
		gameCursor:  cursor,
		speed:       max(speed, 1),
		keys:        DefaultReplayKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	if len(m.games) > 0 {
		m.loadGame()
	}
	return m, nil
}

// createTable creates a new table with columns sized to the window.
func (m *ReplayModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Qtr", Width: 4},
		{Title: "Clock", Width: 6},
		{Title: "Off", Width: 4},
		{Title: "Down", Width: 9},
		{Title: "Spot", Width: 7},
		{Title: "Score", Width: 8},
		{Title: "Play", Width: 30},
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	fixed := 0
	for _, c := range columns[:len(columns)-1] {
		fixed += c.Width + 2
	}
	if rest := tableWidth - fixed; rest > columns[len(columns)-1].Width {
		columns[len(columns)-1].Width = rest
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 5)), // header, field strip, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadGame loads plays and drives for the selected game.
func (m *ReplayModel) loadGame() {
	m.playing = false
	m.err = nil
	id := m.games[m.gameCursor].ID

	plays, err := m.source.Plays(id)
	if err != nil {
		m.err = err
		plays = nil
	}
	drives, err := m.source.Drives(id)
	if err != nil && m.err == nil {
		m.err = err
	}
	m.plays = plays
	m.drives = drives
	m.revealed = len(plays)
	m.updateTableRows()
	m.table.GotoTop()
}

func (m *ReplayModel) updateTableRows() {
	rows := make([]table.Row, m.revealed)
	for i, p := range m.plays[:m.revealed] {
		rows[i] = table.Row{
			fmt.Sprintf("%d", p.Index),
			quarterLabel(p.Quarter),
			formatClock(p.Clock),
			p.Offense,
			downLabel(p),
			spotLabel(p.YardLine),
			fmt.Sprintf("%d-%d", p.AwayScore, p.HomeScore),
			p.Description,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the replay model.
func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay viewer.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadGame()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadGame()
			}
			return m, nil

		case key.Matches(msg, m.keys.Play):
			if len(m.plays) == 0 {
				return m, nil
			}
			if m.playing {
				m.playing = false
				return m, nil
			}
			if m.revealed >= len(m.plays) {
				m.revealed = 0
			}
			m.playing = true
			return m.step(), tickCmd(m.speed)

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case TickMsg:
		if !m.playing {
			return m, nil
		}
		m = m.step()
		if !m.playing {
			return m, nil
		}
		return m, tickCmd(m.speed)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step reveals the next play and follows it with the cursor.
func (m ReplayModel) step() ReplayModel {
	if m.revealed < len(m.plays) {
		m.revealed++
		m.updateTableRows()
		m.table.GotoBottom()
	}
	if m.revealed >= len(m.plays) {
		m.playing = false
	}
	return m
}

// current returns the play under the cursor.
func (m ReplayModel) current() (storage.PlayRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= m.revealed {
		return storage.PlayRecord{}, false
	}
	return m.plays[i], true
}

// View renders the replay viewer.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "REPLAY"
	if len(m.games) > 0 {
		g := m.games[m.gameCursor]
		title = fmt.Sprintf("REPLAY - %s %d @ %s %d", g.Away, g.AwayScore, g.Home, g.HomeScore)
		if g.Overtime {
			title += " (OT)"
		}
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the play table with a game list sidebar.
func (m ReplayModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s %d @ %s %d", g.Away, g.AwayScore, g.Home, g.HomeScore)
		if maxLen := sidebarWidth - 6; len(line) > maxLen {
			line = line[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + line))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ",
		tableStyle.Render(m.renderGameContent()))
}

// renderNarrowLayout renders the play table with the game name above it.
func (m ReplayModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		g := m.games[m.gameCursor]
		b.WriteString(centerText(fmt.Sprintf("< %s @ %s  %d/%d >", g.Away, g.Home, m.gameCursor+1, len(m.games)), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderGameContent()))
	return b.String()
}

// renderGameContent renders the field strip, drive summary and play table.
func (m ReplayModel) renderGameContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Cannot load game:\n" + m.err.Error())
	case len(m.games) == 0:
		return emptyStyle.Render("No games recorded yet.\nRun `gridiron simulate` to play one!")
	case len(m.plays) == 0:
		return emptyStyle.Render("This game has no plays.")
	}

	var b strings.Builder
	g := m.games[m.gameCursor]
	if p, ok := m.current(); ok {
		width := max(m.tableWidth()-4, 20)
		b.WriteString(fmt.Sprintf("%s %s  %s ball, %s at %s\n", quarterLabel(p.Quarter), formatClock(p.Clock), p.Offense, downLabel(p), spotLabel(p.YardLine)))
		b.WriteString(RenderField(p, g.Home, width))
		b.WriteString("\n")
	}
	b.WriteString(summarizeDrives(m.drives))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	return b.String()
}

func (m ReplayModel) tableWidth() int {
	w := 0
	for _, c := range m.table.Columns() {
		w += c.Width + 2
	}
	return w
}

// summarizeDrives counts drives by how they ended.
func summarizeDrives(drives []storage.DriveRecord) string {
	if len(drives) == 0 {
		return "Drives: none"
	}
	counts := make(map[string]int)
	for _, d := range drives {
		counts[d.Reason]++
	}
	parts := make([]string, 0, len(counts))
	for _, reason := range slices.Sorted(maps.Keys(counts)) {
		parts = append(parts, fmt.Sprintf("%s %d", reason, counts[reason]))
	}
	return fmt.Sprintf("Drives: %d (%s)", len(drives), strings.Join(parts, ", "))
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Playing reports whether playback is running.
func (m ReplayModel) Playing() bool {
	return m.playing
}

// Selected returns the ID of the game being shown, or "" when there is none.
func (m ReplayModel) Selected() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// IsQuitting returns true if user wants to quit.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// RunReplay runs the replay viewer and blocks until the user quits.
func RunReplay(src ReplaySource, gameID string, width, height, speed int) error {
	m, err := NewReplayModel(src, gameID, width, height, speed)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}
