// Package storage provides SQLite-based persistence for finished games,
// their drives and their play-by-play.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/engine"
	"github.com/vovakirdan/gridiron/internal/stats"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameSummary is one stored game.
type GameSummary struct {
	ID        string
	Home      string // abbreviation
	HomeName  string
	Away      string
	AwayName  string
	HomeScore int
	AwayScore int
	Winner    string // abbreviation, empty for a tie
	Overtime  bool
	Periods   int
	Plays     int
	CreatedAt time.Time
}

// PlayRecord is one stored play.
type PlayRecord struct {
	GameID      string
	Index       int
	Quarter     int
	Clock       time.Duration
	Offense     string
	Kind        string
	Down        int
	ToGo        int
	GoalToGo    bool
	YardLine    int
	HomeScore   int
	AwayScore   int
	Points      int
	Description string
}

// DriveRecord is one stored drive.
type DriveRecord struct {
	GameID       string
	Number       int
	Team         string
	StartLine    int
	StartQuarter int
	Plays        int
	Yards        int
	Points       int
	Elapsed      time.Duration
	Reason       string
}

// TeamRecord is a team's results across stored games.
type TeamRecord struct {
	Team          string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// Slate workers write concurrently; SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			home TEXT NOT NULL,
			home_name TEXT NOT NULL DEFAULT '',
			away TEXT NOT NULL,
			away_name TEXT NOT NULL DEFAULT '',
			home_score INTEGER NOT NULL DEFAULT 0,
			away_score INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			overtime INTEGER NOT NULL DEFAULT 0,
			periods INTEGER NOT NULL DEFAULT 0,
			plays INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_home ON games(home);
		CREATE INDEX IF NOT EXISTS idx_games_away ON games(away);

		CREATE TABLE IF NOT EXISTS drives (
			game_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			team TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			start_quarter INTEGER NOT NULL,
			plays INTEGER NOT NULL,
			yards INTEGER NOT NULL,
			points INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			reason TEXT NOT NULL,
			PRIMARY KEY (game_id, number)
		);

		CREATE TABLE IF NOT EXISTS plays (
			game_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			quarter INTEGER NOT NULL,
			clock_ms INTEGER NOT NULL,
			offense TEXT NOT NULL,
			kind TEXT NOT NULL,
			down INTEGER NOT NULL,
			to_go INTEGER NOT NULL,
			goal_to_go INTEGER NOT NULL,
			yard_line INTEGER NOT NULL,
			home_score INTEGER NOT NULL,
			away_score INTEGER NOT NULL,
			points INTEGER NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY (game_id, idx)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveDrive records a finished drive. The team is stored as its side
// ("home" or "away") since the game row may not exist yet.
func (s *Store) SaveDrive(gameID string, d core.Drive) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO drives
		 (game_id, number, team, start_line, start_quarter, plays, yards, points, elapsed_ms, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		d.Number,
		strings.ToLower(d.Team.String()),
		d.Start.YardLine,
		d.StartQuarter,
		len(d.Plays),
		d.Yards(),
		d.Points(),
		d.Elapsed().Milliseconds(),
		d.Reason.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save drive %d: %w", d.Number, err)
	}
	return nil
}

// SaveGame records a finished game and its play-by-play in one transaction.
func (s *Store) SaveGame(res engine.GameResult) (err error) {
	label := func(h core.TeamHandle) string {
		switch h {
		case core.Home:
			return res.Home.Abbreviation
		case core.Away:
			return res.Away.Abbreviation
		default:
			return ""
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.Exec(
		`INSERT INTO games
		 (id, home, home_name, away, away_name, home_score, away_score, winner, overtime, periods, plays)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.Home.Abbreviation,
		res.Home.Name,
		res.Away.Abbreviation,
		res.Away.Name,
		res.Final.Home,
		res.Final.Away,
		label(res.Winner),
		res.Overtime,
		res.Periods,
		len(res.Plays),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game %s: %w", res.ID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO plays
		 (game_id, idx, quarter, clock_ms, offense, kind, down, to_go, goal_to_go, yard_line, home_score, away_score, points, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare play insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range res.Plays {
		points := 0
		if p.Score != nil {
			points = p.Score.Points
		}
		_, err = stmt.Exec(
			res.ID,
			p.Index,
			p.Quarter,
			p.Clock.Milliseconds(),
			label(p.Offense),
			p.Kind.String(),
			p.PriorDowns.Down,
			p.PriorDowns.ToGo,
			p.PriorDowns.GoalToGo,
			p.PriorField.YardLine,
			p.ScoreAfter.Home,
			p.ScoreAfter.Away,
			points,
			stats.Describe(p, label),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save play %d: %w", p.Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit game %s: %w", res.ID, err)
	}
	return nil
}

const gameColumns = `id, home, home_name, away, away_name, home_score, away_score, winner, overtime, periods, plays, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameSummary, error) {
	var g GameSummary
	var createdAt any
	err := row.Scan(
		&g.ID,
		&g.Home,
		&g.HomeName,
		&g.Away,
		&g.AwayName,
		&g.HomeScore,
		&g.AwayScore,
		&g.Winner,
		&g.Overtime,
		&g.Periods,
		&g.Plays,
		&createdAt,
	)
	g.CreatedAt = parseTime(createdAt)
	return g, err
}

// Game retrieves a game by id, or nil if it does not exist.
func (s *Store) Game(id string) (*GameSummary, error) {
	g, err := scanGame(s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &g, nil
}

// RecentGames retrieves the most recent games, optionally for one team.
func (s *Store) RecentGames(team string, limit int) ([]GameSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + gameColumns + ` FROM games`
	args := []any{}
	if team != "" {
		query += ` WHERE home = ? COLLATE NOCASE OR away = ? COLLATE NOCASE`
		args = append(args, team, team)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameSummary
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// Plays retrieves the play-by-play of a game in order.
func (s *Store) Plays(gameID string) ([]PlayRecord, error) {
	rows, err := s.db.Query(
		`SELECT game_id, idx, quarter, clock_ms, offense, kind, down, to_go, goal_to_go,
		        yard_line, home_score, away_score, points, description
		 FROM plays
		 WHERE game_id = ?
		 ORDER BY idx`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var plays []PlayRecord
	for rows.Next() {
		var p PlayRecord
		var clockMS int64
		if err := rows.Scan(
			&p.GameID,
			&p.Index,
			&p.Quarter,
			&clockMS,
			&p.Offense,
			&p.Kind,
			&p.Down,
			&p.ToGo,
			&p.GoalToGo,
			&p.YardLine,
			&p.HomeScore,
			&p.AwayScore,
			&p.Points,
			&p.Description,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.Clock = time.Duration(clockMS) * time.Millisecond
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return plays, nil
}

// Drives retrieves the drives of a game in order.
func (s *Store) Drives(gameID string) ([]DriveRecord, error) {
	rows, err := s.db.Query(
		`SELECT game_id, number, team, start_line, start_quarter, plays, yards, points, elapsed_ms, reason
		 FROM drives
		 WHERE game_id = ?
		 ORDER BY number`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query drives: %w", err)
	}
	defer rows.Close()

	var drives []DriveRecord
	for rows.Next() {
		var d DriveRecord
		var elapsedMS int64
		if err := rows.Scan(
			&d.GameID,
			&d.Number,
			&d.Team,
			&d.StartLine,
			&d.StartQuarter,
			&d.Plays,
			&d.Yards,
			&d.Points,
			&elapsedMS,
			&d.Reason,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		drives = append(drives, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return drives, nil
}

// Standings aggregates results for every team that has played.
func (s *Store) Standings() ([]TeamRecord, error) {
	rows, err := s.db.Query(
		`SELECT team,
		        SUM(CASE WHEN pf > pa THEN 1 ELSE 0 END),
		        SUM(CASE WHEN pf < pa THEN 1 ELSE 0 END),
		        SUM(CASE WHEN pf = pa THEN 1 ELSE 0 END),
		        SUM(pf), SUM(pa)
		 FROM (
		     SELECT home AS team, home_score AS pf, away_score AS pa FROM games
		     UNION ALL
		     SELECT away AS team, away_score AS pf, home_score AS pa FROM games
		 )
		 GROUP BY team
		 ORDER BY 2 DESC, SUM(pf) - SUM(pa) DESC, team`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get standings: %w", err)
	}
	defer rows.Close()

	var records []TeamRecord
	for rows.Next() {
		var r TeamRecord
		if err := rows.Scan(&r.Team, &r.Wins, &r.Losses, &r.Ties, &r.PointsFor, &r.PointsAgainst); err != nil {
			return nil, fmt.Errorf("storage: cannot scan standings row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store implements the engine's persister.
var _ engine.Persister = (*Store)(nil)
