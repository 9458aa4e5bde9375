package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// PlayerRecord is one seat of a finished match.
type PlayerRecord struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Booster   string `json:"booster"`
	Points    int    `json:"points"`
}

// Record is a finished match.
type Record struct {
	MatchID    string         `json:"match_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Rounds     int            `json:"rounds"`
	Winner     int            `json:"winner"`
	Players    []PlayerRecord `json:"players"`
}

// Store persists finished matches in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer; the hubs record from their own goroutines.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}
	return &Store{db: db}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			match_id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			rounds INTEGER NOT NULL,
			winner INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS match_players (
			match_id TEXT NOT NULL,
			seat INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			character TEXT NOT NULL,
			booster TEXT NOT NULL,
			points INTEGER NOT NULL,
			PRIMARY KEY (match_id, seat),
			FOREIGN KEY (match_id) REFERENCES matches(match_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches(finished_at);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record inserts a finished match and its players atomically.
func (s *Store) Record(ctx context.Context, r Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches (match_id, started_at, finished_at, rounds, winner) VALUES (?, ?, ?, ?, ?)`,
		r.MatchID, r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Rounds, r.Winner,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	for seat, p := range r.Players {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO match_players (match_id, seat, player_id, name, character, booster, points)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.MatchID, seat, p.PlayerID, p.Name, p.Character, p.Booster, p.Points,
		)
		if err != nil {
			return fmt.Errorf("failed to insert player %d: %w", seat, err)
		}
	}
	return tx.Commit()
}

// Recent returns up to limit matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT match_id, started_at, finished_at, rounds, winner FROM matches
		ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.MatchID, &r.StartedAt, &r.FinishedAt, &r.Rounds, &r.Winner); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		players, err := s.players(ctx, records[i].MatchID)
		if err != nil {
			return nil, err
		}
		records[i].Players = players
	}
	return records, nil
}

func (s *Store) players(ctx context.Context, matchID string) ([]PlayerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, name, character, booster, points FROM match_players
		WHERE match_id = ? ORDER BY seat ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Character, &p.Booster, &p.Points); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
