// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for game records.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished (or abandoned) game.
type GameRecord struct {
	ID        string // UUID; assigned by SaveGame when empty
	Variant   string
	Score     int
	MaxTile   int // highest displayed number reached
	Moves     int
	Lost      bool // false when the player quit before losing
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	Variant    string
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestTile   int
	TotalMoves int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			lost INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_variant ON games(variant);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(variant, score DESC);
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

// SaveGame records a game and returns its ID.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return "", fmt.Errorf("storage: invalid record id %q: %w", rec.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO games (id, variant, score, max_tile, moves, lost)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Variant, rec.Score, rec.MaxTile, rec.Moves, rec.Lost,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return rec.ID, nil
}

// TopScores retrieves the top N games for the given variant, best first.
func (s *Store) TopScores(variant string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, score, max_tile, moves, lost, created_at
		 FROM games
		 WHERE variant = ?
		 ORDER BY score DESC, max_tile DESC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Score, &r.MaxTile, &r.Moves, &r.Lost, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns the highest score for the given variant.
// Returns 0 if no games exist.
func (s *Store) HighScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE variant = ?",
		variant,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all games of the given variant.
func (s *Store) ClearScores(variant string) error {
	if _, err := s.db.Exec("DELETE FROM games WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats retrieves aggregated statistics for a variant.
func (s *Store) GameStats(variant string) (*GameStats, error) {
	stats := &GameStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM games WHERE variant = ?`,
		variant,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.BestTile, &stats.TotalMoves, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every variant that has been played.
func (s *Store) AllStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(score), AVG(score), MAX(max_tile), SUM(moves), MAX(created_at)
		 FROM games
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.Variant, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.BestTile, &st.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Variant] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
