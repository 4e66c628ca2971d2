// Package storage provides SQLite-based run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished game as stored in the history table.
type Run struct {
	ID             int64
	RunID          string
	LeaderboardKey string
	Difficulty     string
	MapMode        string
	Obstacles      bool
	Score          int
	Stage          int
	FoodEaten      int
	Duration       time.Duration
	DeathReason    string
	CreatedAt      time.Time
}

// KeyStats contains aggregated statistics for one leaderboard key.
type KeyStats struct {
	LeaderboardKey string
	RunsCount      int
	HighScore      int
	AvgScore       float64
	TotalScore     int64
	BestStage      int
	TotalFood      int64
	TotalDuration  time.Duration
	LastPlayed     time.Time
}

const timeLayout = "2006-01-02 15:04:05"

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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			leaderboard_key TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			map_mode TEXT NOT NULL,
			obstacles INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			stage INTEGER NOT NULL DEFAULT 1,
			food_eaten INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			death_reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_key ON runs(leaderboard_key);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(leaderboard_key, score DESC);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		return 0, errors.New("storage: run id is required")
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, leaderboard_key, difficulty, map_mode, obstacles, score, stage, food_eaten, duration_ms, death_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.LeaderboardKey,
		r.Difficulty,
		r.MapMode,
		r.Obstacles,
		r.Score,
		r.Stage,
		r.FoodEaten,
		r.Duration.Milliseconds(),
		r.DeathReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, leaderboard_key, difficulty, map_mode, obstacles,
		        score, stage, food_eaten, duration_ms, death_reason, created_at`

// TopRuns retrieves the best N runs for a leaderboard key.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(key string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE leaderboard_key = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		key, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all keys.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunByID retrieves a run by its run identifier. Returns nil when absent.
func (s *Store) RunByID(runID string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.LeaderboardKey,
			&r.Difficulty,
			&r.MapMode,
			&r.Obstacles,
			&r.Score,
			&r.Stage,
			&r.FoodEaten,
			&durationMs,
			&r.DeathReason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the key.
// Returns 0 if no runs exist.
func (s *Store) HighScore(key string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE leaderboard_key = ?",
		key,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the key.
func (s *Store) ClearRuns(key string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE leaderboard_key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Keys returns every leaderboard key with at least one run, sorted.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT leaderboard_key FROM runs ORDER BY leaderboard_key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return keys, nil
}

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(MAX(stage), 0), COALESCE(SUM(food_eaten), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)`

// KeyStats retrieves aggregated statistics for one leaderboard key.
func (s *Store) KeyStats(key string) (*KeyStats, error) {
	stats := &KeyStats{LeaderboardKey: key}
	var durationMs int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM runs WHERE leaderboard_key = ?`,
		key,
	).Scan(
		&stats.RunsCount,
		&stats.HighScore,
		&stats.AvgScore,
		&stats.TotalScore,
		&stats.BestStage,
		&stats.TotalFood,
		&durationMs,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get key stats: %w", err)
	}

	stats.TotalDuration = time.Duration(durationMs) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllKeyStats retrieves statistics for every key that has been played.
func (s *Store) AllKeyStats() (map[string]*KeyStats, error) {
	rows, err := s.db.Query(
		`SELECT leaderboard_key, ` + statsColumns + `
		 FROM runs
		 GROUP BY leaderboard_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all key stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*KeyStats)
	for rows.Next() {
		var ks KeyStats
		var durationMs int64
		var lastPlayed any
		if err := rows.Scan(
			&ks.LeaderboardKey,
			&ks.RunsCount,
			&ks.HighScore,
			&ks.AvgScore,
			&ks.TotalScore,
			&ks.BestStage,
			&ks.TotalFood,
			&durationMs,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ks.TotalDuration = time.Duration(durationMs) * time.Millisecond
		ks.LastPlayed = parseTime(lastPlayed)
		stats[ks.LeaderboardKey] = &ks
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
