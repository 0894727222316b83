// Package storage provides SQLite-based persistence for level clear records.
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

// Store manages the SQLite database connection for clear records.
type Store struct {
	db *sql.DB
}

// ClearRecord is a single completed level.
type ClearRecord struct {
	ID         int64
	LevelID    string
	LevelName  string
	Elapsed    float64 // Seconds of active play
	Ticks      int64
	Difficulty string
	CreatedAt  time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID     string
	LevelName   string
	Clears      int
	BestTime    float64
	AvgTime     float64
	LastCleared time.Time
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
		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			level_name TEXT NOT NULL DEFAULT '',
			elapsed_secs REAL NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_level_id ON clears(level_id);
		CREATE INDEX IF NOT EXISTS idx_clears_best ON clears(level_id, elapsed_secs ASC);
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

// SaveClear records a completed level.
// Returns the ID of the inserted record.
func (s *Store) SaveClear(rec ClearRecord) (int64, error) {
	if rec.LevelID == "" {
		return 0, errors.New("storage: clear record has no level id")
	}
	if rec.Difficulty == "" {
		rec.Difficulty = "normal"
	}

	result, err := s.db.Exec(
		`INSERT INTO clears (level_id, level_name, elapsed_secs, ticks, difficulty)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.LevelID, rec.LevelName, rec.Elapsed, rec.Ticks, rec.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// scanClears reads clear records from query rows.
func scanClears(rows *sql.Rows) ([]ClearRecord, error) {
	var records []ClearRecord
	for rows.Next() {
		var r ClearRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.LevelName, &r.Elapsed, &r.Ticks, &r.Difficulty, &createdAt); err != nil {
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

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestClears retrieves the fastest N clears of the given level.
func (s *Store) BestClears(levelID string, limit int) ([]ClearRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, level_name, elapsed_secs, ticks, difficulty, created_at
		 FROM clears
		 WHERE level_id = ?
		 ORDER BY elapsed_secs ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	return scanClears(rows)
}

// RecentClears retrieves the most recent clears across all levels.
func (s *Store) RecentClears(limit int) ([]ClearRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, level_name, elapsed_secs, ticks, difficulty, created_at
		 FROM clears
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	return scanClears(rows)
}

// BestTime returns the fastest clear time of the given level.
// ok is false if the level was never cleared.
func (s *Store) BestTime(levelID string) (best float64, ok bool, err error) {
	var v sql.NullFloat64
	err = s.db.QueryRow(
		"SELECT MIN(elapsed_secs) FROM clears WHERE level_id = ?",
		levelID,
	).Scan(&v)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !v.Valid {
		return 0, false, nil
	}
	return v.Float64, true, nil
}

// DeleteClears deletes all records of the given level.
func (s *Store) DeleteClears(levelID string) error {
	_, err := s.db.Exec("DELETE FROM clears WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete clears: %w", err)
	}
	return nil
}

// AllLevelStats retrieves statistics for every level that has been cleared.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MAX(level_name), COUNT(*), MIN(elapsed_secs), AVG(elapsed_secs), MAX(created_at)
		 FROM clears
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastCleared any
		if err := rows.Scan(&st.LevelID, &st.LevelName, &st.Clears, &st.BestTime, &st.AvgTime, &lastCleared); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastCleared = parseTime(lastCleared)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
