// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only outcomes are stored; a run in progress is never saved or resumed.
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

// Store manages the SQLite database connection for the results board.
type Store struct {
	db *sql.DB
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			collected INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level_id ON results(level_id);
		CREATE INDEX IF NOT EXISTS idx_results_board ON results(level_id, outcome, collected DESC, elapsed_secs ASC);
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

// SaveResult records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.LevelID == "" {
		return 0, fmt.Errorf("storage: cannot save result: %w", ErrNoLevel)
	}

	res, err := s.db.Exec(
		`INSERT INTO results (level_id, outcome, reason, collected, total, elapsed_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Outcome, r.Reason, r.Collected, r.Total, r.ElapsedSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, level_id, outcome, reason, collected, total, elapsed_secs, created_at`

// TopResults retrieves the best wins for the given level.
// Wins rank by tools collected, then by time taken.
func (s *Store) TopResults(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY collected DESC, elapsed_secs ASC, id ASC
		 LIMIT ?`,
		levelID, OutcomeWin, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// RecentResults retrieves the latest runs of any outcome for the given level.
func (s *Store) RecentResults(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// BestResult returns the top win for the given level, or nil if the level was never won.
func (s *Store) BestResult(levelID string) (*Result, error) {
	top, err := s.TopResults(levelID, 1)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, nil
	}
	return &top[0], nil
}

// ClearResults deletes all results for the given level.
func (s *Store) ClearResults(levelID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(collected), 0),
		        MAX(created_at)
		 FROM results WHERE level_id = ?`,
		OutcomeWin, ReasonFellIntoPit, ReasonTimeExpired, levelID,
	).Scan(&stats.Runs, &stats.Wins, &stats.Falls, &stats.Timeouts, &stats.MostCollected, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func collectResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Outcome, &r.Reason,
			&r.Collected, &r.Total, &r.ElapsedSecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both driver-decoded times and raw SQLite timestamps.
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

// ErrNoLevel is returned when a result has no level ID.
var ErrNoLevel = errors.New("result has no level id")
