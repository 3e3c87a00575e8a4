// Package store persists review history to SQLite. The in-session
// stats stay volatile; this store is write-mostly telemetry behind the
// stats command.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applying recommended
// pragmas and creating the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP,
			answered INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			complete INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			subject_id INTEGER NOT NULL,
			characters TEXT NOT NULL,
			question_type TEXT NOT NULL,
			answer TEXT NOT NULL,
			passed INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			overridden INTEGER NOT NULL DEFAULT 0,
			answered_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_subject ON answers(subject_id)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AnswerRecord is one committed verdict.
type AnswerRecord struct {
	SessionID    string
	SubjectID    int64
	Characters   string
	QuestionType string
	Answer       string
	Passed       bool
	Category     string
	Overridden   bool
	AnsweredAt   time.Time
}

// StartSession creates a session row and returns its ID.
func (s *Store) StartSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		id, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	return id, nil
}

// FinishSession records the final session counters.
func (s *Store) FinishSession(ctx context.Context, id string, answered, correct, complete int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, answered = ?, correct = ?, complete = ? WHERE id = ?`,
		time.Now().UTC(), answered, correct, complete, id)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// RecordAnswer appends an answer record.
func (s *Store) RecordAnswer(ctx context.Context, r AnswerRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, subject_id, characters, question_type, answer, passed, category, overridden, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.SubjectID, r.Characters, r.QuestionType, r.Answer,
		r.Passed, r.Category, r.Overridden, r.AnsweredAt.UTC())
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// Summary aggregates all-time history for the stats command.
type Summary struct {
	Sessions   int
	Answered   int
	Correct    int
	ByCategory map[string]int
}

// Summarize computes history totals.
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	sum := &Summary{ByCategory: make(map[string]int)}

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`)
	if err := row.Scan(&sum.Sessions); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	row = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(passed), 0) FROM answers`)
	if err := row.Scan(&sum.Answered, &sum.Correct); err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM answers WHERE category != '' GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("group categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		sum.ByCategory[cat] = n
	}
	return sum, rows.Err()
}

// MissedSubject is a subject with its all-time miss count.
type MissedSubject struct {
	SubjectID  int64
	Characters string
	Missed     int
}

// TopMissed returns the most-missed subjects, up to limit.
func (s *Store) TopMissed(ctx context.Context, limit int) ([]MissedSubject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_id, characters, COUNT(*) AS missed
		 FROM answers WHERE passed = 0
		 GROUP BY subject_id, characters
		 ORDER BY missed DESC, subject_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top missed: %w", err)
	}
	defer rows.Close()
	var out []MissedSubject
	for rows.Next() {
		var m MissedSubject
		if err := rows.Scan(&m.SubjectID, &m.Characters, &m.Missed); err != nil {
			return nil, fmt.Errorf("scan missed: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FUKUSHU_DB environment variable
// 2. $XDG_DATA_HOME/fukushu/fukushu.db
// 3. ~/.local/share/fukushu/fukushu.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FUKUSHU_DB"); p != "" {
		return p, EnsureDir(p)
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(dataHome, "fukushu", "fukushu.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
