package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"rehearse/internal/config"
	"rehearse/internal/identity"
)

const schema = `
CREATE TABLE IF NOT EXISTS practice_sessions (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    topic       TEXT NOT NULL,
    question    TEXT,
    score       INTEGER NOT NULL,
    duration    INTEGER NOT NULL,
    created_at  TEXT NOT NULL,
    metrics_json TEXT
);
CREATE INDEX IF NOT EXISTS idx_practice_sessions_user
    ON practice_sessions(user_id, created_at);
`

// Store keeps session history in a local SQLite database, serving the
// local-only persistence variant.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the local history database.
func OpenStore(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Record inserts one completed session.
func (s *Store) Record(ctx context.Context, ident *identity.Identity, entry Entry) (*Record, error) {
	if !ident.Valid() {
		return nil, identity.ErrNoIdentity
	}

	record := &Record{
		ID:        uuid.NewString(),
		UserID:    ident.ID,
		Topic:     entry.Topic,
		Question:  entry.Question,
		Score:     entry.Score,
		Duration:  entry.Duration,
		Timestamp: time.Now().UTC(),
		Metrics:   entry.Metrics,
	}

	var metricsJSON sql.NullString
	if entry.Metrics != nil {
		raw, err := json.Marshal(entry.Metrics)
		if err != nil {
			return nil, &PersistenceError{Op: "record", Err: fmt.Errorf("marshal metrics: %w", err)}
		}
		metricsJSON = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO practice_sessions (id, user_id, topic, question, score, duration, created_at, metrics_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		record.Topic,
		nullableString(record.Question),
		record.Score,
		record.Duration,
		record.Timestamp.Format(time.RFC3339Nano),
		metricsJSON,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "record", Err: err}
	}
	return record, nil
}

// Stats aggregates the user's history in SQL.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*),
                COALESCE(AVG(score), 0),
                COALESCE(MAX(score), 0),
                COALESCE(SUM(duration), 0)
         FROM practice_sessions WHERE user_id = ?`,
		userID,
	)

	var stats Stats
	var avg float64
	if err := row.Scan(&stats.TotalSessions, &avg, &stats.HighestScore, &stats.TotalDuration); err != nil {
		return Stats{}, &PersistenceError{Op: "stats", Err: err}
	}
	stats.AvgScore = int(avg + 0.5)
	return stats, nil
}

// Sessions lists the user's history, newest first.
func (s *Store) Sessions(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, user_id, topic, question, score, duration, created_at, metrics_json
         FROM practice_sessions WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "sessions", Err: err}
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var question, metricsJSON sql.NullString
		var createdAt string
		if err := rows.Scan(&record.ID, &record.UserID, &record.Topic, &question, &record.Score, &record.Duration, &createdAt, &metricsJSON); err != nil {
			return nil, &PersistenceError{Op: "sessions", Err: err}
		}
		record.Question = question.String
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			record.Timestamp = ts
		}
		if metricsJSON.Valid && metricsJSON.String != "" {
			metrics := &Metrics{}
			if err := json.Unmarshal([]byte(metricsJSON.String), metrics); err == nil {
				record.Metrics = metrics
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "sessions", Err: err}
	}
	return records, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

var _ Recorder = (*Store)(nil)
