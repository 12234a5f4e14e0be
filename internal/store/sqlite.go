// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	"github.com/factdojo/backend/internal/domain/profile"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mastery (
    profile_id TEXT NOT NULL,
    fact_key TEXT NOT NULL,
    score REAL NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (profile_id, fact_key),
    FOREIGN KEY (profile_id) REFERENCES profiles(id)
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    profile_id TEXT NOT NULL,
    session_size INTEGER NOT NULL,
    focus_factors TEXT NOT NULL,
    slot_policy TEXT NOT NULL,
    range_min INTEGER NOT NULL,
    range_max INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    completed_at TEXT,
    FOREIGN KEY (profile_id) REFERENCES profiles(id)
);

CREATE TABLE IF NOT EXISTS session_problems (
    session_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    fact_key TEXT NOT NULL,
    factor_a INTEGER NOT NULL,
    factor_b INTEGER NOT NULL,
    missing TEXT NOT NULL,
    problem_type TEXT NOT NULL,
    PRIMARY KEY (session_id, position),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS session_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    fact_key TEXT NOT NULL,
    outcome TEXT NOT NULL,
    response_ms INTEGER NOT NULL,
    old_score REAL NOT NULL,
    new_score REAL NOT NULL,
    answered_at TEXT NOT NULL,
    UNIQUE (session_id, position),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);
`

type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the database at dbPath and applies the schema.
func NewSQLite(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ============================================================================
// Profiles
// ============================================================================

func (s *SQLiteStore) SaveProfile(ctx context.Context, p *profile.Profile) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, name, created_at) VALUES (?, ?, ?)",
		p.ID, p.Name, formatTime(p.CreatedAt),
	)
	return err
}

func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*profile.Profile, error) {
	var p profile.Profile
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM profiles WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM profiles ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*profile.Profile
	for rows.Next() {
		var p profile.Profile
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes the profile with its mastery map and every session.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM session_results WHERE session_id IN (SELECT id FROM sessions WHERE profile_id = ?)",
		"DELETE FROM session_problems WHERE session_id IN (SELECT id FROM sessions WHERE profile_id = ?)",
		"DELETE FROM sessions WHERE profile_id = ?",
		"DELETE FROM mastery WHERE profile_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ============================================================================
// Mastery
// ============================================================================

// LoadMastery returns the profile's mastery map. Rows whose key does not parse
// are skipped and logged rather than failing the whole profile.
func (s *SQLiteStore) LoadMastery(ctx context.Context, profileID string) (mastery.Map, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT fact_key, score FROM mastery WHERE profile_id = ?", profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(mastery.Map)
	for rows.Next() {
		var key string
		var score float64
		if err := rows.Scan(&key, &score); err != nil {
			return nil, err
		}
		f, err := fact.ParseKey(key)
		if err != nil {
			s.logger.Warn("skipping malformed mastery key", "profile_id", profileID, "key", key, "error", err)
			continue
		}
		m[f] = mastery.Clamp(score)
	}
	return m, rows.Err()
}

func (s *SQLiteStore) SaveScore(ctx context.Context, profileID string, f fact.Fact, score float64) error {
	return upsertScore(ctx, s.db, profileID, f, score)
}

// ReplaceMastery swaps the whole map, used by import.
func (s *SQLiteStore) ReplaceMastery(ctx context.Context, profileID string, m mastery.Map) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM mastery WHERE profile_id = ?", profileID); err != nil {
		return err
	}
	for f, score := range m {
		if err := upsertScore(ctx, tx, profileID, f, score); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ResetMastery irreversibly forgets every score of the profile.
func (s *SQLiteStore) ResetMastery(ctx context.Context, profileID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM mastery WHERE profile_id = ?", profileID)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertScore(ctx context.Context, db execer, profileID string, f fact.Fact, score float64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO mastery (profile_id, fact_key, score, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (profile_id, fact_key) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
	`, profileID, f.Key(), mastery.Clamp(score), formatTime(time.Now()))
	return err
}
