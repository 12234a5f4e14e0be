package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/scoring"
)

// ============================================================================
// Sessions
// ============================================================================

func (s *SQLiteStore) SaveSession(ctx context.Context, session *practicesession.PracticeSession) error {
	focusJSON, err := json.Marshal(session.Config.FocusFactors)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, profile_id, session_size, focus_factors, slot_policy, range_min, range_max, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		session.ID, session.ProfileID, session.Config.SessionSize, string(focusJSON),
		string(session.Config.MissingSlotPolicy), session.Config.Range.Min, session.Config.Range.Max,
		formatTime(session.CreatedAt),
	)
	if err != nil {
		return err
	}

	for i, p := range session.Problems {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO session_problems (session_id, position, fact_key, factor_a, factor_b, missing, problem_type) VALUES (?, ?, ?, ?, ?, ?, ?)",
			session.ID, i, p.Fact.Key(), p.FactorA, p.FactorB, string(p.Missing), string(p.Type),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*practicesession.PracticeSession, error) {
	var session practicesession.PracticeSession
	var focusJSON, slotPolicy, createdAt string
	var completedAt sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, session_size, focus_factors, slot_policy, range_min, range_max, created_at, completed_at
		FROM sessions WHERE id = ?
	`, id).Scan(
		&session.ID, &session.ProfileID, &session.Config.SessionSize, &focusJSON, &slotPolicy,
		&session.Config.Range.Min, &session.Config.Range.Max, &createdAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	session.Config.MissingSlotPolicy = practicesession.SlotPolicy(slotPolicy)
	if err := json.Unmarshal([]byte(focusJSON), &session.Config.FocusFactors); err != nil {
		s.logger.Warn("ignoring malformed focus factors", "session_id", id, "error", err)
	}
	session.CreatedAt = parseTime(createdAt)
	if completedAt.Valid {
		t := parseTime(completedAt.String)
		session.CompletedAt = &t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT fact_key, factor_a, factor_b, missing, problem_type
		FROM session_problems WHERE session_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	session.Problems = []practicesession.Problem{}
	for rows.Next() {
		var key, missing, problemType string
		var p practicesession.Problem
		if err := rows.Scan(&key, &p.FactorA, &p.FactorB, &missing, &problemType); err != nil {
			return nil, err
		}
		p.Fact = fact.New(p.FactorA, p.FactorB)
		p.Product = p.FactorA * p.FactorB
		p.Missing = practicesession.MissingSlot(missing)
		p.Type = practicesession.ProblemType(problemType)
		session.Problems = append(session.Problems, p)
	}

	return &session, rows.Err()
}

func (s *SQLiteStore) CompleteSession(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET completed_at = COALESCE(completed_at, ?) WHERE id = ?",
		formatTime(at), id,
	)
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
	return nil
}

// ============================================================================
// Results
// ============================================================================

func (s *SQLiteStore) RecordAnswer(ctx context.Context, profileID, sessionID string, position int, result scoring.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Checked inside the transaction so an answer cannot land after the
	// session was completed.
	var completedAt sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT completed_at FROM sessions WHERE id = ?", sessionID,
	).Scan(&completedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if completedAt.Valid {
		return ErrSessionClosed
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM session_results WHERE session_id = ? AND position = ?",
		sessionID, position,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrAlreadyAnswered
	}

	if err := upsertScore(ctx, tx, profileID, result.Fact, result.NewScore); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_results (session_id, position, fact_key, outcome, response_ms, old_score, new_score, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sessionID, position, result.Fact.Key(), result.Outcome.String(),
		result.ResponseTime.Milliseconds(), result.OldScore, result.NewScore, formatTime(time.Now()),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListResults returns the session's answers in the order they were given.
func (s *SQLiteStore) ListResults(ctx context.Context, sessionID string) ([]StoredResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, fact_key, outcome, response_ms, old_score, new_score, answered_at
		FROM session_results WHERE session_id = ? ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var r StoredResult
		var key, outcome, answeredAt string
		var responseMs int64
		if err := rows.Scan(&r.Position, &key, &outcome, &responseMs, &r.Result.OldScore, &r.Result.NewScore, &answeredAt); err != nil {
			return nil, err
		}
		f, err := fact.ParseKey(key)
		if err != nil {
			s.logger.Warn("skipping malformed result key", "session_id", sessionID, "key", key, "error", err)
			continue
		}
		if err := r.Result.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			s.logger.Warn("skipping malformed result outcome", "session_id", sessionID, "outcome", outcome, "error", err)
			continue
		}
		r.Result.Fact = f
		r.Result.ResponseTime = time.Duration(responseMs) * time.Millisecond
		r.Result.OldLevel = mastery.Classify(r.Result.OldScore)
		r.Result.NewLevel = mastery.Classify(r.Result.NewScore)
		r.AnsweredAt = parseTime(answeredAt)
		results = append(results, r)
	}
	return results, rows.Err()
}
