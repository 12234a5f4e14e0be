// internal/service/practice.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/profile"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/grader"
	"github.com/factdojo/backend/internal/id"
	"github.com/factdojo/backend/internal/store"
)

var (
	ErrResetNotConfirmed = errors.New("mastery reset must be confirmed")
	ErrSessionCompleted  = store.ErrSessionClosed
	ErrProblemNotFound   = errors.New("problem not found in session")
	ErrInvalidRange      = errors.New("range must lie within 1..10")
)

// SessionRequest describes the session a caller wants.
// When Facts is non-empty the planner is bypassed and exactly those facts are drilled.
type SessionRequest struct {
	Config practicesession.SessionConfig
	Facts  []fact.Fact
}

// Answer is one learner response. Either Value is graded against the
// problem, or Outcome is taken as already judged by the caller.
type Answer struct {
	Position     int
	Value        *int
	Outcome      *scoring.Outcome
	ResponseTime time.Duration
}

// AnswerResult is what the session UI gets back after each answer.
type AnswerResult struct {
	Position int
	Problem  practicesession.Problem
	Result   scoring.Result
}

// SessionReport is the Evolution Report of a completed session.
type SessionReport struct {
	SessionID  string
	ProfileID  string
	Report     scoring.Report
	Positions  []int // problem position of each Report.Items entry
	Answered   int
	Unanswered int
	Stats      mastery.Stats
}

// ImportResult counts what an import kept and dropped.
type ImportResult struct {
	Imported int
	Skipped  []string
}

// PracticeService wires the mastery engine to persistence. It is the only
// writer of mastery scores and serializes writes per profile, so several
// open tabs on one profile cannot lose updates.
type PracticeService struct {
	store   store.Store
	updater *scoring.Updater
	grader  grader.Grader
	logger  *slog.Logger

	newPlanner  func() *practicesession.Planner
	sessionSize int

	mu    sync.Mutex
	locks map[string]*sync.Mutex // profileID → write lock
}

// NewPracticeService creates a PracticeService.
func NewPracticeService(s store.Store, u *scoring.Updater, g grader.Grader, logger *slog.Logger) *PracticeService {
	return &PracticeService{
		store:   s,
		updater: u,
		grader:  g,
		logger:  logger,
		newPlanner: func() *practicesession.Planner {
			return practicesession.NewPlanner(time.Now().UnixNano())
		},
		sessionSize: practicesession.DefaultSessionSize,
		locks:       make(map[string]*sync.Mutex),
	}
}

// WithSessionSize overrides the size used when a request does not name one.
func (ps *PracticeService) WithSessionSize(n int) *PracticeService {
	if n > 0 {
		ps.sessionSize = n
	}
	return ps
}

// SessionSize is the default number of problems per planned session.
func (ps *PracticeService) SessionSize() int {
	return ps.sessionSize
}

func (ps *PracticeService) lockProfile(profileID string) func() {
	ps.mu.Lock()
	l, ok := ps.locks[profileID]
	if !ok {
		l = &sync.Mutex{}
		ps.locks[profileID] = l
	}
	ps.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ── Profiles ────────────────────────────────────────────────────────────────

// Path IDs that GenerateID could not have produced never reach the database.
func (ps *PracticeService) lookupProfile(ctx context.Context, profileID string) (*profile.Profile, error) {
	if !id.Valid(profileID) {
		return nil, store.ErrNotFound
	}
	return ps.store.GetProfile(ctx, profileID)
}

func (ps *PracticeService) lookupSession(ctx context.Context, sessionID string) (*practicesession.PracticeSession, error) {
	if !id.Valid(sessionID) {
		return nil, store.ErrNotFound
	}
	return ps.store.GetSession(ctx, sessionID)
}

func (ps *PracticeService) CreateProfile(ctx context.Context, name string) (*profile.Profile, error) {
	p, err := profile.New(name)
	if err != nil {
		return nil, err
	}
	if err := ps.store.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	ps.logger.Info("profile created", "profile_id", p.ID)
	return p, nil
}

func (ps *PracticeService) GetProfile(ctx context.Context, profileID string) (*profile.Profile, error) {
	return ps.lookupProfile(ctx, profileID)
}

func (ps *PracticeService) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	return ps.store.ListProfiles(ctx)
}

func (ps *PracticeService) DeleteProfile(ctx context.Context, profileID string) error {
	defer ps.lockProfile(profileID)()
	if err := ps.store.DeleteProfile(ctx, profileID); err != nil {
		return err
	}
	ps.logger.Warn("profile deleted", "profile_id", profileID)
	return nil
}

// ── Mastery ─────────────────────────────────────────────────────────────────

// Mastery loads the profile's scores into a fresh Store.
func (ps *PracticeService) Mastery(ctx context.Context, profileID string) (*mastery.Store, error) {
	if _, err := ps.lookupProfile(ctx, profileID); err != nil {
		return nil, err
	}
	m, err := ps.store.LoadMastery(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load mastery: %w", err)
	}
	return mastery.NewStore(m), nil
}

// ResetMastery wipes every score of the profile. It is irreversible and
// refuses to run unless confirm is true.
func (ps *PracticeService) ResetMastery(ctx context.Context, profileID string, confirm bool) error {
	if !confirm {
		return ErrResetNotConfirmed
	}
	if _, err := ps.lookupProfile(ctx, profileID); err != nil {
		return err
	}

	defer ps.lockProfile(profileID)()
	if err := ps.store.ResetMastery(ctx, profileID); err != nil {
		return fmt.Errorf("reset mastery: %w", err)
	}
	ps.logger.Warn("mastery reset", "profile_id", profileID)
	return nil
}

// ExportMastery returns the scores keyed by the persisted "AxB" form.
func (ps *PracticeService) ExportMastery(ctx context.Context, profileID string) (map[string]float64, error) {
	ms, err := ps.Mastery(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, ms.Len())
	for _, e := range ms.Known() {
		out[e.Fact.Key()] = e.Score
	}
	return out, nil
}

// ImportMastery replaces the profile's scores. Keys may come in either
// order ("7x2" lands on "2x7"); when two keys name the same fact the higher
// score wins. Malformed or out-of-range keys are skipped.
func (ps *PracticeService) ImportMastery(ctx context.Context, profileID string, entries map[string]float64) (ImportResult, error) {
	if _, err := ps.lookupProfile(ctx, profileID); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Skipped: []string{}}
	ms := mastery.NewStore(nil)
	for key, score := range entries {
		f, err := fact.ParseKey(key)
		if err != nil || !fact.TableRange.ContainsFact(f) {
			result.Skipped = append(result.Skipped, key)
			continue
		}
		if ms.Has(f) && ms.Score(f.Low, f.High) >= mastery.Clamp(score) {
			continue
		}
		ms.Set(f, score)
	}
	result.Imported = ms.Len()

	defer ps.lockProfile(profileID)()
	if err := ps.store.ReplaceMastery(ctx, profileID, ms.Snapshot()); err != nil {
		return ImportResult{}, fmt.Errorf("replace mastery: %w", err)
	}
	ps.logger.Info("mastery imported", "profile_id", profileID, "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

// ── Sessions ────────────────────────────────────────────────────────────────

// StartSession plans and saves a new session for the profile.
func (ps *PracticeService) StartSession(ctx context.Context, profileID string, req SessionRequest) (*practicesession.PracticeSession, error) {
	ms, err := ps.Mastery(ctx, profileID)
	if err != nil {
		return nil, err
	}

	planner := ps.newPlanner()
	var session *practicesession.PracticeSession
	if len(req.Facts) > 0 {
		session = practicesession.NewWithSpecificFacts(profileID, req.Facts, req.Config, planner)
	} else {
		session = practicesession.NewWithConfig(profileID, ms, req.Config, planner)
	}

	if err := ps.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ps.logger.Info("session started",
		"session_id", session.ID,
		"profile_id", profileID,
		"problems", len(session.Problems),
	)
	return session, nil
}

func (ps *PracticeService) GetSession(ctx context.Context, sessionID string) (*practicesession.PracticeSession, error) {
	return ps.lookupSession(ctx, sessionID)
}

// SubmitAnswer grades one answer, applies it to the profile's mastery and
// persists both the new score and the result item.
func (ps *PracticeService) SubmitAnswer(ctx context.Context, sessionID string, answer Answer) (AnswerResult, error) {
	session, err := ps.lookupSession(ctx, sessionID)
	if err != nil {
		return AnswerResult{}, err
	}
	if session.Completed() {
		return AnswerResult{}, ErrSessionCompleted
	}
	problem, ok := session.Problem(answer.Position)
	if !ok {
		return AnswerResult{}, ErrProblemNotFound
	}

	var outcome scoring.Outcome
	if answer.Outcome != nil {
		outcome = *answer.Outcome
	} else {
		outcome = ps.grader.Grade(problem, answer.Value, answer.ResponseTime)
	}

	defer ps.lockProfile(session.ProfileID)()

	m, err := ps.store.LoadMastery(ctx, session.ProfileID)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("load mastery: %w", err)
	}
	ms := mastery.NewStore(m)

	result, err := ps.updater.ApplyOutcome(ms, problem.FactorA, problem.FactorB, outcome, answer.ResponseTime)
	if err != nil {
		return AnswerResult{}, err
	}

	if err := ps.store.RecordAnswer(ctx, session.ProfileID, sessionID, answer.Position, result); err != nil {
		return AnswerResult{}, err
	}

	if result.Flipped() {
		ps.logger.Info("fact changed level",
			"profile_id", session.ProfileID,
			"fact", result.Fact.Key(),
			"from", result.OldLevel.String(),
			"to", result.NewLevel.String(),
		)
	}

	return AnswerResult{
		Position: answer.Position,
		Problem:  problem,
		Result:   result,
	}, nil
}

// CompleteSession closes the session and builds its Evolution Report.
// Completing twice returns the same report.
func (ps *PracticeService) CompleteSession(ctx context.Context, sessionID string) (SessionReport, error) {
	session, err := ps.lookupSession(ctx, sessionID)
	if err != nil {
		return SessionReport{}, err
	}

	unlock := ps.lockProfile(session.ProfileID)
	err = ps.store.CompleteSession(ctx, sessionID, time.Now())
	unlock()
	if err != nil {
		return SessionReport{}, fmt.Errorf("complete session: %w", err)
	}

	stored, err := ps.store.ListResults(ctx, sessionID)
	if err != nil {
		return SessionReport{}, fmt.Errorf("load results: %w", err)
	}
	results := make([]scoring.Result, len(stored))
	positions := make([]int, len(stored))
	for i, r := range stored {
		results[i] = r.Result
		positions[i] = r.Position
	}

	ms, err := ps.Mastery(ctx, session.ProfileID)
	if err != nil {
		return SessionReport{}, err
	}

	report := SessionReport{
		SessionID:  sessionID,
		ProfileID:  session.ProfileID,
		Report:     scoring.NewReport(results),
		Positions:  positions,
		Answered:   len(results),
		Unanswered: max(len(session.Problems)-len(results), 0),
		Stats:      ms.Aggregate(session.Config.Range),
	}

	ps.logger.Info("session completed",
		"session_id", sessionID,
		"answered", report.Answered,
		"promotions", len(report.Report.Promotions),
		"regressions", len(report.Report.Regressions),
	)
	return report, nil
}
