package store

import (
	"context"
	"errors"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/profile"
	"github.com/factdojo/backend/internal/domain/scoring"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyAnswered = errors.New("problem already answered")
	ErrSessionClosed   = errors.New("session already completed")
)

// StoredResult is one persisted answer with its position in the session.
type StoredResult struct {
	Position   int
	Result     scoring.Result
	AnsweredAt time.Time
}

// Store is the persistence collaborator of the mastery engine.
type Store interface {
	SaveProfile(ctx context.Context, p *profile.Profile) error
	GetProfile(ctx context.Context, id string) (*profile.Profile, error)
	ListProfiles(ctx context.Context) ([]*profile.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	LoadMastery(ctx context.Context, profileID string) (mastery.Map, error)
	SaveScore(ctx context.Context, profileID string, f fact.Fact, score float64) error
	ReplaceMastery(ctx context.Context, profileID string, m mastery.Map) error
	ResetMastery(ctx context.Context, profileID string) error

	SaveSession(ctx context.Context, session *practicesession.PracticeSession) error
	GetSession(ctx context.Context, id string) (*practicesession.PracticeSession, error)
	CompleteSession(ctx context.Context, id string, at time.Time) error

	// RecordAnswer stores the new score and the result item in one transaction.
	RecordAnswer(ctx context.Context, profileID, sessionID string, position int, result scoring.Result) error
	ListResults(ctx context.Context, sessionID string) ([]StoredResult, error)
}
