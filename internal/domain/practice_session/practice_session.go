package practicesession

import (
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	"github.com/factdojo/backend/internal/id"
)

// PracticeSession is the main domain entity for a practice session.
type PracticeSession struct {
	ID          string
	ProfileID   string
	Problems    []Problem
	Config      SessionConfig
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// New plans a default session for the profile.
func New(profileID string, store *mastery.Store, planner *Planner) *PracticeSession {
	return NewWithConfig(profileID, store, DefaultConfig(), planner)
}

// NewWithConfig plans a session with the given configuration.
func NewWithConfig(profileID string, store *mastery.Store, config SessionConfig, planner *Planner) *PracticeSession {
	return &PracticeSession{
		ID:        id.GenerateID(),
		ProfileID: profileID,
		Problems:  planner.Build(store, config),
		Config:    config.normalized(),
		CreatedAt: time.Now().UTC(),
	}
}

// NewWithSpecificFacts builds a session from caller-chosen facts, e.g. a
// retry of the misses from the last report. Duplicates are dropped, every
// problem is REPAIR and the order is kept.
func NewWithSpecificFacts(profileID string, facts []fact.Fact, config SessionConfig, planner *Planner) *PracticeSession {
	config = config.normalized()
	seen := make(map[fact.Fact]bool)
	problems := make([]Problem, 0, len(facts))
	for _, f := range facts {
		f = fact.New(f.Low, f.High)
		if seen[f] || !fact.TableRange.ContainsFact(f) {
			continue
		}
		seen[f] = true
		problems = append(problems, newProblem(f, planner.rng.Intn(2) == 1, planner.missingSlot(config.MissingSlotPolicy), Repair))
	}
	config.SessionSize = len(problems)

	return &PracticeSession{
		ID:        id.GenerateID(),
		ProfileID: profileID,
		Problems:  problems,
		Config:    config,
		CreatedAt: time.Now().UTC(),
	}
}

// Problem returns the problem at position, or false when out of bounds.
func (s *PracticeSession) Problem(position int) (Problem, bool) {
	if position < 0 || position >= len(s.Problems) {
		return Problem{}, false
	}
	return s.Problems[position], true
}

// Completed reports whether the session has been closed.
func (s *PracticeSession) Completed() bool {
	return s.CompletedAt != nil
}
