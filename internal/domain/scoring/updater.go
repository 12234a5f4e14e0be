package scoring

import (
	"fmt"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
)

// Result is one answered problem: the fact, how it went and the score before
// and after. It feeds both persistence and the Evolution Report.
type Result struct {
	Fact         fact.Fact     `json:"fact"`
	Outcome      Outcome       `json:"outcome"`
	ResponseTime time.Duration `json:"response_time"`
	OldScore     float64       `json:"old_score"`
	NewScore     float64       `json:"new_score"`
	OldLevel     mastery.Level `json:"old_level"`
	NewLevel     mastery.Level `json:"new_level"`
}

// Flipped reports whether the answer moved the fact into another level.
func (r Result) Flipped() bool {
	return r.OldLevel != r.NewLevel
}

// Updater applies outcomes to a mastery store under one Policy.
type Updater struct {
	policy Policy
}

// NewUpdater validates p and returns an Updater using it.
func NewUpdater(p Policy) (*Updater, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Updater{policy: p}, nil
}

// Policy returns the policy in use.
func (u *Updater) Policy() Policy {
	return u.policy
}

// ApplyOutcome records one answer for (a, b) and returns the old and new
// score. Out-of-range facts and invalid outcomes leave the store untouched.
func (u *Updater) ApplyOutcome(store *mastery.Store, a, b int, outcome Outcome, responseTime time.Duration) (Result, error) {
	f := fact.New(a, b)
	if !fact.TableRange.ContainsFact(f) {
		return Result{}, fmt.Errorf("%w: %s", ErrFactOutOfRange, f.Key())
	}
	if !outcome.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(outcome))
	}
	if responseTime < 0 {
		responseTime = 0
	}

	old := store.Score(a, b)
	next := u.policy.Next(old, outcome, responseTime)
	store.Set(f, next)

	return Result{
		Fact:         f,
		Outcome:      outcome.Effective(u.policy, responseTime),
		ResponseTime: responseTime,
		OldScore:     old,
		NewScore:     next,
		OldLevel:     mastery.Classify(old),
		NewLevel:     mastery.Classify(next),
	}, nil
}
