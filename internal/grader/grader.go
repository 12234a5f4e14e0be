package grader

import (
	"time"

	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/scoring"
)

// Grader judges a learner's answer to one problem.
// Implementations may check arithmetic, apply house rules, or return canned results (for tests).
type Grader interface {
	// Grade returns Correct, Slow or Wrong. answer is nil when the learner gave up
	// or the timer ran out.
	Grade(problem practicesession.Problem, answer *int, responseTime time.Duration) scoring.Outcome
}

// Arithmetic compares the answer with the hidden slot of the problem.
type Arithmetic struct {
	FastThreshold time.Duration // correct answers at or above this are Slow
}

// NewArithmetic returns an Arithmetic grader sharing the scoring policy's threshold.
func NewArithmetic(p scoring.Policy) *Arithmetic {
	return &Arithmetic{FastThreshold: p.FastThreshold}
}

func (g *Arithmetic) Grade(problem practicesession.Problem, answer *int, responseTime time.Duration) scoring.Outcome {
	if answer == nil || *answer != problem.Answer() {
		return scoring.Wrong
	}
	if g.FastThreshold > 0 && responseTime >= g.FastThreshold {
		return scoring.Slow
	}
	return scoring.Correct
}
