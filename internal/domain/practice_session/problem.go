package practicesession

import "github.com/factdojo/backend/internal/domain/fact"

// ProblemType tags why a problem is in the session.
type ProblemType string

const (
	Repair      ProblemType = "REPAIR"      // gap or focus-table fact
	Reinforce   ProblemType = "REINFORCE"   // fact still in the LEARNING band
	Maintenance ProblemType = "MAINTENANCE" // random filler from mastered or unseen facts
)

// MissingSlot is the hidden cell of an inverse-logic triad.
type MissingSlot string

const (
	MissingNone    MissingSlot = "none"
	MissingProduct MissingSlot = "top"
	MissingLeft    MissingSlot = "left"
	MissingRight   MissingSlot = "right"
)

// Problem is one drill item.
type Problem struct {
	Fact    fact.Fact
	FactorA int // left factor as presented
	FactorB int // right factor as presented
	Product int
	Missing MissingSlot
	Type    ProblemType
}

func newProblem(f fact.Fact, swap bool, missing MissingSlot, t ProblemType) Problem {
	a, b := f.Low, f.High
	if swap {
		a, b = b, a
	}
	return Problem{
		Fact:    f,
		FactorA: a,
		FactorB: b,
		Product: a * b,
		Missing: missing,
		Type:    t,
	}
}

// Triad returns the product/left/right layout used by the inverse-operation mode.
// The product is recomputed from the factors.
func (p Problem) Triad() (top, left, right int) {
	return p.FactorA * p.FactorB, p.FactorA, p.FactorB
}

// Answer is the value the learner must supply: the hidden slot, or the
// product when nothing is hidden.
func (p Problem) Answer() int {
	top, left, right := p.Triad()
	switch p.Missing {
	case MissingLeft:
		return left
	case MissingRight:
		return right
	default:
		return top
	}
}
