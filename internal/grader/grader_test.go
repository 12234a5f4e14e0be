package grader_test

import (
	"testing"
	"time"

	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/grader"
)

func intPtr(n int) *int { return &n }

func TestArithmetic_Grade(t *testing.T) {
	g := grader.NewArithmetic(scoring.DefaultPolicy())
	product := practicesession.Problem{FactorA: 6, FactorB: 7, Missing: practicesession.MissingProduct}
	left := practicesession.Problem{FactorA: 6, FactorB: 7, Missing: practicesession.MissingLeft}

	tests := []struct {
		name    string
		problem practicesession.Problem
		answer  *int
		elapsed time.Duration
		want    scoring.Outcome
	}{
		{"fast product", product, intPtr(42), time.Second, scoring.Correct},
		{"slow product", product, intPtr(42), 4 * time.Second, scoring.Slow},
		{"wrong product", product, intPtr(48), time.Second, scoring.Wrong},
		{"no answer", product, nil, time.Second, scoring.Wrong},
		{"missing left", left, intPtr(6), time.Second, scoring.Correct},
		{"product given for missing left", left, intPtr(42), time.Second, scoring.Wrong},
	}

	for _, tt := range tests {
		if got := g.Grade(tt.problem, tt.answer, tt.elapsed); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
