package scoring_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	"github.com/factdojo/backend/internal/domain/scoring"
)

const fast = 900 * time.Millisecond

func mustUpdater(t *testing.T, p scoring.Policy) *scoring.Updater {
	t.Helper()
	u, err := scoring.NewUpdater(p)
	if err != nil {
		t.Fatalf("NewUpdater: %v", err)
	}
	return u
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDefaultPolicyIsValid(t *testing.T) {
	if err := scoring.DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
}

func TestPolicyValidate_Rejects(t *testing.T) {
	base := scoring.DefaultPolicy()

	tests := []struct {
		name   string
		mutate func(p *scoring.Policy)
	}{
		{"zero threshold", func(p *scoring.Policy) { p.FastThreshold = 0 }},
		{"fast above one", func(p *scoring.Policy) { p.CorrectFast = 1.5 }},
		{"slow not below fast", func(p *scoring.Policy) { p.CorrectSlow = p.CorrectFast }},
		{"slow zero", func(p *scoring.Policy) { p.CorrectSlow = 0 }},
		{"wrong one", func(p *scoring.Policy) { p.Wrong = 1 }},
		{"wrong negative", func(p *scoring.Policy) { p.Wrong = -0.1 }},
	}

	for _, tt := range tests {
		p := base
		tt.mutate(&p)
		if err := p.Validate(); !errors.Is(err, scoring.ErrInvalidPolicy) {
			t.Errorf("%s: expected ErrInvalidPolicy, got %v", tt.name, err)
		}
		if _, err := scoring.NewUpdater(p); err == nil {
			t.Errorf("%s: expected NewUpdater to fail", tt.name)
		}
	}
}

func TestApplyOutcome_ScenarioFlipsToMastered(t *testing.T) {
	store := mastery.NewStore(mastery.Map{fact.New(7, 8): 0.75})
	u := mustUpdater(t, scoring.DefaultPolicy())

	res, err := u.ApplyOutcome(store, 8, 7, scoring.Correct, fast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertFloat(t, "old score", res.OldScore, 0.75)
	assertFloat(t, "new score", res.NewScore, 0.825)
	assertFloat(t, "stored score", store.Score(7, 8), 0.825)

	if res.OldLevel != mastery.Learning || res.NewLevel != mastery.Mastered {
		t.Errorf("expected LEARNING -> MASTERED, got %v -> %v", res.OldLevel, res.NewLevel)
	}
	if !res.Flipped() {
		t.Error("expected result to be flagged as a flip")
	}
	if res.Fact.Key() != "7x8" {
		t.Errorf("expected fact 7x8, got %s", res.Fact.Key())
	}
}

func TestApplyOutcome_SlowCorrectRewardsLess(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())

	fastStore := mastery.NewStore(mastery.Map{fact.New(3, 4): 0.5})
	slowStore := mastery.NewStore(mastery.Map{fact.New(3, 4): 0.5})

	fastRes, _ := u.ApplyOutcome(fastStore, 3, 4, scoring.Correct, fast)
	slowRes, _ := u.ApplyOutcome(slowStore, 3, 4, scoring.Correct, 5*time.Second)

	if slowRes.NewScore >= fastRes.NewScore {
		t.Errorf("expected slow reward %v below fast reward %v", slowRes.NewScore, fastRes.NewScore)
	}
	if slowRes.NewScore <= 0.5 {
		t.Errorf("expected slow correct to still increase the score, got %v", slowRes.NewScore)
	}
	if slowRes.Outcome != scoring.Slow {
		t.Errorf("expected outcome to be recorded as SLOW, got %v", slowRes.Outcome)
	}
	assertFloat(t, "slow score", slowRes.NewScore, 0.55)
}

func TestApplyOutcome_ThresholdIsSlow(t *testing.T) {
	p := scoring.DefaultPolicy()
	u := mustUpdater(t, p)
	store := mastery.NewStore(nil)

	res, _ := u.ApplyOutcome(store, 2, 2, scoring.Correct, p.FastThreshold)
	if res.Outcome != scoring.Slow {
		t.Errorf("expected an answer at the threshold to be slow, got %v", res.Outcome)
	}
}

func TestApplyOutcome_Monotonicity(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())

	for _, s := range []float64{0, 0.1, 0.29, 0.3, 0.5, 0.79, 0.8, 0.99, 1} {
		store := mastery.NewStore(mastery.Map{fact.New(6, 7): s})
		res, _ := u.ApplyOutcome(store, 6, 7, scoring.Correct, fast)
		if s < 1 && res.NewScore <= s {
			t.Errorf("correct from %v: expected increase, got %v", s, res.NewScore)
		}
		if s == 1 && res.NewScore != 1 {
			t.Errorf("correct from 1: expected fixed point, got %v", res.NewScore)
		}

		store = mastery.NewStore(mastery.Map{fact.New(6, 7): s})
		res, _ = u.ApplyOutcome(store, 6, 7, scoring.Wrong, fast)
		if s > 0 && res.NewScore >= s {
			t.Errorf("wrong from %v: expected decrease, got %v", s, res.NewScore)
		}
		if s == 0 && res.NewScore != 0 {
			t.Errorf("wrong from 0: expected fixed point, got %v", res.NewScore)
		}
	}
}

func TestApplyOutcome_CorrectNearOneStillGains(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())
	almost := math.Nextafter(1, 0)

	for _, outcome := range []scoring.Outcome{scoring.Correct, scoring.Slow} {
		store := mastery.NewStore(mastery.Map{fact.New(6, 7): almost})
		res, err := u.ApplyOutcome(store, 6, 7, outcome, fast)
		if err != nil {
			t.Fatalf("ApplyOutcome: %v", err)
		}
		if res.NewScore <= almost {
			t.Errorf("%s from %v: expected a strict gain, got %v", outcome, almost, res.NewScore)
		}
		if res.NewScore > 1 {
			t.Errorf("%s: score exceeded 1: %v", outcome, res.NewScore)
		}
	}
}

func TestApplyOutcome_Convergence(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())
	store := mastery.NewStore(nil)

	for i := 0; i < 200; i++ {
		res, _ := u.ApplyOutcome(store, 9, 9, scoring.Correct, fast)
		if res.NewScore > 1 {
			t.Fatalf("score exceeded 1: %v", res.NewScore)
		}
	}
	if got := store.Score(9, 9); got < 0.999 {
		t.Errorf("expected convergence toward 1, got %v", got)
	}

	for i := 0; i < 200; i++ {
		res, _ := u.ApplyOutcome(store, 9, 9, scoring.Wrong, fast)
		if res.NewScore < 0 {
			t.Fatalf("score below 0: %v", res.NewScore)
		}
	}
	if got := store.Score(9, 9); got > 0.001 {
		t.Errorf("expected convergence toward 0, got %v", got)
	}
}

func TestApplyOutcome_Rejects(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())
	store := mastery.NewStore(nil)

	if _, err := u.ApplyOutcome(store, 0, 5, scoring.Correct, fast); !errors.Is(err, scoring.ErrFactOutOfRange) {
		t.Errorf("expected ErrFactOutOfRange, got %v", err)
	}
	if _, err := u.ApplyOutcome(store, 2, 5, scoring.Outcome(0), fast); !errors.Is(err, scoring.ErrInvalidOutcome) {
		t.Errorf("expected ErrInvalidOutcome, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected store untouched, got %d entries", store.Len())
	}
}

func TestApplyOutcome_NegativeTimeIsFast(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())
	store := mastery.NewStore(nil)

	res, err := u.ApplyOutcome(store, 4, 5, scoring.Correct, -time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != scoring.Correct || res.ResponseTime != 0 {
		t.Errorf("expected fast correct with zero time, got %v %v", res.Outcome, res.ResponseTime)
	}
}

func TestNewReport(t *testing.T) {
	u := mustUpdater(t, scoring.DefaultPolicy())
	store := mastery.NewStore(mastery.Map{
		fact.New(7, 8): 0.75,
		fact.New(6, 9): 0.35,
	})

	var results []scoring.Result
	for _, step := range []struct {
		a, b    int
		outcome scoring.Outcome
	}{
		{7, 8, scoring.Correct},
		{6, 9, scoring.Wrong},
		{2, 3, scoring.Slow},
	} {
		res, err := u.ApplyOutcome(store, step.a, step.b, step.outcome, fast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		results = append(results, res)
	}

	report := scoring.NewReport(results)

	if report.Correct != 1 || report.Wrong != 1 || report.Slow != 1 {
		t.Errorf("unexpected tallies: %+v", report)
	}
	if len(report.Promotions) != 1 || report.Promotions[0].Fact.Key() != "7x8" {
		t.Errorf("expected 7x8 promotion, got %+v", report.Promotions)
	}
	if len(report.Regressions) != 1 || report.Regressions[0].Fact.Key() != "6x9" {
		t.Errorf("expected 6x9 regression, got %+v", report.Regressions)
	}
	if report.Items[0].Fact.Key() != "7x8" || report.Items[2].Fact.Key() != "2x3" {
		t.Error("expected items to keep answer order")
	}
	assertFloat(t, "accuracy", report.Accuracy(), 2.0/3.0)
}

func TestNewReport_Empty(t *testing.T) {
	report := scoring.NewReport(nil)

	if report.Items == nil || len(report.Items) != 0 {
		t.Error("expected empty, non-nil items")
	}
	if report.Accuracy() != 0 {
		t.Errorf("expected zero accuracy, got %v", report.Accuracy())
	}
}

func TestOutcome_JSONRoundTrip(t *testing.T) {
	var o scoring.Outcome
	if err := o.UnmarshalText([]byte("SLOW")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o != scoring.Slow {
		t.Errorf("expected SLOW, got %v", o)
	}
	if err := o.UnmarshalText([]byte("MAYBE")); !errors.Is(err, scoring.ErrInvalidOutcome) {
		t.Errorf("expected ErrInvalidOutcome, got %v", err)
	}
}
