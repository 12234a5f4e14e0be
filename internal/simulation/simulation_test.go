package simulation_test

import (
	"testing"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/simulation"
)

func smallConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Learners = 4
	cfg.Rounds = 40
	cfg.Workers = 2
	return cfg
}

func TestRun_Deterministic(t *testing.T) {
	a, err := simulation.Run(smallConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := simulation.Run(smallConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(a.Rounds) != len(b.Rounds) {
		t.Fatalf("round counts differ: %d vs %d", len(a.Rounds), len(b.Rounds))
	}
	for i := range a.Rounds {
		if a.Rounds[i] != b.Rounds[i] {
			t.Fatalf("round %d differs: %+v vs %+v", i+1, a.Rounds[i], b.Rounds[i])
		}
	}
}

func TestRun_LearnersImprove(t *testing.T) {
	res, err := simulation.Run(smallConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Total != fact.DrillRange.Count() {
		t.Errorf("expected %d facts, got %d", fact.DrillRange.Count(), res.Total)
	}

	first, last := res.Rounds[0], res.Rounds[len(res.Rounds)-1]
	if last.MeanScore <= first.MeanScore {
		t.Errorf("expected mean score to grow, got %v -> %v", first.MeanScore, last.MeanScore)
	}
	if last.Mastered <= first.Mastered {
		t.Errorf("expected more mastered facts, got %v -> %v", first.Mastered, last.Mastered)
	}

	for _, rs := range res.Rounds {
		sum := rs.Mastered + rs.Learning + rs.Gaps
		if sum < float64(res.Total)-1e-9 || sum > float64(res.Total)+1e-9 {
			t.Errorf("round %d: buckets sum to %v, want %d", rs.Round, sum, res.Total)
		}
	}
}

func TestRoundsToMastery(t *testing.T) {
	res := simulation.Result{
		Total: 10,
		Rounds: []simulation.RoundStats{
			{Round: 1, Mastered: 2},
			{Round: 2, Mastered: 5},
			{Round: 3, Mastered: 9},
		},
	}

	if got := res.RoundsToMastery(0.5); got != 2 {
		t.Errorf("expected round 2, got %d", got)
	}
	if got := res.RoundsToMastery(1); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}

func TestRun_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *simulation.Config)
	}{
		{"no learners", func(c *simulation.Config) { c.Learners = 0 }},
		{"no rounds", func(c *simulation.Config) { c.Rounds = 0 }},
		{"no problems", func(c *simulation.Config) { c.SessionSize = 0 }},
		{"recall above one", func(c *simulation.Config) { c.InitialRecall = 1.5 }},
		{"bad policy", func(c *simulation.Config) { c.Policy.FastThreshold = 0 }},
	}

	for _, tt := range tests {
		cfg := simulation.DefaultConfig()
		tt.mutate(&cfg)
		if _, err := simulation.Run(cfg); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
