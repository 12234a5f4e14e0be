package mastery_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  mastery.Level
	}{
		{1.0, mastery.Mastered},
		{0.8, mastery.Mastered},
		{0.79999, mastery.Learning},
		{0.3, mastery.Learning},
		{0.29999, mastery.Gap},
		{0.0, mastery.Gap},
	}

	for _, tt := range tests {
		if got := mastery.Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestScore_Canonicalization(t *testing.T) {
	store := mastery.NewStore(mastery.Map{fact.New(2, 7): 0.4})

	for a := -2; a <= 12; a++ {
		for b := -2; b <= 12; b++ {
			if store.Score(a, b) != store.Score(b, a) {
				t.Fatalf("Score(%d,%d) != Score(%d,%d)", a, b, b, a)
			}
		}
	}

	if got := store.Score(7, 2); got != 0.4 {
		t.Errorf("expected 0.4, got %v", got)
	}
}

func TestNewStore_CanonicalizesInjectedKeys(t *testing.T) {
	store := mastery.NewStore(mastery.Map{
		{Low: 7, High: 2}: 0.1,
		{Low: 9, High: 3}: 0.6,
		fact.New(3, 9):    0.2,
	})

	if got := store.Score(2, 7); got != 0.1 {
		t.Errorf("expected 0.1 for 2x7, got %v", got)
	}
	if got := store.Score(3, 9); got != 0.6 {
		t.Errorf("expected the higher score 0.6 for 3x9, got %v", got)
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", store.Len())
	}
	for _, e := range store.Known() {
		if e.Fact != fact.New(e.Fact.Low, e.Fact.High) {
			t.Errorf("Known returned non-canonical fact %+v", e.Fact)
		}
	}
}

func TestScore_AbsentAndOutOfRange(t *testing.T) {
	store := mastery.NewStore(nil)

	if got := store.Score(3, 4); got != 0 {
		t.Errorf("expected 0 for an absent fact, got %v", got)
	}
	if got := store.Score(-1, 400); got != 0 {
		t.Errorf("expected 0 for out-of-range factors, got %v", got)
	}
	if got := store.Level(0, 11); got != mastery.Gap {
		t.Errorf("expected GAP for out-of-range factors, got %v", got)
	}
}

func TestSet_ClampsAndRejectsOutOfRange(t *testing.T) {
	store := mastery.NewStore(nil)

	store.Set(fact.New(3, 4), 1.7)
	if got := store.Score(3, 4); got != 1 {
		t.Errorf("expected clamp to 1, got %v", got)
	}

	store.Set(fact.New(3, 5), -0.2)
	if got := store.Score(3, 5); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}

	store.Set(fact.New(3, 6), math.NaN())
	if got := store.Score(3, 6); got != 0 {
		t.Errorf("expected NaN to read as 0, got %v", got)
	}

	if store.Set(fact.New(11, 2), 0.5) {
		t.Error("expected out-of-range fact to be rejected")
	}
	if store.Len() != 3 {
		t.Errorf("expected 3 stored facts, got %d", store.Len())
	}
}

func TestAggregate_CountsEachFactOnce(t *testing.T) {
	store := mastery.NewStore(mastery.Map{
		fact.New(2, 2): 0.9,
		fact.New(7, 8): 0.5,
		fact.New(3, 9): 0.1,
		fact.New(1, 10): 1.0, // outside 2..9
	})

	stats := store.Aggregate(fact.DrillRange)

	if stats.Total != 36 {
		t.Errorf("expected 36 total facts, got %d", stats.Total)
	}
	if stats.Mastered != 1 {
		t.Errorf("expected 1 mastered, got %d", stats.Mastered)
	}
	if stats.Learning != 1 {
		t.Errorf("expected 1 learning, got %d", stats.Learning)
	}
	if stats.Gaps != 34 {
		t.Errorf("expected 34 gaps, got %d", stats.Gaps)
	}
	if stats.Mastered+stats.Learning+stats.Gaps != stats.Total {
		t.Error("expected buckets to sum to total")
	}

	wantMean := (0.9 + 0.5 + 0.1) / 36
	if math.Abs(stats.MeanScore-wantMean) > 1e-9 {
		t.Errorf("expected mean %v, got %v", wantMean, stats.MeanScore)
	}
}

func TestAggregate_TableRange(t *testing.T) {
	stats := mastery.NewStore(nil).Aggregate(fact.TableRange)

	if stats.Total != 55 || stats.Gaps != 55 {
		t.Errorf("expected 55 gaps of 55, got %d of %d", stats.Gaps, stats.Total)
	}
}

func TestAggregate_InvalidRange(t *testing.T) {
	stats := mastery.NewStore(nil).Aggregate(fact.Range{Min: 9, Max: 2})

	if stats.Total != 0 || stats.MeanScore != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestHeatmap_SymmetricCells(t *testing.T) {
	store := mastery.NewStore(mastery.Map{fact.New(7, 8): 0.75})
	cells := store.Heatmap(fact.DrillRange)

	if len(cells) != 64 {
		t.Fatalf("expected 64 cells, got %d", len(cells))
	}

	var hits int
	for _, c := range cells {
		if c.Fact == "7x8" {
			hits++
			if c.Score != 0.75 || c.Level != mastery.Learning {
				t.Errorf("unexpected cell %+v", c)
			}
		}
	}
	if hits != 2 {
		t.Errorf("expected 7x8 to appear as two cells, got %d", hits)
	}
}

func TestKnown_Sorted(t *testing.T) {
	store := mastery.NewStore(mastery.Map{
		fact.New(9, 9): 0.2,
		fact.New(2, 5): 0.6,
		fact.New(2, 3): 0.9,
	})

	known := store.Known()
	want := []string{"2x3", "2x5", "9x9"}
	if len(known) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(known))
	}
	for i, e := range known {
		if e.Fact.Key() != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], e.Fact.Key())
		}
	}
	if known[2].Level != mastery.Gap {
		t.Errorf("expected 9x9 to be GAP, got %v", known[2].Level)
	}
}

func TestSnapshotAndReset(t *testing.T) {
	store := mastery.NewStore(mastery.Map{fact.New(4, 6): 0.5})

	snap := store.Snapshot()
	store.Reset()

	if store.Len() != 0 {
		t.Errorf("expected empty store after reset, got %d", store.Len())
	}
	if snap[fact.New(4, 6)] != 0.5 {
		t.Error("expected snapshot to survive reset")
	}
}

func TestLevel_JSON(t *testing.T) {
	data, err := json.Marshal(mastery.Mastered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"MASTERED"` {
		t.Errorf("expected \"MASTERED\", got %s", data)
	}

	var l mastery.Level
	if err := json.Unmarshal([]byte(`"LEARNING"`), &l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l != mastery.Learning {
		t.Errorf("expected LEARNING, got %v", l)
	}

	if err := json.Unmarshal([]byte(`"EXPERT"`), &l); err == nil {
		t.Error("expected error for unknown level")
	}
}
