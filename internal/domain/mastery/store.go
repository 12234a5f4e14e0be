// Package mastery holds per-fact proficiency scores and the rules for
// reading them: classification, aggregation and heatmap cells.
//
// A Store is a plain in-memory structure with no locking. Callers that share
// one Store between goroutines must serialize access themselves.
package mastery

import (
	"math"
	"sort"

	"github.com/factdojo/backend/internal/domain/fact"
)

// Map is the raw fact → score mapping. Missing entries mean "never seen".
type Map map[fact.Fact]float64

// Entry is one recorded fact with its score.
type Entry struct {
	Fact  fact.Fact `json:"fact"`
	Score float64   `json:"score"`
	Level Level     `json:"level"`
}

// Store wraps an injected Map.
type Store struct {
	scores Map
}

// NewStore wraps m. A nil map starts an empty profile. Entries keyed by a
// non-canonical pair such as {7, 2} are moved to their canonical fact in
// place; when both orders are present the higher score wins.
func NewStore(m Map) *Store {
	if m == nil {
		m = make(Map)
	}
	var stray []fact.Fact
	for f := range m {
		if f != fact.New(f.Low, f.High) {
			stray = append(stray, f)
		}
	}
	for _, f := range stray {
		score := m[f]
		delete(m, f)
		c := fact.New(f.Low, f.High)
		if old, ok := m[c]; !ok || score > old {
			m[c] = score
		}
	}
	return &Store{scores: m}
}

// Score returns the stored score for (a, b) in either order.
// Unknown facts and factors outside fact.TableRange read as 0.
func (s *Store) Score(a, b int) float64 {
	f := fact.New(a, b)
	if !fact.TableRange.ContainsFact(f) {
		return 0
	}
	return s.scores[f]
}

// Level classifies the score of (a, b).
func (s *Store) Level(a, b int) Level {
	return Classify(s.Score(a, b))
}

// Has reports whether the fact has a recorded score.
func (s *Store) Has(f fact.Fact) bool {
	_, ok := s.scores[f]
	return ok
}

// Set records a score, clamped to [0,1]. Facts outside fact.TableRange are dropped.
// It reports whether the score was stored.
func (s *Store) Set(f fact.Fact, score float64) bool {
	if !fact.TableRange.ContainsFact(f) {
		return false
	}
	s.scores[f] = Clamp(score)
	return true
}

// Len returns the number of recorded facts.
func (s *Store) Len() int {
	return len(s.scores)
}

// Known returns every recorded entry inside fact.TableRange ordered by (Low, High).
func (s *Store) Known() []Entry {
	entries := make([]Entry, 0, len(s.scores))
	for f, score := range s.scores {
		if !fact.TableRange.ContainsFact(f) {
			continue
		}
		entries = append(entries, Entry{Fact: f, Score: score, Level: Classify(score)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return less(entries[i].Fact, entries[j].Fact)
	})
	return entries
}

// Snapshot returns a copy of the underlying map for persistence.
func (s *Store) Snapshot() Map {
	out := make(Map, len(s.scores))
	for f, score := range s.scores {
		out[f] = score
	}
	return out
}

// Reset forgets every recorded score.
func (s *Store) Reset() {
	clear(s.scores)
}

// Clamp bounds a score to [0,1]; NaN reads as 0.
func Clamp(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func less(a, b fact.Fact) bool {
	if a.Low != b.Low {
		return a.Low < b.Low
	}
	return a.High < b.High
}
