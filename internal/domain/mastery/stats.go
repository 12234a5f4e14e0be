package mastery

import "github.com/factdojo/backend/internal/domain/fact"

// Stats summarizes a fact square. Every distinct fact is counted once.
type Stats struct {
	Range     fact.Range `json:"range"`
	Total     int        `json:"total"`
	Mastered  int        `json:"mastered"`
	Learning  int        `json:"learning"`
	Gaps      int        `json:"gaps"`
	MeanScore float64    `json:"mean_score"`
}

// Cell is one square of the dashboard grid. (a,b) and (b,a) share the same fact.
type Cell struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Fact  string  `json:"fact"`
	Score float64 `json:"score"`
	Level Level   `json:"level"`
}

// Aggregate buckets every distinct fact of r. Never-seen facts count as gaps
// with score 0.
func (s *Store) Aggregate(r fact.Range) Stats {
	stats := Stats{Range: r}
	facts := r.Facts()
	if len(facts) == 0 {
		return stats
	}

	var sum float64
	for _, f := range facts {
		score := s.Score(f.Low, f.High)
		sum += score
		switch Classify(score) {
		case Mastered:
			stats.Mastered++
		case Learning:
			stats.Learning++
		default:
			stats.Gaps++
		}
	}
	stats.Total = len(facts)
	stats.MeanScore = sum / float64(len(facts))
	return stats
}

// Heatmap returns the full row × column grid of r.
func (s *Store) Heatmap(r fact.Range) []Cell {
	if !r.Valid() {
		return nil
	}
	n := r.Max - r.Min + 1
	cells := make([]Cell, 0, n*n)
	for row := r.Min; row <= r.Max; row++ {
		for col := r.Min; col <= r.Max; col++ {
			score := s.Score(row, col)
			cells = append(cells, Cell{
				Row:   row,
				Col:   col,
				Fact:  fact.New(row, col).Key(),
				Score: score,
				Level: Classify(score),
			})
		}
	}
	return cells
}
