package practicesession

import (
	"math/rand"
	"sort"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
)

// Planner picks the facts for a session. It only reads the mastery store.
// A Planner is not safe for concurrent use; its random source is unsynchronized.
type Planner struct {
	rng *rand.Rand
}

// NewPlanner returns a Planner whose shuffles are fully determined by seed.
func NewPlanner(seed int64) *Planner {
	return &Planner{rng: rand.New(rand.NewSource(seed))}
}

type candidate struct {
	fact  fact.Fact
	kind  ProblemType
	focus bool
	score float64
}

// Build plans one session:
//
//  1. every non-mastered fact of a focus table becomes REPAIR;
//  2. every recorded GAP fact becomes REPAIR;
//  3. every recorded LEARNING fact becomes REINFORCE;
//  4. if still short, MAINTENANCE facts are drawn from the unused facts of cfg.Range.
//
// No fact appears twice. When there are more candidates than cfg.SessionSize,
// MAINTENANCE is dropped first, then REINFORCE; REPAIR goes last, focus facts
// and the weakest facts surviving longest. The result is shuffled for
// presentation and holds exactly SessionSize problems unless the range runs
// out of distinct facts.
func (p *Planner) Build(store *mastery.Store, cfg SessionConfig) []Problem {
	cfg = cfg.normalized()
	if cfg.SessionSize <= 0 {
		return []Problem{}
	}

	seen := make(map[fact.Fact]bool)
	var repair, reinforce []candidate

	for _, f := range p.focusFacts(store, cfg) {
		seen[f.fact] = true
		repair = append(repair, f)
	}

	for _, e := range store.Known() {
		if seen[e.Fact] {
			continue
		}
		switch e.Level {
		case mastery.Gap:
			repair = append(repair, candidate{fact: e.Fact, kind: Repair, score: e.Score})
		case mastery.Learning:
			reinforce = append(reinforce, candidate{fact: e.Fact, kind: Reinforce, score: e.Score})
		default:
			continue
		}
		seen[e.Fact] = true
	}

	p.rank(repair)
	p.rank(reinforce)

	// The range is clamped to the table, so this bounds the allocation even
	// when SessionSize is huge.
	selected := make([]candidate, 0, min(cfg.SessionSize, len(repair)+len(reinforce)+cfg.Range.Count()))
	selected = appendUpTo(selected, repair, cfg.SessionSize)
	selected = appendUpTo(selected, reinforce, cfg.SessionSize)

	if short := cfg.SessionSize - len(selected); short > 0 {
		selected = appendUpTo(selected, p.backfill(cfg.Range, seen, short), cfg.SessionSize)
	}

	p.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	problems := make([]Problem, len(selected))
	for i, c := range selected {
		problems[i] = newProblem(c.fact, p.rng.Intn(2) == 1, p.missingSlot(cfg.MissingSlotPolicy), c.kind)
	}
	return problems
}

// focusFacts expands each in-range focus factor into its non-mastered facts.
func (p *Planner) focusFacts(store *mastery.Store, cfg SessionConfig) []candidate {
	var out []candidate
	added := make(map[fact.Fact]bool)
	for _, factor := range cfg.FocusFactors {
		if !cfg.Range.Contains(factor) {
			continue
		}
		for partner := cfg.Range.Min; partner <= cfg.Range.Max; partner++ {
			f := fact.New(factor, partner)
			if added[f] {
				continue
			}
			score := store.Score(f.Low, f.High)
			if mastery.Classify(score) == mastery.Mastered {
				continue
			}
			added[f] = true
			out = append(out, candidate{fact: f, kind: Repair, focus: true, score: score})
		}
	}
	return out
}

// rank shuffles ties away, then orders focus facts first and weakest first.
func (p *Planner) rank(cs []candidate) {
	p.rng.Shuffle(len(cs), func(i, j int) {
		cs[i], cs[j] = cs[j], cs[i]
	})
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].focus != cs[j].focus {
			return cs[i].focus
		}
		return cs[i].score < cs[j].score
	})
}

// backfill enumerates the unused facts of r directly, so a session larger
// than the range simply comes back short instead of retrying forever.
func (p *Planner) backfill(r fact.Range, seen map[fact.Fact]bool, n int) []candidate {
	var pool []candidate
	for _, f := range r.Facts() {
		if seen[f] {
			continue
		}
		pool = append(pool, candidate{fact: f, kind: Maintenance})
	}
	p.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	for _, c := range pool {
		seen[c.fact] = true
	}
	return pool
}

func (p *Planner) missingSlot(policy SlotPolicy) MissingSlot {
	switch policy {
	case SlotAlwaysProduct:
		return MissingProduct
	case SlotAlwaysFactor:
		if p.rng.Intn(2) == 0 {
			return MissingLeft
		}
		return MissingRight
	case SlotRandom:
		return [...]MissingSlot{MissingProduct, MissingLeft, MissingRight}[p.rng.Intn(3)]
	default:
		return MissingNone
	}
}

func appendUpTo(dst, src []candidate, limit int) []candidate {
	room := limit - len(dst)
	if room <= 0 {
		return dst
	}
	if len(src) > room {
		src = src[:room]
	}
	return append(dst, src...)
}
