package fact

// Range bounds the factors of a fact family, inclusive on both ends.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var (
	// DrillRange is used for planner partners, backfill and the default dashboard square.
	DrillRange = Range{Min: 2, Max: 9}
	// TableRange is the widest surface; scores outside it are never stored.
	TableRange = Range{Min: 1, Max: 10}
)

// Valid reports whether the range holds at least one factor.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// ContainsFact reports whether both factors lie in the range.
func (r Range) ContainsFact(f Fact) bool {
	return r.Contains(f.Low) && r.Contains(f.High)
}

// Count is the number of distinct facts in the range, squares included.
func (r Range) Count() int {
	if !r.Valid() {
		return 0
	}
	n := r.Max - r.Min + 1
	return n * (n + 1) / 2
}

// Facts enumerates every distinct fact once, ordered by (Low, High).
func (r Range) Facts() []Fact {
	if !r.Valid() {
		return nil
	}
	facts := make([]Fact, 0, r.Count())
	for a := r.Min; a <= r.Max; a++ {
		for b := a; b <= r.Max; b++ {
			facts = append(facts, Fact{Low: a, High: b})
		}
	}
	return facts
}
