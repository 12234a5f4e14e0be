package practicesession

import "github.com/factdojo/backend/internal/domain/fact"

// DefaultSessionSize is the number of problems in a session when none is given.
const DefaultSessionSize = 10

// SlotPolicy decides which slot of a problem is hidden.
type SlotPolicy string

const (
	SlotNone          SlotPolicy = "NONE"           // plain "a × b = ?"
	SlotRandom        SlotPolicy = "RANDOM"         // product, left or right
	SlotAlwaysProduct SlotPolicy = "ALWAYS_PRODUCT" // hide the product
	SlotAlwaysFactor  SlotPolicy = "ALWAYS_FACTOR"  // hide one factor
)

// IsValid reports whether p is a known policy. The empty policy is valid and means SlotNone.
func (p SlotPolicy) IsValid() bool {
	switch p {
	case "", SlotNone, SlotRandom, SlotAlwaysProduct, SlotAlwaysFactor:
		return true
	}
	return false
}

// SessionConfig holds the knobs for planning one session.
type SessionConfig struct {
	SessionSize       int        // <= 0 yields an empty session
	FocusFactors      []int      // tables to force in; out-of-range values are ignored
	MissingSlotPolicy SlotPolicy // empty = SlotNone
	Range             fact.Range // zero = fact.DrillRange; clamped to fact.TableRange
}

// DefaultConfig returns a ten-problem multiplication session over fact.DrillRange.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		SessionSize:       DefaultSessionSize,
		FocusFactors:      nil,
		MissingSlotPolicy: SlotNone,
		Range:             fact.DrillRange,
	}
}

func (c SessionConfig) normalized() SessionConfig {
	if c.Range == (fact.Range{}) {
		c.Range = fact.DrillRange
	}
	// Facts outside the table can never be scored.
	c.Range.Min = max(c.Range.Min, fact.TableRange.Min)
	c.Range.Max = min(c.Range.Max, fact.TableRange.Max)
	if !c.Range.Valid() {
		c.Range = fact.DrillRange
	}
	if !c.MissingSlotPolicy.IsValid() || c.MissingSlotPolicy == "" {
		c.MissingSlotPolicy = SlotNone
	}
	return c
}
