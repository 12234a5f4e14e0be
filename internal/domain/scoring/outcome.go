package scoring

import (
	"encoding"
	"encoding/json"
	"fmt"
	"time"
)

// Outcome is how a single answer went.
type Outcome int

const (
	Correct Outcome = iota + 1 // right answer
	Wrong                      // wrong answer or no answer
	Slow                       // right answer past the fast threshold
)

var (
	outcomeNames  = [...]string{Correct: "CORRECT", Wrong: "WRONG", Slow: "SLOW"}
	outcomeByName = map[string]Outcome{
		"CORRECT": Correct,
		"WRONG":   Wrong,
		"SLOW":    Slow,
	}
)

var (
	_ fmt.Stringer             = Outcome(0)
	_ json.Marshaler           = Outcome(0)
	_ json.Unmarshaler         = (*Outcome)(nil)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// IsValid reports whether o is Correct, Wrong or Slow.
func (o Outcome) IsValid() bool {
	return o >= Correct && o <= Slow
}

// Effective downgrades a Correct answer to Slow when it took too long.
func (o Outcome) Effective(p Policy, responseTime time.Duration) Outcome {
	if o == Correct && !p.IsFast(responseTime) {
		return Slow
	}
	return o
}

func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	return []byte(outcomeNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, ok := outcomeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, text)
	}
	*o = v
	return nil
}

// MarshalJSON implements json.Marshaler. Outcome serializes as a JSON string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	text, err := o.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOutcome, data)
	}
	return o.UnmarshalText([]byte(s))
}
