package mastery

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
)

// Classification thresholds. Every surface that shows or selects on mastery
// goes through Classify so these stay the single source of truth.
const (
	MasteredThreshold = 0.8
	LearningThreshold = 0.3
)

var ErrInvalidLevel = errors.New("mastery: invalid level")

// Level is the bucket a mastery score falls into.
type Level int

const (
	Gap      Level = iota + 1 // score < 0.3, or never seen
	Learning                  // 0.3 <= score < 0.8
	Mastered                  // score >= 0.8
)

var (
	levelNames  = [...]string{Gap: "GAP", Learning: "LEARNING", Mastered: "MASTERED"}
	levelByName = map[string]Level{
		"GAP":      Gap,
		"LEARNING": Learning,
		"MASTERED": Mastered,
	}
)

var (
	_ fmt.Stringer             = Level(0)
	_ json.Marshaler           = Level(0)
	_ json.Unmarshaler         = (*Level)(nil)
	_ encoding.TextMarshaler   = Level(0)
	_ encoding.TextUnmarshaler = (*Level)(nil)
)

// Classify maps a score onto its Level.
func Classify(score float64) Level {
	switch {
	case score >= MasteredThreshold:
		return Mastered
	case score >= LearningThreshold:
		return Learning
	default:
		return Gap
	}
}

// IsValid reports whether l is one of Gap, Learning or Mastered.
func (l Level) IsValid() bool {
	return l >= Gap && l <= Mastered
}

func (l Level) String() string {
	if l.IsValid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	v, ok := levelByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, text)
	}
	*l = v
	return nil
}

// MarshalJSON implements json.Marshaler. Level serializes as a JSON string.
func (l Level) MarshalJSON() ([]byte, error) {
	text, err := l.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, data)
	}
	return l.UnmarshalText([]byte(s))
}
