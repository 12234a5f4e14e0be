// Package fact models a single multiplication/division fact: an unordered
// pair of factors keyed by its canonical "AxB" string.
package fact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidKey = errors.New("fact: invalid key")

// Fact is an unordered factor pair stored with Low <= High.
// Always build one through New so the same fact never ends up under two keys.
type Fact struct {
	Low  int
	High int
}

// New returns the canonical fact for the pair (a, b).
func New(a, b int) Fact {
	if a > b {
		a, b = b, a
	}
	return Fact{Low: a, High: b}
}

// Key returns the persisted form "${min}x${max}", e.g. "2x7".
func (f Fact) Key() string {
	return strconv.Itoa(f.Low) + "x" + strconv.Itoa(f.High)
}

func (f Fact) String() string {
	return f.Key()
}

// Product is computed on every call; products are never stored.
func (f Fact) Product() int {
	return f.Low * f.High
}

// Involves reports whether n is one of the two factors.
func (f Fact) Involves(n int) bool {
	return f.Low == n || f.High == n
}

// MarshalText implements encoding.TextMarshaler so facts can be map keys in JSON.
func (f Fact) MarshalText() ([]byte, error) {
	return []byte(f.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fact) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseKey parses "AxB" (either order) into its canonical fact.
func ParseKey(s string) (Fact, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Fact{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	a, err := strconv.Atoi(left)
	if err != nil {
		return Fact{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	b, err := strconv.Atoi(right)
	if err != nil {
		return Fact{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return New(a, b), nil
}
