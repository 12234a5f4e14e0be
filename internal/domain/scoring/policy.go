// Package scoring turns one answered problem into a new mastery score.
//
// The whole difficulty curve lives in Policy:
//
//	correct, fast:  new = old + (1-old) * CorrectFast
//	correct, slow:  new = old + (1-old) * CorrectSlow
//	wrong:          new = old * Wrong
//
// With the defaults a fresh fact needs five fast answers to cross the 0.8
// mastery line (0.3, 0.51, 0.657, 0.76, 0.832) and one miss halves it.
package scoring

import (
	"fmt"
	"time"
)

// Default tuning constants.
const (
	DefaultFastThreshold = 3 * time.Second
	DefaultCorrectFast   = 0.30
	DefaultCorrectSlow   = 0.10
	DefaultWrong         = 0.50
)

// Policy holds the reward/decay rates.
type Policy struct {
	FastThreshold time.Duration `json:"fast_threshold"` // answers at or above this are slow
	CorrectFast   float64       `json:"correct_fast"`   // share of the remaining gap closed by a fast answer
	CorrectSlow   float64       `json:"correct_slow"`   // same for a slow answer, smaller than CorrectFast
	Wrong         float64       `json:"wrong"`          // multiplier kept after a miss, below 1
}

// DefaultPolicy returns the documented default curve.
func DefaultPolicy() Policy {
	return Policy{
		FastThreshold: DefaultFastThreshold,
		CorrectFast:   DefaultCorrectFast,
		CorrectSlow:   DefaultCorrectSlow,
		Wrong:         DefaultWrong,
	}
}

// Validate checks 0 < CorrectSlow < CorrectFast <= 1, 0 <= Wrong < 1 and a positive threshold.
func (p Policy) Validate() error {
	if p.FastThreshold <= 0 {
		return fmt.Errorf("%w: fast threshold %v must be positive", ErrInvalidPolicy, p.FastThreshold)
	}
	if p.CorrectFast <= 0 || p.CorrectFast > 1 {
		return fmt.Errorf("%w: correct_fast %f out of range (0, 1]", ErrInvalidPolicy, p.CorrectFast)
	}
	if p.CorrectSlow <= 0 || p.CorrectSlow >= p.CorrectFast {
		return fmt.Errorf("%w: correct_slow %f must be in (0, correct_fast)", ErrInvalidPolicy, p.CorrectSlow)
	}
	if p.Wrong < 0 || p.Wrong >= 1 {
		return fmt.Errorf("%w: wrong %f out of range [0, 1)", ErrInvalidPolicy, p.Wrong)
	}
	return nil
}

// IsFast reports whether a correct answer given after d counts as fast.
func (p Policy) IsFast(d time.Duration) bool {
	return d < p.FastThreshold
}

// Next computes the score that follows old for the given outcome and timing.
// The outcome must be valid; the result is clamped to [0,1].
func (p Policy) Next(old float64, outcome Outcome, responseTime time.Duration) float64 {
	var next float64
	switch outcome.Effective(p, responseTime) {
	case Correct:
		next = grow(old, p.CorrectFast)
	case Slow:
		next = grow(old, p.CorrectSlow)
	case Wrong:
		next = old * p.Wrong
	default:
		next = old
	}
	return clamp(next)
}

// grow closes share of the gap to 1. Within an ulp of 1 the step rounds
// away, so the score snaps to 1 to keep every correct answer a strict gain.
func grow(old, share float64) float64 {
	next := old + (1-old)*share
	if next <= old && old < 1 {
		return 1
	}
	return next
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
