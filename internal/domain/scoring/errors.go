package scoring

import "errors"

var (
	ErrInvalidPolicy  = errors.New("scoring: invalid policy")
	ErrInvalidOutcome = errors.New("scoring: invalid outcome")
	ErrFactOutOfRange = errors.New("scoring: fact out of range")
)
