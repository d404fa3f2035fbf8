package kindling

import "errors"

// Sentinel errors for the kindling package.
// Use errors.Is to check: errors.Is(err, kindling.ErrInvalidOutcome)
var (
	ErrInvalidOutcome = errors.New("kindling: invalid outcome")
	ErrEmptyField     = errors.New("kindling: empty identity field")
	ErrCorruptRecord  = errors.New("kindling: corrupt snapshot record")
)
