package split

import "errors"

// Common errors
var (
	ErrNoParticipants     = errors.New("bill has no participants")
	ErrInconsistentTotals = errors.New("settlement shares do not add up to the bill total")
)
