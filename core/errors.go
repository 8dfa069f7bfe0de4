package core

import "errors"

// Construction and lookup errors. They are wrapped with context, match them with errors.Is.
var (
	ErrEmptyTable       = errors.New("performance table has no alternatives")
	ErrRaggedTable      = errors.New("alternatives have different numbers of performances")
	ErrNonFinite        = errors.New("performance must be finite")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrCountMismatch    = errors.New("count does not match the number of criteria")
	ErrInvalidWeight    = errors.New("weight must be finite and non-negative")
	ErrZeroWeights      = errors.New("weights sum to zero")
	ErrUnknownCriterion = errors.New("unknown criterion")
	ErrUnknownAlt       = errors.New("unknown alternative")
	ErrVerifyFailed     = errors.New("fast flows deviate from the pairwise reference")
)
