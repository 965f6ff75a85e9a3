package kdf

import "errors"

// Derivation errors. All failures returned by this package wrap one of
// these sentinels, so callers can classify with errors.Is.
var (
	// ErrInvalidPRF indicates the PRF digest length is zero or exceeds
	// MaxBlockLen, or the PRF implementation failed to key or compute.
	ErrInvalidPRF = errors.New("invalid PRF")

	// ErrInvalidIterationCount indicates an iteration count below 1.
	ErrInvalidIterationCount = errors.New("invalid iteration count")

	// ErrInvalidDerivedKeyLength indicates a requested key length below 1.
	ErrInvalidDerivedKeyLength = errors.New("invalid derived key length")

	// ErrDerivedKeyTooLong indicates a requested key length above
	// (2^32 - 1) * hLen octets.
	ErrDerivedKeyTooLong = errors.New("derived key too long")
)
