package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyDescription is returned when an ingested record has no description
// text after field aliasing. Such records are never staged, parsed or scored.
var ErrEmptyDescription = errors.New("job description is required")

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// DimensionError reports two vectors of unequal length being compared.
// Mismatches are fatal for that comparison; vectors are never truncated or
// padded to fit.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: %d vs %d", e.Want, e.Got)
}
