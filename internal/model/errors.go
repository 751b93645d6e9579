package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoFile is returned when an upload request carries no CV file.
var ErrNoFile = errors.New("no file provided")

// HTTPError wraps a non-2xx status from an outbound webhook call.
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
