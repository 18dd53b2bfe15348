package grobid

import (
	"errors"
	"fmt"
)

// Common errors returned by the GROBID client.
var (
	// ErrUnavailable indicates the service could not be reached.
	ErrUnavailable = errors.New("GROBID service unavailable")

	// ErrInvalidResponse indicates the service returned something that
	// could not be parsed as a TEI document.
	ErrInvalidResponse = errors.New("invalid response from GROBID")
)

// APIError represents a non-2xx response from the GROBID API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GROBID API error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnavailable reports whether err means the service cannot be used
// right now. Callers treat this as "no primary result", not a failure.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 503
	}
	return false
}
