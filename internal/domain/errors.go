package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrMissingToken indicates the catalog bearer token is not configured.
	// Raised at client construction, before any network attempt.
	ErrMissingToken = errors.New("catalog bearer token is not configured")

	// ErrNotFound indicates the requested content is not in the cache
	ErrNotFound = errors.New("content not found")
)

// FailureKind classifies a catalog fetch failure
type FailureKind int

const (
	FailureOther FailureKind = iota
	FailureTimeout
	FailureStatus
)

// FetchError is a failed catalog request. Callers use the Kind to decide
// between stale fallback and an error banner.
type FetchError struct {
	Kind       FailureKind
	StatusCode int // Set when Kind == FailureStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureTimeout:
		return fmt.Sprintf("catalog request timed out: %v", e.Err)
	case FailureStatus:
		return fmt.Sprintf("catalog request failed with status %d", e.StatusCode)
	default:
		return fmt.Sprintf("catalog request failed: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError unwraps err to a *FetchError if there is one in the chain
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
