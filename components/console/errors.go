package console

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized marks collaborator responses rejected with HTTP 401.
	ErrUnauthorized = errors.New("console: unauthorized")
	// ErrStaleResponse marks a fetch result whose generation is no longer current.
	ErrStaleResponse = errors.New("console: stale response")
	// ErrUnknownSection is returned for section ids outside the catalog.
	ErrUnknownSection = errors.New("console: unknown section")
	// ErrInvalidCriteria wraps criteria rejected by a CriteriaValidator.
	ErrInvalidCriteria = errors.New("console: invalid filter criteria")
	// ErrNoSession is returned by SessionStorage when nothing has been persisted.
	ErrNoSession = errors.New("console: no persisted session")
	// ErrSessionDisposed is returned by mutations after Dispose.
	ErrSessionDisposed = errors.New("console: session store disposed")
)

const defaultAuthFailureMessage = "Invalid credentials"

// AuthFailure is the user-visible login error. Message is safe to render.
type AuthFailure struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *AuthFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("console: login failed: %s: %v", e.message(), e.Err)
	}
	return "console: login failed: " + e.message()
}

func (e *AuthFailure) Unwrap() error { return e.Err }

func (e *AuthFailure) message() string {
	if e.Message == "" {
		return defaultAuthFailureMessage
	}
	return e.Message
}

// UserMessage returns the text shown next to the login form.
func (e *AuthFailure) UserMessage() string { return e.message() }

// FetchFailure describes a failed slice fetch. It is logged, never surfaced to views.
type FetchFailure struct {
	Section SectionID
	Slice   string
	Err     error
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("console: fetch %s/%s: %v", e.Section, e.Slice, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err carries a 401 from a collaborator.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
