package service

import "errors"

// Client-side failure taxonomy. Every mutation failure surfaced to a UI
// caller wraps exactly one of these, so callers can switch on errors.Is
// without knowing the transport.
var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrNoteNotFound    = errors.New("note not found")
	ErrRejected        = errors.New("request rejected")
	ErrUnavailable     = errors.New("note store unavailable")

	// ErrAlreadyPending reports that a delete request hit a note whose
	// grace-period timer is already running; the timer has been restarted.
	ErrAlreadyPending = errors.New("deletion already pending")

	// ErrNotPending reports an undo for a note that is not in the
	// pending-deletion state (never requested, already undone, or already
	// committed).
	ErrNotPending = errors.New("no pending deletion for note")
)

// Server-side validation and auth errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrTitleRequired       = errors.New("note title is required")
	ErrWrongPassword       = errors.New("wrong password")
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrSummarizerDisabled  = errors.New("summarizer is not configured")
)
