// Package errs carries a typed error kind through the call stack so that
// callers branch on Kind and Reason, never on message text. The HTTP layer
// is the only place a Kind becomes a status code.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport boundary.
type Kind int

const (
	// KindUnknown covers anything not produced by this package.
	KindUnknown Kind = iota
	// KindValidation is a malformed or out-of-range input; never retried.
	KindValidation
	// KindAuth means the request carries no usable identity.
	KindAuth
	// KindForbidden means the identity is known but not permitted.
	KindForbidden
	// KindNotFound means the referenced entity does not exist.
	KindNotFound
	// KindConflict is the expected outcome of losing a concurrency race;
	// the caller should refetch and, if still applicable, resubmit.
	KindConflict
	// KindTransient is a storage or network failure, safe to retry.
	KindTransient
)

// Machine-readable reasons surfaced to clients so the UI can distinguish
// "someone else just picked that player" from "it isn't your turn yet".
const (
	ReasonInvalidInput         = "INVALID_INPUT"
	ReasonInvalidStatus        = "INVALID_STATUS"
	ReasonInvalidTransition    = "INVALID_TRANSITION"
	ReasonParticipantsNotReady = "PARTICIPANTS_NOT_READY"
	ReasonNotCommissioner      = "NOT_COMMISSIONER"
	ReasonNotLive              = "NOT_LIVE"
	ReasonDraftComplete        = "DRAFT_COMPLETE"
	ReasonNotOnClock           = "NOT_ON_CLOCK"
	ReasonPlayerUnavailable    = "PLAYER_UNAVAILABLE"
	ReasonTurnTaken            = "TURN_TAKEN"
	ReasonStatusChanged        = "STATUS_CHANGED"
	ReasonUnauthenticated      = "UNAUTHENTICATED"
	ReasonNotFound             = "NOT_FOUND"
	ReasonStorage              = "STORAGE_FAILURE"
)

// Error is a kinded error with a stable reason token.
type Error struct {
	Kind   Kind
	Reason string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a KindValidation error.
func Validation(reason, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

// Auth builds a KindAuth error.
func Auth(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Reason: ReasonUnauthenticated, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden error.
func Forbidden(reason, format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Reason: ReasonNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(reason, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

// Transient wraps a storage or network failure.
func Transient(err error, format string, args ...any) *Error {
	return &Error{Kind: KindTransient, Reason: ReasonStorage, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ReasonOf extracts the stable reason token from err, or "".
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
