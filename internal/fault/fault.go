// internal/fault/fault.go
//
// Keepsake error taxonomy.
//
// Context
// -------
// Every domain error in the backend carries a Kind so the HTTP boundary can
// map it to a status code in exactly one place (internal/web).  Handlers,
// repositories, and the lifecycle manager wrap lower-level errors with one
// of the constructors below; nothing else in the codebase inspects raw
// driver errors.
//
// Kinds
// -----
//   - Validation  – required field missing or malformed at create time (400).
//   - NotFound    – target id absent from the expected store (404).
//   - Conflict    – uniqueness violation among active records (409).
//   - Upstream    – content generator or external search failed (500).
//   - Store       – underlying persistence failure (500).
//
// Notes
// -----
// • Constructors keep the %w chain intact, so errors.Is/As still work.
// • Oxford commas, two spaces after periods.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error for status mapping and logging.
type Kind int

const (
	// KindUnknown is the zero value; treated as a 500 at the boundary.
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUpstream
	KindStore
)

// Error is the single concrete error type used across the backend.
type Error struct {
	Kind Kind
	Msg  string // user-facing message; safe to serialize
	Err  error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

//
// constructors
//

// Validationf builds a 400-class error.  The message should name the
// missing or malformed field(s).
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a 404-class error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a 409-class error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Upstream wraps a failed generator or external-search call.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

// Store wraps a persistence failure.
func Store(msg string, err error) *Error {
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

//
// inspection
//

// KindOf extracts the Kind from err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound-class error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// Message returns the user-facing message for err.  Unknown errors get a
// generic message so internal detail never leaks to clients.
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Msg
	}
	return "internal server error"
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
