package service

import (
	"fmt"
	"net/http"
)

// Error codes surfaced to API callers.
const (
	CodeServerMisconfigured = "SERVER_MISCONFIGURED"
	CodeMissingLocation     = "MISSING_LOCATION"
	CodeInvalidCoordinate   = "INVALID_COORDINATE"
	CodeUpstreamUnreachable = "UPSTREAM_UNREACHABLE"
)

// Sentinel errors for use with errors.Is. Returned errors carry the underlying cause.
var (
	ErrServerMisconfigured = &Error{Code: CodeServerMisconfigured, Status: http.StatusInternalServerError, Message: "Server misconfigured: missing OPENWEATHER_API_KEY"}
	ErrMissingLocation     = &Error{Code: CodeMissingLocation, Status: http.StatusBadRequest, Message: "city and state are required unless lat and lon are given"}
	ErrInvalidCoordinate   = &Error{Code: CodeInvalidCoordinate, Status: http.StatusBadRequest, Message: "Invalid lat/lon"}
	ErrUpstreamUnreachable = &Error{Code: CodeUpstreamUnreachable, Status: http.StatusInternalServerError, Message: "Failed to fetch data"}
)

// Error is a lookup failure the proxy reports itself, as opposed to an upstream
// response it relays.
type Error struct {
	Code    string // Stable machine-readable code
	Status  int    // HTTP status for the caller
	Message string // Human-readable message
	Err     error  // Underlying cause, not shown to callers
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// wrap returns a copy of e carrying cause.
func (e *Error) wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}
