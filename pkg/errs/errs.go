// Package errs defines the error taxonomy shared by every layer of the client.
//
// Each failure is an [*Error] tagged with one of the sentinel kinds, so callers
// can branch with errors.Is:
//
//	if errors.Is(err, errs.ErrValidation) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds.
var (
	// ErrConfig reports missing or invalid construction arguments.
	ErrConfig = errors.New("config error")
	// ErrValidation reports malformed request parameters.
	ErrValidation = errors.New("validation error")
	// ErrTransport reports a non-success HTTP status or an undecodable reply.
	ErrTransport = errors.New("transport error")
	// ErrParse reports reply content that could not be parsed as JSON, even after repair.
	ErrParse = errors.New("parse error")
)

// Error is a classified failure raised by one layer of the client.
type Error struct {
	Kind       error  // One of the sentinel kinds.
	Op         string // Failing layer, e.g. "client" or "service".
	Msg        string
	StatusCode int   // HTTP status for transport errors, zero otherwise.
	Err        error // Underlying cause, if any.
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// Config returns an ErrConfig error.
func Config(op, msg string) *Error {
	return &Error{Kind: ErrConfig, Op: op, Msg: msg}
}

// Validation returns an ErrValidation error with a formatted message.
func Validation(op, format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Status returns an ErrTransport error for a non-success HTTP response. body is
// embedded in the message as-is.
func Status(op string, code int, body string) *Error {
	return &Error{
		Kind:       ErrTransport,
		Op:         op,
		Msg:        fmt.Sprintf("openrouter error: %d - %s", code, body),
		StatusCode: code,
	}
}

// Transport returns an ErrTransport error wrapping cause.
func Transport(op, msg string, cause error) *Error {
	return &Error{Kind: ErrTransport, Op: op, Msg: fmt.Sprintf("%s: %v", msg, cause), Err: cause}
}

// Parse returns an ErrParse error whose message embeds cause's message.
func Parse(op string, cause error) *Error {
	return &Error{Kind: ErrParse, Op: op, Msg: "JSON parse error: " + cause.Error(), Err: cause}
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
