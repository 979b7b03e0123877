package client

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// DefaultErrorMessage is used when an error response carries no message.
const DefaultErrorMessage = "Unknown Error"

// Common errors returned by the client.
var (
	// ErrInvalidArgument is returned when a wrapper is called with arguments
	// that cannot form a valid request. No network call is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingVerifier is returned by OAuthAccessToken when the credential
	// carries no verifier.
	ErrMissingVerifier = errors.New("oauth verifier is required")
)

// Twitter application error codes the wrappers care about.
const (
	CodeUnspecified       = 0
	CodeNoUserMatches     = 17
	CodeUserNotFound      = 50
	CodeRateLimitExceeded = 88
	CodeAlreadyFavorited  = 139
	CodeNoStatusFound     = 144
	CodeAlreadyRetweeted  = 327
)

// ErrorKind separates failures that never reached the API from failures the
// API reported.
type ErrorKind string

const (
	// ErrorKindTransport covers connection failures, timeouts, malformed
	// URLs, redirect loops and TLS failures.
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindAPI covers every response whose status is not accepted.
	ErrorKindAPI ErrorKind = "api"
)

// Error is returned by every request the client makes.
type Error struct {
	Kind     ErrorKind
	Endpoint string

	// StatusCode, Code and Message are only set for ErrorKindAPI.
	StatusCode int
	Code       int
	Message    string

	// Err is the underlying transport failure, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == ErrorKindTransport {
		return fmt.Sprintf("twitter transport error (%s): %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("twitter api error (%s, status %d, code %d): %s",
		e.Endpoint, e.StatusCode, e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// newTransportError keeps the transport diagnostic as-is.
func newTransportError(endpoint string, err error) *Error {
	return &Error{
		Kind:     ErrorKindTransport,
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      err,
	}
}

// newAPIError extracts the first entry of the "errors" array. Anything that
// does not match that shape falls back to the defaults.
func newAPIError(endpoint string, status int, body []byte) *Error {
	e := &Error{
		Kind:       ErrorKindAPI,
		Endpoint:   endpoint,
		StatusCode: status,
		Code:       CodeUnspecified,
		Message:    DefaultErrorMessage,
	}
	if !gjson.ValidBytes(body) {
		return e
	}

	first := gjson.GetBytes(body, "errors.0")
	if !first.IsObject() {
		return e
	}
	if code := first.Get("code"); code.Type == gjson.Number {
		e.Code = int(code.Int())
	}
	if msg := first.Get("message"); msg.Type == gjson.String && msg.String() != "" {
		e.Message = msg.String()
	}
	return e
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrorKindTransport
}

// IsAPI reports whether err is an error response from the API.
func IsAPI(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrorKindAPI
}

// APICode returns the application error code carried by err, or
// CodeUnspecified if err is not an API error.
func APICode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == ErrorKindAPI {
		return e.Code
	}
	return CodeUnspecified
}
