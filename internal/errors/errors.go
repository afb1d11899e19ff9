// Package errors provides custom error types for the aichat provider client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrUnknownProvider keeps the exact wording surfaced to the user when
	// a provider id is not in the registry.
	ErrUnknownProvider = errors.New("Unknown Provider")
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrRequestInFlight = errors.New("a request is already in flight")
)

// ConfigError represents a configuration precondition failure: an unknown
// provider id or a missing API key. No network call is made when one occurs.
type ConfigError struct {
	Provider string
	Message  string
}

func (e *ConfigError) Error() string {
	if e.Provider == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (provider %q)", e.Message, e.Provider)
}

// Is allows comparison with sentinel errors
func (e *ConfigError) Is(target error) bool {
	if target == ErrUnknownProvider || target == ErrMissingAPIKey {
		return e.Message == target.Error()
	}
	_, ok := target.(*ConfigError)
	return ok
}

// NewConfigError creates a new ConfigError
func NewConfigError(provider, message string) *ConfigError {
	return &ConfigError{Provider: provider, Message: message}
}

// NetworkError represents a transport-level failure: timeout, connection
// refused, DNS failure. The stringified cause is surfaced verbatim so the
// user can diagnose it; the request is never retried automatically.
type NetworkError struct {
	Endpoint string
	Cause    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(endpoint string, cause error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Cause: cause}
}

// APIError represents a non-200 HTTP response from a provider. Its message
// carries the status code and the raw response body verbatim for
// diagnostics.
type APIError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Body)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Body:       body,
	}
}

// ParseError represents a response body that does not match the expected
// provider shape.
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsConfigError reports whether err is a configuration precondition failure.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsParseError reports whether err is a response-shape mismatch.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// GetHTTPStatus extracts the HTTP status code from an APIError, or 0.
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// GetResponseBody extracts the raw response body from an APIError, or "".
func GetResponseBody(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Body
	}
	return ""
}

// GetEndpoint extracts the endpoint from a structured error, or "".
func GetEndpoint(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	return ""
}
