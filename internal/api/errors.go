package api

import (
	"errors"
	"fmt"
)

// AuthError means the session token is missing, expired, or rejected by the
// server. It is never shown inline; the session expiry hook handles it.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("api: auth: %s", e.Reason)
}

// NetworkError wraps transport-level failures, including timeouts. These are
// retryable from the user's point of view.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response (or a success:false envelope). Message is
// the server-provided error string, or the caller's fallback when absent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// ValidationError is raised client-side before any network call fires.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("api: validation: %s: %s", e.Field, e.Message)
}

// IsAuth reports whether err is an auth failure.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNetwork reports whether err is a transport failure or timeout.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsValidation reports whether err was raised before any network call.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage converts any error from this package into the string a screen
// should surface. Auth errors yield an empty string: the expiry hook owns
// that path.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if IsAuth(err) {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}
