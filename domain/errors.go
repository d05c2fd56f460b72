package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUnknownRole        = errors.New("unknown role")
)

// Transport errors
var (
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrRefreshFailed      = errors.New("token refresh failed")
)

// Credential store errors
var (
	ErrNoCredentials      = errors.New("no credentials persisted")
	ErrCorruptCredentials = errors.New("persisted credentials are corrupt")
)

// APIError is a non-2xx response with a server-provided message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// IsValidation reports whether the failure was a client-side input problem.
func (e *APIError) IsValidation() bool {
	return e.Status == 400 || e.Status == 422
}

// IsServer reports whether the failure originated server-side.
func (e *APIError) IsServer() bool {
	return e.Status >= 500
}

// AsAPIError unwraps err into an APIError if one is present in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// FailureMessage derives the human-readable string surfaced on the session
// for an operation failure. Server messages win; everything else degrades
// to the given fallback.
func FailureMessage(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrNetworkUnavailable) {
		return "Network error. Please check your connection and try again."
	}
	return fallback
}
