package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on with errors.Is.
var (
	// ErrNetwork marks transport-level failures: connection refused,
	// timeouts, unreadable bodies. The server never answered, so the
	// caller must assume nothing changed.
	ErrNetwork = errors.New("network failure")

	// ErrUnauthorized means the server refused the session cookie.
	// Unlike other failures it is terminal for the current session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAssetUnavailable means an image endpoint had nothing to serve.
	// Non-fatal: the consumer renders a placeholder.
	ErrAssetUnavailable = errors.New("asset unavailable")
)

// ServerError carries an application-level refusal: the transport worked
// but the server answered with a failure status or success=false body.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server refused: %s", e.Message)
	}
	return fmt.Sprintf("server refused with status %d", e.StatusCode)
}
