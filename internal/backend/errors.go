package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport    = errors.New("backend unreachable")
	ErrUnauthorized = errors.New("backend rejected credentials")
)

// APIError is a non-2xx response. Message comes from the backend's {"message": ...} payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// errServerStatus marks 5xx responses as failures for the circuit breaker
var errServerStatus = errors.New("backend server error")
