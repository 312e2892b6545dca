package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrServerOffline indicates no response reached the client
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrBadCredentials indicates the login endpoint rejected the credentials
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrNotFound indicates the requested book no longer exists
	ErrNotFound = errors.New("book not found")
)

// ValidationError carries the server-supplied rejection message for a
// create or update payload. The message is surfaced to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServerError indicates a 5xx response from the catalog service.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("catalog server error (status %d)", e.StatusCode)
}
