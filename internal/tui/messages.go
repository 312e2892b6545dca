package tui

import (
	"github.com/shelftui/shelf/internal/domain"
)

// Message types for the TUI

// BooksLoadedMsg signals that the catalog list has been fetched
type BooksLoadedMsg struct {
	Books []domain.Book
}

// LoadFailedMsg signals that fetching the catalog list failed
type LoadFailedMsg struct {
	Err error
}

// SaveDoneMsg reports the outcome of a create or update submission
type SaveDoneMsg struct {
	Created bool // true for create, false for update
	Title   string
	Err     error
}

// DeleteDoneMsg reports the outcome of a delete request
type DeleteDoneMsg struct {
	Title string
	Err   error
}

// LoginDoneMsg reports the outcome of a login attempt
type LoginDoneMsg struct {
	Result domain.LoginResult
	Err    error
}

// StatusNoteMsg sets a temporary status bar message
type StatusNoteMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg drives the loading spinner animation
type TickMsg struct{}
