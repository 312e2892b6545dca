package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shelftui/shelf/internal/catalog"
	"github.com/shelftui/shelf/internal/domain"
	"github.com/shelftui/shelf/internal/tui/components"
)

const requestTimeout = 30 * time.Second

// Command factories for async operations. Each factory issues exactly one
// network call and resolves to exactly one message; the caller disables the
// relevant controls while the call is in flight.

// LoadBooksCmd fetches the catalog list
func LoadBooksCmd(client *catalog.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := client.ListBooks(ctx)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return BooksLoadedMsg{Books: books}
	}
}

// SaveBookCmd submits a draft: create when mode carries no ID, update
// otherwise. The update response is awaited before success is reported.
func SaveBookCmd(client *catalog.Client, mode components.FormMode, draft domain.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if mode.Editing() {
			if err := client.UpdateBook(ctx, mode.ID, draft); err != nil {
				return SaveDoneMsg{Created: false, Title: draft.Title, Err: err}
			}
			return SaveDoneMsg{Created: false, Title: draft.Title}
		}

		book, err := client.CreateBook(ctx, draft)
		if err != nil {
			return SaveDoneMsg{Created: true, Title: draft.Title, Err: err}
		}
		return SaveDoneMsg{Created: true, Title: book.Title}
	}
}

// DeleteBookCmd removes a book by ID
func DeleteBookCmd(client *catalog.Client, book domain.Book) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteBook(ctx, book.ID); err != nil {
			return DeleteDoneMsg{Title: book.Title, Err: err}
		}
		return DeleteDoneMsg{Title: book.Title}
	}
}

// LoginCmd authenticates against the catalog service
func LoginCmd(client *catalog.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.Login(ctx, username, password)
		if err != nil {
			return LoginDoneMsg{Err: err}
		}
		return LoginDoneMsg{Result: result}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// errorMessage converts a domain error into the inline text shown to the
// user: the distinguishing message for known categories, the server's own
// message for validation failures, and a generic connectivity message
// otherwise.
func errorMessage(err error) string {
	var ve *domain.ValidationError
	var se *domain.ServerError
	switch {
	case errors.Is(err, domain.ErrBadCredentials):
		return "invalid username or password"
	case errors.Is(err, domain.ErrNotFound):
		return "book not found, it may have been removed"
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &se):
		return "the catalog server reported an error, try again"
	default:
		return "could not reach the catalog server"
	}
}
