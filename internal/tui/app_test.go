package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shelftui/shelf/internal/catalog"
	"github.com/shelftui/shelf/internal/domain"
	"github.com/shelftui/shelf/internal/log"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := catalog.NewClient("http://127.0.0.1:1", log.NullLogger())
	return NewModel(client, nil)
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return model, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m.Session = m.Session.LoginSucceeded("bob")
	m.State = StateBrowsing
	m, _ = apply(t, m, BooksLoadedMsg{Books: sampleBooks()})
	return m
}

func TestStartsAtLoginPrompt(t *testing.T) {
	m := newTestModel(t)
	if m.State != StateLogin {
		t.Fatalf("state = %d, want login", m.State)
	}
	if m.Session.Authenticated || !m.Session.LoginPromptVisible {
		t.Fatalf("session = %+v", m.Session)
	}
}

func TestLoginFailureStaysOnPrompt(t *testing.T) {
	m := newTestModel(t)

	m, cmd := apply(t, m, LoginDoneMsg{Err: domain.ErrBadCredentials})
	if m.State != StateLogin || m.Session.Authenticated {
		t.Fatalf("login failure must not authenticate: state=%d session=%+v", m.State, m.Session)
	}
	if got := m.LoginForm.Error(); got != "invalid username or password" {
		t.Fatalf("login error = %q", got)
	}
	if cmd != nil {
		t.Fatalf("no command expected after a failed login")
	}
}

func TestLoginSuccessStartsCatalogLoad(t *testing.T) {
	m := newTestModel(t)

	result := domain.LoginResult{Message: "welcome", User: domain.User{ID: "u1", Username: "bob"}}
	m, cmd := apply(t, m, LoginDoneMsg{Result: result})

	if !m.Session.Authenticated || m.Session.LoginPromptVisible {
		t.Fatalf("session = %+v", m.Session)
	}
	if m.State != StateBrowsing {
		t.Fatalf("state = %d, want browsing", m.State)
	}
	if m.Catalog.Phase != CatalogLoading {
		t.Fatalf("catalog phase = %d, want loading", m.Catalog.Phase)
	}
	if cmd == nil {
		t.Fatalf("expected a list command after login")
	}
}

func TestBooksLoaded(t *testing.T) {
	m := loadedModel(t)
	if m.Catalog.Phase != CatalogLoaded {
		t.Fatalf("phase = %d, want loaded", m.Catalog.Phase)
	}
	if m.Table.Len() != 2 {
		t.Fatalf("table rows = %d, want 2", m.Table.Len())
	}
}

func TestSaveSuccessClosesEditorAndReloads(t *testing.T) {
	m := loadedModel(t)
	m.BookForm.ShowCreate()

	m, cmd := apply(t, m, SaveDoneMsg{Created: true, Title: "X"})
	if m.BookForm.IsVisible() {
		t.Fatalf("editor must close on success")
	}
	if m.Catalog.Phase != CatalogLoading {
		t.Fatalf("catalog phase = %d, want loading (refetch after mutation)", m.Catalog.Phase)
	}
	if cmd == nil {
		t.Fatalf("expected a reload command")
	}
}

func TestSaveFailureKeepsEditorOpen(t *testing.T) {
	m := loadedModel(t)
	m.BookForm.ShowCreate()

	m, cmd := apply(t, m, SaveDoneMsg{Created: true, Title: "X", Err: &domain.ValidationError{Message: "isbn already registered"}})
	if !m.BookForm.IsVisible() {
		t.Fatalf("editor must stay open on failure")
	}
	if m.BookForm.Submitting() {
		t.Fatalf("form must be re-enabled after a failed save")
	}
	if got := m.BookForm.Error(); got != "isbn already registered" {
		t.Fatalf("form error = %q", got)
	}
	if m.Catalog.Phase != CatalogLoaded {
		t.Fatalf("a failed save must not reload the catalog")
	}
	if cmd != nil {
		t.Fatalf("no command expected after a failed save")
	}
}

func TestDeleteFailureKeepsListWithoutReload(t *testing.T) {
	m := loadedModel(t)

	m, cmd := apply(t, m, DeleteDoneMsg{Title: "Dune", Err: domain.ErrNotFound})
	if m.Catalog.Phase != CatalogLoaded || len(m.Catalog.Books) != 2 {
		t.Fatalf("delete failure must keep the prior list: %+v", m.Catalog)
	}
	if m.Catalog.Err == "" {
		t.Fatalf("expected error slot set")
	}
	if cmd != nil {
		t.Fatalf("delete failure must not trigger a reload")
	}
}

func TestDeleteSuccessReloads(t *testing.T) {
	m := loadedModel(t)

	m, cmd := apply(t, m, DeleteDoneMsg{Title: "Dune"})
	if m.Catalog.Phase != CatalogLoading {
		t.Fatalf("catalog phase = %d, want loading", m.Catalog.Phase)
	}
	if cmd == nil {
		t.Fatalf("expected a reload command")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := loadedModel(t)

	m, cmd := apply(t, m, keyRune('d'))
	if m.State != StateConfirmDelete {
		t.Fatalf("state = %d, want confirm-delete", m.State)
	}
	if cmd != nil {
		t.Fatalf("no network call before confirmation")
	}

	// Declining returns to browsing without a delete
	m, cmd = apply(t, m, keyRune('n'))
	if m.State != StateBrowsing || cmd != nil {
		t.Fatalf("decline: state=%d cmd=%v", m.State, cmd)
	}

	// Confirming issues the delete
	m, _ = apply(t, m, keyRune('d'))
	m, cmd = apply(t, m, keyRune('y'))
	if m.State != StateBrowsing {
		t.Fatalf("state = %d, want browsing", m.State)
	}
	if cmd == nil {
		t.Fatalf("expected a delete command after confirmation")
	}
}

func TestLoadFailureDiscardsList(t *testing.T) {
	m := loadedModel(t)

	m, _ = apply(t, m, LoadFailedMsg{Err: domain.ErrServerOffline})
	if m.Catalog.Phase != CatalogError {
		t.Fatalf("phase = %d, want error", m.Catalog.Phase)
	}
	if len(m.Catalog.Books) != 0 {
		t.Fatalf("stale rows must not survive a failed list call")
	}
}

func TestLogoutDiscardsCatalog(t *testing.T) {
	m := loadedModel(t)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.State != StateLogin {
		t.Fatalf("state = %d, want login", m.State)
	}
	if m.Session.Authenticated || !m.Session.LoginPromptVisible {
		t.Fatalf("session = %+v", m.Session)
	}
	if m.Catalog.Phase != CatalogIdle || len(m.Catalog.Books) != 0 {
		t.Fatalf("catalog must be discarded on logout: %+v", m.Catalog)
	}
}

func TestErrorMessageMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials", domain.ErrBadCredentials, "invalid username or password"},
		{"validation", &domain.ValidationError{Message: "year looks wrong"}, "year looks wrong"},
		{"offline", domain.ErrServerOffline, "could not reach the catalog server"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorMessage(tc.err); got != tc.want {
				t.Fatalf("errorMessage = %q, want %q", got, tc.want)
			}
		})
	}
}
