package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shelftui/shelf/internal/domain"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func validBook() domain.Book {
	return domain.Book{ID: "42", Title: "Dune", Author: "Herbert", ISBN: "123", Year: 1965, Publisher: "Chilton"}
}

func TestFormModeVariants(t *testing.T) {
	if CreateMode().Editing() {
		t.Fatalf("create mode must not report editing")
	}

	edit := EditMode("42")
	if !edit.Editing() || edit.ID != "42" {
		t.Fatalf("edit mode = %+v", edit)
	}
}

func TestShowCreateStartsEmpty(t *testing.T) {
	f := NewBookForm()
	f.ShowCreate()

	if !f.IsVisible() {
		t.Fatalf("form must be visible after ShowCreate")
	}
	if f.Mode().Editing() {
		t.Fatalf("ShowCreate must yield create mode")
	}
	if d := f.Draft(); d.Title != "" || d.Author != "" || d.ISBN != "" || d.Publisher != "" {
		t.Fatalf("create draft not empty: %+v", d)
	}
}

func TestShowEditPopulatesDraft(t *testing.T) {
	book := validBook()
	f := NewBookForm()
	f.ShowEdit(book)

	if mode := f.Mode(); !mode.Editing() || mode.ID != "42" {
		t.Fatalf("mode = %+v", mode)
	}
	if got, want := f.Draft(), domain.DraftOf(book); got != want {
		t.Fatalf("draft = %+v, want %+v", got, want)
	}
}

func TestSubmitValidDraft(t *testing.T) {
	f := NewBookForm()
	f.ShowEdit(validBook())

	f, _, submitted := f.Update(keyEnter)
	if !submitted {
		t.Fatalf("expected a valid draft to submit")
	}
	if !f.Submitting() {
		t.Fatalf("form must lock while the save is in flight")
	}
}

func TestSubmitRejectsFutureYear(t *testing.T) {
	book := validBook()
	book.Year = time.Now().Year() + 1

	f := NewBookForm()
	f.ShowEdit(book)

	f, _, submitted := f.Update(keyEnter)
	if submitted {
		t.Fatalf("a future year must be rejected before any network call")
	}
	if f.Error() == "" {
		t.Fatalf("expected inline validation message")
	}
	if f.Submitting() {
		t.Fatalf("a rejected draft must not lock the form")
	}
}

func TestSubmitAcceptsYearZero(t *testing.T) {
	book := validBook()
	book.Year = 0

	f := NewBookForm()
	f.ShowEdit(book)

	_, _, submitted := f.Update(keyEnter)
	if !submitted {
		t.Fatalf("year 0 is a legal publication year")
	}
}

func TestEnterIgnoredWhileSubmitting(t *testing.T) {
	f := NewBookForm()
	f.ShowEdit(validBook())

	f, _, submitted := f.Update(keyEnter)
	if !submitted {
		t.Fatalf("first submit should go through")
	}

	_, _, again := f.Update(keyEnter)
	if again {
		t.Fatalf("re-entrant submit must be ignored while a save is in flight")
	}
}

func TestEscDiscardsDraft(t *testing.T) {
	f := NewBookForm()
	f.ShowEdit(validBook())

	f, _, _ = f.Update(keyEsc)
	if f.IsVisible() {
		t.Fatalf("esc must close the form")
	}

	// Reopening for create starts from a fresh draft
	f.ShowCreate()
	if d := f.Draft(); d.Title != "" {
		t.Fatalf("discarded draft leaked into new form: %+v", d)
	}
}

func TestSaveFailedReenables(t *testing.T) {
	f := NewBookForm()
	f.ShowEdit(validBook())
	f, _, _ = f.Update(keyEnter)

	f.SaveFailed("isbn already registered")
	if f.Submitting() {
		t.Fatalf("form must unlock after a rejected save")
	}
	if f.Error() != "isbn already registered" {
		t.Fatalf("error = %q", f.Error())
	}
	if !f.IsVisible() {
		t.Fatalf("form must stay open so the draft can be corrected")
	}
}
