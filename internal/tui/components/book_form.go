package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shelftui/shelf/internal/domain"
	"github.com/shelftui/shelf/internal/tui/styles"
)

// FormMode is a tagged create/edit variant. Edit mode carries the target
// ID explicitly; it is never inferred from field presence.
type FormMode struct {
	ID   string // empty in create mode
	edit bool
}

// CreateMode returns the mode for adding a new book
func CreateMode() FormMode {
	return FormMode{}
}

// EditMode returns the mode for editing the book with the given ID
func EditMode(id string) FormMode {
	return FormMode{ID: id, edit: true}
}

// Editing reports whether the form targets an existing book
func (m FormMode) Editing() bool {
	return m.edit
}

// Field indexes into the form's input slice
const (
	fieldTitle = iota
	fieldAuthor
	fieldISBN
	fieldYear
	fieldPublisher
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Author", "ISBN", "Year", "Publisher"}

// BookForm is the modal for adding or editing a book. The draft lives only
// while the form is open and is discarded on cancel, never merged back.
type BookForm struct {
	visible    bool
	mode       FormMode
	inputs     [fieldCount]textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewBookForm creates the editor modal
func NewBookForm() BookForm {
	var f BookForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 120
		ti.Width = 34
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Enter the title"
	f.inputs[fieldAuthor].Placeholder = "Enter the author"
	f.inputs[fieldISBN].Placeholder = "Enter the ISBN"
	f.inputs[fieldYear].Placeholder = "e.g. 2023"
	f.inputs[fieldYear].CharLimit = 4
	f.inputs[fieldPublisher].Placeholder = "e.g. Chilton"
	return f
}

// ShowCreate opens the form with an empty draft
func (f *BookForm) ShowCreate() {
	f.open(CreateMode(), domain.Draft{})
}

// ShowEdit opens the form populated from the book's current field values.
// The ID rides on the mode, not on any editable field.
func (f *BookForm) ShowEdit(book domain.Book) {
	f.open(EditMode(book.ID), domain.DraftOf(book))
}

func (f *BookForm) open(mode FormMode, draft domain.Draft) {
	f.visible = true
	f.mode = mode
	f.submitting = false
	f.errMsg = ""
	f.inputs[fieldTitle].SetValue(draft.Title)
	f.inputs[fieldAuthor].SetValue(draft.Author)
	f.inputs[fieldISBN].SetValue(draft.ISBN)
	year := ""
	if mode.Editing() || draft.Year != 0 {
		year = strconv.Itoa(draft.Year)
	}
	f.inputs[fieldYear].SetValue(year)
	f.inputs[fieldPublisher].SetValue(draft.Publisher)
	f.setFocus(fieldTitle)
}

// Hide closes the form, discarding the draft
func (f *BookForm) Hide() {
	f.visible = false
	f.submitting = false
	f.errMsg = ""
	f.inputs[f.focus].Blur()
}

// IsVisible returns whether the form is shown
func (f BookForm) IsVisible() bool {
	return f.visible
}

// Mode returns the current create/edit mode
func (f BookForm) Mode() FormMode {
	return f.mode
}

// Submitting reports whether a save is in flight
func (f BookForm) Submitting() bool {
	return f.submitting
}

// Error returns the inline error text, if any
func (f BookForm) Error() string {
	return f.errMsg
}

// Draft returns the current field values as a draft. A non-numeric year
// becomes -1 so validation rejects it.
func (f BookForm) Draft() domain.Draft {
	year, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldYear].Value()))
	if err != nil {
		year = -1
	}
	return domain.Draft{
		Title:     strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Author:    strings.TrimSpace(f.inputs[fieldAuthor].Value()),
		ISBN:      strings.TrimSpace(f.inputs[fieldISBN].Value()),
		Year:      year,
		Publisher: strings.TrimSpace(f.inputs[fieldPublisher].Value()),
	}
}

// SaveFailed re-enables the form after a rejected submission, showing the
// server's message when it supplied one.
func (f *BookForm) SaveFailed(msg string) {
	f.submitting = false
	f.errMsg = msg
}

func (f *BookForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Update handles input events. The returned bool is true when a valid draft
// was submitted; the owner dispatches the save and the form stays locked
// until SaveFailed or Hide is called.
func (f BookForm) Update(msg tea.Msg) (BookForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down":
			if !f.submitting {
				f.setFocus((f.focus + 1) % fieldCount)
			}
			return f, nil, false
		case "shift+tab", "up":
			if !f.submitting {
				f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			}
			return f, nil, false
		case "enter":
			if f.submitting {
				// A save is already in flight; ignore re-entrant submits
				return f, nil, false
			}
			if err := f.Draft().Validate(time.Now().Year()); err != nil {
				f.errMsg = err.Error()
				return f, nil, false
			}
			f.errMsg = ""
			f.submitting = true
			return f, nil, true
		}
	}

	if f.submitting {
		return f, nil, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// View renders the editor modal
func (f BookForm) View() string {
	if !f.visible {
		return ""
	}

	const modalWidth = 42

	title := "Add Book"
	action := "add"
	if f.mode.Editing() {
		title = "Edit Book"
		action = "save"
	}

	line := func(s string) string {
		return lipgloss.NewStyle().Width(modalWidth).Background(styles.SlateDark).Render(s)
	}

	rows := []string{
		lipgloss.NewStyle().
			Foreground(styles.White).
			Bold(true).
			Width(modalWidth).
			Background(styles.SlateDark).
			Render(title),
		line(""),
	}

	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus && !f.submitting {
			label = styles.AccentStyle.Render(label)
		} else {
			label = styles.DimStyle.Render(label)
		}
		rows = append(rows, line(fmt.Sprintf("%s  %s", label, in.View())))
	}

	rows = append(rows, line(""))
	switch {
	case f.submitting:
		rows = append(rows, line(styles.DimStyle.Render("Saving…")))
	case f.errMsg != "":
		rows = append(rows, line(styles.ErrorStyle.Render(f.errMsg)))
	default:
		rows = append(rows, line(styles.DimStyle.Render("enter: "+action+"  esc: cancel")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}
