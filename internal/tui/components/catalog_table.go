package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
	"github.com/shelftui/shelf/internal/domain"
	"github.com/shelftui/shelf/internal/tui/styles"
)

// bookSource adapts the book list to fuzzy.Source for title matching
type bookSource []domain.Book

func (s bookSource) String(i int) string { return s[i].Title }
func (s bookSource) Len() int            { return len(s) }

// CatalogTable renders the loaded catalog as a scrolling table with an
// optional fuzzy filter. The filter is a pure view over the loaded rows; it
// never touches the underlying list, which is owned by the catalog state.
type CatalogTable struct {
	books  []domain.Book
	rows   []int // indexes into books, after filtering
	cursor int   // index into rows
	offset int   // first visible row

	filterInput textinput.Model
	filtering   bool // filter input has focus
	query       string
}

// NewCatalogTable creates the table component
func NewCatalogTable() CatalogTable {
	ti := textinput.New()
	ti.Placeholder = "Filter by title, author, publisher…"
	ti.CharLimit = 60
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle
	return CatalogTable{filterInput: ti}
}

// SetBooks replaces the table contents, reapplying any active filter and
// clamping the cursor.
func (t *CatalogTable) SetBooks(books []domain.Book) {
	t.books = books
	t.applyFilter()
}

// Len returns the number of visible rows
func (t CatalogTable) Len() int {
	return len(t.rows)
}

// Selected returns the book under the cursor
func (t CatalogTable) Selected() (domain.Book, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return domain.Book{}, false
	}
	return t.books[t.rows[t.cursor]], true
}

// Filtering reports whether the filter input has focus
func (t CatalogTable) Filtering() bool {
	return t.filtering
}

// StartFilter gives the filter input focus
func (t *CatalogTable) StartFilter() {
	t.filtering = true
	t.filterInput.Focus()
}

// ClearFilter drops the filter and shows all rows
func (t *CatalogTable) ClearFilter() {
	t.filtering = false
	t.query = ""
	t.filterInput.SetValue("")
	t.filterInput.Blur()
	t.applyFilter()
}

// MoveUp moves the cursor one row up
func (t *CatalogTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// MoveDown moves the cursor one row down
func (t *CatalogTable) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
}

// Update handles filter input events while the filter has focus
func (t CatalogTable) Update(msg tea.Msg) (CatalogTable, tea.Cmd) {
	if !t.filtering {
		return t, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			// Keep the query, return focus to the table
			t.filtering = false
			t.filterInput.Blur()
			return t, nil
		case "esc":
			t.ClearFilter()
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.filterInput, cmd = t.filterInput.Update(msg)
	if q := t.filterInput.Value(); q != t.query {
		t.query = q
		t.applyFilter()
	}
	return t, cmd
}

// applyFilter rebuilds the visible rows. Titles are ranked with fuzzy
// matching; author, publisher and ISBN fall back to normalized fold
// matching so diacritics and case differences still hit.
func (t *CatalogTable) applyFilter() {
	t.rows = t.rows[:0]

	if t.query == "" {
		for i := range t.books {
			t.rows = append(t.rows, i)
		}
	} else {
		seen := make(map[int]bool)
		for _, m := range fuzzy.FindFrom(t.query, bookSource(t.books)) {
			t.rows = append(t.rows, m.Index)
			seen[m.Index] = true
		}
		for i, b := range t.books {
			if seen[i] {
				continue
			}
			if lfuzzy.MatchNormalizedFold(t.query, b.Author) ||
				lfuzzy.MatchNormalizedFold(t.query, b.Publisher) ||
				lfuzzy.MatchNormalizedFold(t.query, b.ISBN) {
				t.rows = append(t.rows, i)
			}
		}
	}

	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.offset = 0
}

// column widths as shares of the table width
func columnWidths(width int) (title, author, isbn, year int) {
	year = 6
	isbn = 15
	rest := width - year - isbn - 6 // separators
	if rest < 20 {
		rest = 20
	}
	title = rest * 3 / 5
	author = rest - title
	return title, author, isbn, year
}

func formatRow(b domain.Book, width int) string {
	tw, aw, iw, yw := columnWidths(width)
	return fmt.Sprintf("%-*s  %-*s  %-*s  %*d",
		tw, styles.Truncate(b.Title, tw),
		aw, styles.Truncate(b.Author, aw),
		iw, styles.Truncate(b.ISBN, iw),
		yw, b.Year,
	)
}

// View renders the table into the given box
func (t *CatalogTable) View(width, height int) string {
	var b strings.Builder

	tw, aw, iw, yw := columnWidths(width)
	head := fmt.Sprintf("%-*s  %-*s  %-*s  %*s", tw, "TITLE", aw, "AUTHOR", iw, "ISBN", yw, "YEAR")
	b.WriteString(styles.ColumnHeadStyle.Render(head))
	b.WriteString("\n")

	bodyHeight := height - 1
	if t.filtering || t.query != "" {
		b.WriteString(t.filterInput.View())
		b.WriteString("\n")
		bodyHeight--
	}

	if len(t.rows) == 0 {
		if t.query != "" {
			b.WriteString(styles.DimStyle.Render("No books match the filter."))
		} else {
			b.WriteString(styles.DimStyle.Render("No books found. Press a to add one."))
		}
		return b.String()
	}

	if bodyHeight < 1 {
		bodyHeight = 1
	}

	// Keep the cursor inside the window
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+bodyHeight {
		t.offset = t.cursor - bodyHeight + 1
	}

	end := t.offset + bodyHeight
	if end > len(t.rows) {
		end = len(t.rows)
	}

	lines := make([]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		row := formatRow(t.books[t.rows[i]], width)
		if i == t.cursor {
			lines = append(lines, styles.SelectedRowStyle.Width(width).Render(row))
		} else {
			lines = append(lines, styles.NormalRowStyle.Render(row))
		}
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return b.String()
}
