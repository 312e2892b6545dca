package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shelftui/shelf/internal/catalog"
	"github.com/shelftui/shelf/internal/domain"
	"github.com/shelftui/shelf/internal/store"
	"github.com/shelftui/shelf/internal/tui/components"
	"github.com/shelftui/shelf/internal/tui/styles"
)

// ApplicationState represents the current screen of the application
type ApplicationState int

const (
	StateLogin ApplicationState = iota
	StateBrowsing
	StateConfirmDelete
)

// Chrome: header line + status line
const chromeHeight = 2

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Collaborators
	Client *catalog.Client
	Store  *store.StateStore
	Keys   KeyMap

	// View state
	Session domain.Session
	Catalog Catalog

	// UI components
	Table     components.CatalogTable
	BookForm  components.BookForm
	LoginForm components.LoginForm

	// Dimensions
	Width  int
	Height int

	// Status bar
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	// Delete confirmation target
	pendingDelete domain.Book
}

// NewModel creates a new application model
func NewModel(client *catalog.Client, st *store.StateStore) Model {
	m := Model{
		State:     StateLogin,
		Client:    client,
		Store:     st,
		Keys:      DefaultKeyMap(),
		Session:   domain.NewSession(),
		Catalog:   NewCatalog(),
		Table:     components.NewCatalogTable(),
		BookForm:  components.NewBookForm(),
		LoginForm: components.NewLoginForm(),
	}

	last := ""
	if st != nil {
		if name, ok := st.LastUsername(); ok {
			last = name
		}
	}
	m.LoginForm.Reset(last)

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return TickCmd(100 * time.Millisecond)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case BooksLoadedMsg:
		m.Catalog = m.Catalog.Loaded(msg.Books)
		m.Table.SetBooks(msg.Books)
		return m, nil

	case LoadFailedMsg:
		slog.Error("loading books failed", "error", msg.Err)
		m.Catalog = m.Catalog.LoadFailed(errorMessage(msg.Err))
		return m, nil

	case SaveDoneMsg:
		return m.handleSaveDone(msg)

	case DeleteDoneMsg:
		return m.handleDeleteDone(msg)

	case LoginDoneMsg:
		return m.handleLoginDone(msg)

	case StatusNoteMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleSaveDone(msg SaveDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		slog.Error("saving book failed", "title", msg.Title, "error", msg.Err)
		m.BookForm.SaveFailed(errorMessage(msg.Err))
		return m, nil
	}

	// Close the editor and refetch: the list is server-authoritative
	m.BookForm.Hide()
	verb := "Updated"
	if msg.Created {
		verb = "Added"
	}
	m.StatusMsg = fmt.Sprintf("%s %q", verb, msg.Title)
	m.StatusIsErr = false
	m.Catalog = m.Catalog.StartLoading()
	return m, tea.Batch(LoadBooksCmd(m.Client), ClearStatusCmd(3*time.Second))
}

func (m Model) handleDeleteDone(msg DeleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		slog.Error("deleting book failed", "title", msg.Title, "error", msg.Err)
		// Report without reloading; the list from before the attempt stays
		m.Catalog = m.Catalog.DeleteFailed(errorMessage(msg.Err))
		return m, nil
	}

	m.StatusMsg = fmt.Sprintf("Deleted %q", msg.Title)
	m.StatusIsErr = false
	m.Catalog = m.Catalog.StartLoading()
	return m, tea.Batch(LoadBooksCmd(m.Client), ClearStatusCmd(3*time.Second))
}

func (m Model) handleLoginDone(msg LoginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		slog.Warn("login failed", "error", msg.Err)
		m.LoginForm.LoginFailed(errorMessage(msg.Err))
		return m, nil
	}

	username := msg.Result.User.Username
	if username == "" {
		username, _ = m.LoginForm.Credentials()
	}
	m.Session = m.Session.LoginSucceeded(username)
	if m.Store != nil {
		if err := m.Store.SaveLastUsername(username); err != nil {
			slog.Warn("failed to persist last username", "error", err)
		}
	}
	slog.Info("logged in", "user", username)

	if msg.Result.Message != "" {
		m.StatusMsg = msg.Result.Message
	}

	m.State = StateBrowsing
	m.Catalog = m.Catalog.StartLoading()
	return m, tea.Batch(LoadBooksCmd(m.Client), ClearStatusCmd(3*time.Second))
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateLogin:
		return m.handleLoginKeys(msg)
	case StateConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	default:
		return m.handleBrowsingKeys(msg)
	}
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd, submitted := m.LoginForm.Update(msg)
	m.LoginForm = form
	if submitted {
		user, pass := m.LoginForm.Credentials()
		return m, LoginCmd(m.Client, user, pass)
	}
	return m, cmd
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.State = StateBrowsing
		book := m.pendingDelete
		m.pendingDelete = domain.Book{}
		return m, DeleteBookCmd(m.Client, book)
	case key.Matches(msg, m.Keys.Cancel):
		m.State = StateBrowsing
		m.pendingDelete = domain.Book{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowsingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The editor modal captures all input while open
	if m.BookForm.IsVisible() {
		form, cmd, submitted := m.BookForm.Update(msg)
		m.BookForm = form
		if submitted {
			return m, SaveBookCmd(m.Client, m.BookForm.Mode(), m.BookForm.Draft())
		}
		return m, cmd
	}

	// The filter input captures all input while focused
	if m.Table.Filtering() {
		table, cmd := m.Table.Update(msg)
		m.Table = table
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.Table.MoveUp()
		return m, nil

	case key.Matches(msg, m.Keys.Down):
		m.Table.MoveDown()
		return m, nil

	case key.Matches(msg, m.Keys.Add):
		m.BookForm.ShowCreate()
		return m, nil

	case key.Matches(msg, m.Keys.Edit):
		if book, ok := m.Table.Selected(); ok {
			m.BookForm.ShowEdit(book)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Delete):
		if book, ok := m.Table.Selected(); ok {
			m.pendingDelete = book
			m.State = StateConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.Keys.Refresh):
		m.Catalog = m.Catalog.StartLoading()
		return m, LoadBooksCmd(m.Client)

	case key.Matches(msg, m.Keys.Filter):
		if m.Catalog.Phase == CatalogLoaded {
			m.Table.StartFilter()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Logout):
		return m.logout()

	case msg.String() == "esc":
		m.Table.ClearFilter()
		return m, nil
	}

	return m, nil
}

// logout discards all catalog state; re-login restarts from Loading
func (m Model) logout() (tea.Model, tea.Cmd) {
	slog.Info("logged out", "user", m.Session.Username)
	m.Session = m.Session.Logout()
	m.Catalog = NewCatalog()
	m.Table = components.NewCatalogTable()
	m.BookForm.Hide()

	last := ""
	if m.Store != nil {
		if name, ok := m.Store.LastUsername(); ok {
			last = name
		}
	}
	m.LoginForm.Reset(last)
	m.State = StateLogin
	m.StatusMsg = ""
	m.StatusIsErr = false
	return m, nil
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading…"
	}

	header := m.renderHeader()
	status := m.renderStatusBar()
	bodyHeight := m.Height - chromeHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case !m.Session.Authenticated:
		body = m.overlay(m.LoginForm.View(), bodyHeight)
	case m.BookForm.IsVisible():
		body = m.overlay(m.BookForm.View(), bodyHeight)
	case m.State == StateConfirmDelete:
		body = m.overlay(m.renderConfirmDelete(), bodyHeight)
	default:
		body = m.renderCatalog(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	left := styles.TitleStyle.Render("Shelf")
	right := ""
	if m.Session.Authenticated {
		right = styles.SubtitleStyle.Render(m.Session.Username) + styles.DimStyle.Render("  C-l log out")
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.HeaderBarStyle.Width(m.Width).Render(
		left + lipgloss.NewStyle().Width(gap).Render("") + right,
	)
}

func (m Model) renderStatusBar() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}
	if m.Session.Authenticated {
		return styles.DimStyle.Render("a add  e edit  d delete  / filter  r refresh  q quit")
	}
	return styles.DimStyle.Render("sign in to manage the catalog")
}

func (m Model) renderCatalog(height int) string {
	switch m.Catalog.Phase {
	case CatalogLoading:
		spinner := styles.SpinnerStyle.Render(styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)])
		return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center,
			spinner+" Loading books…")

	case CatalogError:
		return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render(m.Catalog.Err)+"\n"+styles.DimStyle.Render("r to retry"))

	case CatalogLoaded:
		tableHeight := height
		var alert string
		if m.Catalog.Err != "" {
			alert = styles.ErrorStyle.Render(m.Catalog.Err)
			tableHeight--
		}
		view := m.Table.View(m.Width-2, tableHeight)
		if alert != "" {
			return lipgloss.JoinVertical(lipgloss.Left, alert, view)
		}
		return view

	default:
		return ""
	}
}

func (m Model) renderConfirmDelete() string {
	const modalWidth = 40

	line := func(s string) string {
		return lipgloss.NewStyle().Width(modalWidth).Background(styles.SlateDark).Render(s)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().
			Foreground(styles.White).
			Bold(true).
			Width(modalWidth).
			Background(styles.SlateDark).
			Render("Delete Book"),
		line(""),
		line(styles.Truncate(fmt.Sprintf("Delete %q?", m.pendingDelete.Title), modalWidth)),
		line(""),
		line(styles.DimStyle.Render("y: delete  n/esc: cancel")),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Red).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}

func (m Model) overlay(modal string, height int) string {
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, modal)
}
