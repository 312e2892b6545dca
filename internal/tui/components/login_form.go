package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shelftui/shelf/internal/tui/styles"
)

// LoginForm is the credentials modal. It has no cancel path: an
// unauthenticated user cannot dismiss it to reach the catalog view.
type LoginForm struct {
	username   textinput.Model
	password   textinput.Model
	focus      int // 0 = username, 1 = password
	submitting bool
	errMsg     string
}

// NewLoginForm creates the login modal
func NewLoginForm() LoginForm {
	user := textinput.New()
	user.Placeholder = "Username"
	user.CharLimit = 64
	user.Width = 28
	user.Prompt = ""
	user.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	user.PlaceholderStyle = styles.DimStyle
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.CharLimit = 64
	pass.Width = 28
	pass.Prompt = ""
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	pass.PlaceholderStyle = styles.DimStyle

	return LoginForm{username: user, password: pass}
}

// Reset clears the form for a fresh login, prefilling the username when a
// previous login is remembered.
func (f *LoginForm) Reset(lastUsername string) {
	f.username.SetValue(lastUsername)
	f.password.SetValue("")
	f.submitting = false
	f.errMsg = ""
	if lastUsername != "" {
		f.focusField(1)
	} else {
		f.focusField(0)
	}
}

// Credentials returns the entered username and password
func (f LoginForm) Credentials() (string, string) {
	return f.username.Value(), f.password.Value()
}

// Submitting reports whether a login attempt is in flight
func (f LoginForm) Submitting() bool {
	return f.submitting
}

// Error returns the inline error text, if any
func (f LoginForm) Error() string {
	return f.errMsg
}

// LoginFailed re-enables the form with the distinguishing message
func (f *LoginForm) LoginFailed(msg string) {
	f.submitting = false
	f.errMsg = msg
	f.password.SetValue("")
	f.focusField(1)
}

func (f *LoginForm) focusField(i int) {
	f.focus = i
	if i == 0 {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.username.Blur()
		f.password.Focus()
	}
}

// Update handles input events. The returned bool is true when credentials
// were submitted; the form stays locked until LoginFailed or Reset.
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down", "shift+tab", "up":
			if !f.submitting {
				f.focusField(1 - f.focus)
			}
			return f, nil, false
		case "enter":
			if f.submitting {
				return f, nil, false
			}
			user, pass := f.Credentials()
			if user == "" || pass == "" {
				f.errMsg = "username and password are required"
				return f, nil, false
			}
			f.errMsg = ""
			f.submitting = true
			return f, nil, true
		case "esc":
			// Deliberately ignored: login cannot be dismissed
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd, false
}

// View renders the login modal
func (f LoginForm) View() string {
	const modalWidth = 36

	line := func(s string) string {
		return lipgloss.NewStyle().Width(modalWidth).Background(styles.SlateDark).Render(s)
	}

	userLabel := styles.DimStyle.Render("Username")
	passLabel := styles.DimStyle.Render("Password")
	if !f.submitting {
		if f.focus == 0 {
			userLabel = styles.AccentStyle.Render("Username")
		} else {
			passLabel = styles.AccentStyle.Render("Password")
		}
	}

	rows := []string{
		lipgloss.NewStyle().
			Foreground(styles.White).
			Bold(true).
			Width(modalWidth).
			Background(styles.SlateDark).
			Render("Sign In"),
		line(""),
		line(fmt.Sprintf("%s  %s", userLabel, f.username.View())),
		line(fmt.Sprintf("%s  %s", passLabel, f.password.View())),
		line(""),
	}

	switch {
	case f.submitting:
		rows = append(rows, line(styles.DimStyle.Render("Signing in…")))
	case f.errMsg != "":
		rows = append(rows, line(styles.ErrorStyle.Render(f.errMsg)))
	default:
		rows = append(rows, line(styles.DimStyle.Render("enter: sign in")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}
