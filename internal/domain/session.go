package domain

// Session holds the authentication state for the lifetime of the process.
// It is a value type: transitions return a new Session rather than mutating
// in place. Authenticated implies !LoginPromptVisible: the two fields are
// only ever set together through these transitions.
type Session struct {
	Authenticated      bool
	LoginPromptVisible bool
	Username           string
}

// NewSession returns the initial unauthenticated session. Every process
// start begins at the login prompt; no token is persisted.
func NewSession() Session {
	return Session{Authenticated: false, LoginPromptVisible: true}
}

// LoginSucceeded records a successful login for the given user.
func (s Session) LoginSucceeded(username string) Session {
	return Session{Authenticated: true, LoginPromptVisible: false, Username: username}
}

// Logout drops the authentication and returns to the login prompt.
func (s Session) Logout() Session {
	return Session{Authenticated: false, LoginPromptVisible: true}
}
