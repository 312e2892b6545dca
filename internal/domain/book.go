package domain

import "fmt"

// Book represents a single catalog record. The ID is assigned by the
// backend and is immutable once created.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
}

// Draft is the editable working copy of a book's fields. It never carries
// an ID; the update target is tracked separately by the editor.
type Draft struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
}

// DraftOf returns a draft populated from the book's current field values.
func DraftOf(b Book) Draft {
	return Draft{
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Year:      b.Year,
		Publisher: b.Publisher,
	}
}

// Validate checks the draft before it is submitted. All five fields are
// required and the year must fall within [0, maxYear]. The server remains
// the final authority; this is only the client-side pre-check.
func (d Draft) Validate(maxYear int) error {
	switch {
	case d.Title == "":
		return fmt.Errorf("title is required")
	case d.Author == "":
		return fmt.Errorf("author is required")
	case d.ISBN == "":
		return fmt.Errorf("isbn is required")
	case d.Publisher == "":
		return fmt.Errorf("publisher is required")
	}
	if d.Year < 0 || d.Year > maxYear {
		return fmt.Errorf("year must be between 0 and %d", maxYear)
	}
	return nil
}

// User identifies the authenticated account reported by the login endpoint.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResult is the payload returned on successful authentication.
type LoginResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
