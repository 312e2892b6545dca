package tui

import "github.com/shelftui/shelf/internal/domain"

// CatalogPhase is the lifecycle phase of the catalog view
type CatalogPhase int

const (
	CatalogIdle CatalogPhase = iota
	CatalogLoading
	CatalogLoaded
	CatalogError
)

// Catalog is the view state for the book list. It is a value type: every
// transition returns a new Catalog. Consistency with the service is achieved
// purely by refetch: the list is replaced wholesale after each successful
// mutation, never patched or merged client-side.
type Catalog struct {
	Phase CatalogPhase
	Books []domain.Book
	Err   string
}

// NewCatalog returns an idle catalog with no books
func NewCatalog() Catalog {
	return Catalog{Phase: CatalogIdle}
}

// StartLoading enters the loading phase. Entered on mount, on manual
// refresh, and after every successful create/update/delete.
func (c Catalog) StartLoading() Catalog {
	c.Phase = CatalogLoading
	return c
}

// Loaded replaces the list with the server's response order and clears any
// prior error.
func (c Catalog) Loaded(books []domain.Book) Catalog {
	return Catalog{Phase: CatalogLoaded, Books: books}
}

// LoadFailed discards any previously displayed books. Showing stale data
// after a failed list call would mask a real desync, so the view shows the
// error instead.
func (c Catalog) LoadFailed(msg string) Catalog {
	return Catalog{Phase: CatalogError, Err: msg}
}

// DeleteFailed reports a failed delete without reloading: the record most
// likely still exists, so the list from before the attempt stays visible
// when it was already loaded.
func (c Catalog) DeleteFailed(msg string) Catalog {
	if c.Phase == CatalogLoaded {
		c.Err = msg
		return c
	}
	return c.LoadFailed(msg)
}

// ClearError drops the error slot without touching the list
func (c Catalog) ClearError() Catalog {
	if c.Phase == CatalogLoaded {
		c.Err = ""
	}
	return c
}
