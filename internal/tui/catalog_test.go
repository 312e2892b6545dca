package tui

import (
	"testing"

	"github.com/shelftui/shelf/internal/domain"
)

func sampleBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "Dune", Author: "Herbert", ISBN: "123", Year: 1965, Publisher: "Chilton"},
		{ID: "2", Title: "Neuromancer", Author: "Gibson", ISBN: "456", Year: 1984, Publisher: "Ace"},
	}
}

func TestCatalogLoadCycle(t *testing.T) {
	c := NewCatalog()
	if c.Phase != CatalogIdle {
		t.Fatalf("new catalog phase = %d, want idle", c.Phase)
	}

	c = c.StartLoading()
	if c.Phase != CatalogLoading {
		t.Fatalf("phase = %d, want loading", c.Phase)
	}

	c = c.Loaded(sampleBooks())
	if c.Phase != CatalogLoaded || len(c.Books) != 2 || c.Err != "" {
		t.Fatalf("after load: %+v", c)
	}
}

func TestCatalogLoadedReplacesWholesale(t *testing.T) {
	c := NewCatalog().Loaded(sampleBooks())

	// The next successful fetch replaces the list with exactly what the
	// server reports; nothing is merged in from the previous state.
	replacement := []domain.Book{{ID: "3", Title: "Hyperion", Author: "Simmons", ISBN: "789", Year: 1989, Publisher: "Doubleday"}}
	c = c.StartLoading().Loaded(replacement)

	if len(c.Books) != 1 || c.Books[0].ID != "3" {
		t.Fatalf("expected wholesale replacement, got %+v", c.Books)
	}
}

func TestCatalogLoadFailedDiscardsBooks(t *testing.T) {
	c := NewCatalog().Loaded(sampleBooks())

	c = c.StartLoading().LoadFailed("could not reach the catalog server")
	if c.Phase != CatalogError {
		t.Fatalf("phase = %d, want error", c.Phase)
	}
	// Stale rows must not be shown next to a failed list call
	if len(c.Books) != 0 {
		t.Fatalf("expected books discarded, got %d", len(c.Books))
	}
	if c.Err == "" {
		t.Fatalf("expected error message")
	}
}

func TestCatalogDeleteFailedKeepsBooks(t *testing.T) {
	c := NewCatalog().Loaded(sampleBooks())

	c = c.DeleteFailed("book not found, it may have been removed")
	if c.Phase != CatalogLoaded {
		t.Fatalf("phase = %d, want loaded", c.Phase)
	}
	if len(c.Books) != 2 {
		t.Fatalf("delete failure must leave the loaded list unchanged, got %d books", len(c.Books))
	}
	if c.Err == "" {
		t.Fatalf("expected error slot set")
	}

	c = c.ClearError()
	if c.Err != "" {
		t.Fatalf("expected error cleared")
	}
}

func TestCatalogDeleteFailedBeforeLoad(t *testing.T) {
	c := NewCatalog().DeleteFailed("boom")
	if c.Phase != CatalogError {
		t.Fatalf("without a loaded list the failure shows as an error view, got phase %d", c.Phase)
	}
}
