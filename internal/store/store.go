package store

import (
	"errors"
	"fmt"

	"github.com/boftt/EPoe-Ylesanne/internal/domain"
)

// Common errors returned by the store
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports which item could not cover the
// requested quantity. It unwraps to ErrInsufficientStock so callers can
// match it with errors.Is.
type InsufficientStockError struct {
	Item string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q", e.Item)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// CatalogStore defines the interface for catalog storage operations
type CatalogStore interface {
	// Add appends an item to the catalog. Duplicate names are permitted
	// structurally; lookups always resolve to the first match, so callers
	// are responsible for keeping names unique if they care.
	Add(item *domain.Item)

	// Get returns the first catalog item with the given name.
	Get(name string) (*domain.Item, bool)

	// List returns the catalog items in insertion order.
	List() []*domain.Item

	// Len returns the number of catalog items.
	Len() int

	// CheckStock validates that every cart entry with a matching catalog
	// item can be covered by current stock. Entries are checked in cart
	// order and the first shortfall is reported as an
	// InsufficientStockError. Entries whose name matches nothing in the
	// catalog are skipped. Read-only, never mutates stock.
	CheckStock(entries []domain.CartEntry) error

	// DecrementStock subtracts each entry's quantity from the matching
	// catalog item, skipping entries with no catalog match. It returns
	// the number of skipped entries so the caller can surface them.
	DecrementStock(entries []domain.CartEntry) int
}
