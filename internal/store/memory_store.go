package store

import (
	"sync"

	"github.com/boftt/EPoe-Ylesanne/internal/domain"
)

// MemoryStore implements CatalogStore with in-memory storage. The lock
// keeps the check/decrement loops atomic should the store ever be shared
// between goroutines; the domain model itself runs sequentially.
type MemoryStore struct {
	mu    sync.RWMutex
	items []*domain.Item // insertion order, first match wins on lookup
}

// NewMemoryStore creates a new in-memory catalog store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends an item to the catalog
func (s *MemoryStore) Add(item *domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Get returns the first catalog item with the given name
func (s *MemoryStore) Get(name string) (*domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(name)
}

// lookup must be called with the lock held.
func (s *MemoryStore) lookup(name string) (*domain.Item, bool) {
	for _, item := range s.items {
		if item.Name == name {
			return item, true
		}
	}
	return nil, false
}

// List returns the catalog items in insertion order
func (s *MemoryStore) List() []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of catalog items
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// CheckStock validates all entries against current stock without mutating it
func (s *MemoryStore) CheckStock(entries []domain.CartEntry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range entries {
		item, ok := s.lookup(e.Item.Name)
		if !ok {
			continue
		}
		if e.Quantity > item.Quantity {
			return &InsufficientStockError{Item: item.Name}
		}
	}
	return nil
}

// DecrementStock subtracts each entry's quantity from the matching item,
// returning how many entries had no catalog match
func (s *MemoryStore) DecrementStock(entries []domain.CartEntry) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	skipped := 0
	for _, e := range entries {
		item, ok := s.lookup(e.Item.Name)
		if !ok {
			skipped++
			continue
		}
		item.Quantity -= e.Quantity
	}
	return skipped
}
