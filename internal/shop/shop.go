// Package shop ties the catalog, the customer registry and the purchase
// ledger together into a single in-process shop.
package shop

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/boftt/EPoe-Ylesanne/internal/domain"
	"github.com/boftt/EPoe-Ylesanne/internal/store"
)

// Shop owns the item catalog, the customer registry and an ordered
// ledger of completed purchases. It holds non-owning references to
// customers; each customer owns its own cart and history.
type Shop struct {
	catalog   store.CatalogStore
	customers []*domain.Customer
	ledger    []*domain.Purchase
	log       *slog.Logger
}

// New creates a shop backed by the given catalog store.
func New(catalog store.CatalogStore, log *slog.Logger) *Shop {
	if log == nil {
		log = slog.Default()
	}
	return &Shop{
		catalog: catalog,
		log:     log,
	}
}

// AddItem puts an item into the catalog. Names are not deduplicated;
// lookups resolve to the first match.
func (s *Shop) AddItem(item *domain.Item) {
	s.catalog.Add(item)
	s.log.Debug("item added", "name", item.Name, "price", item.Price, "quantity", item.Quantity)
}

// AddCustomer registers a customer. IDs are not deduplicated.
func (s *Shop) AddCustomer(c *domain.Customer) {
	s.customers = append(s.customers, c)
	s.log.Debug("customer added", "customer_id", c.ID(), "tier", c.Tier())
}

// Catalog exposes the shop's catalog store.
func (s *Shop) Catalog() store.CatalogStore {
	return s.catalog
}

// CustomerCount returns the number of registered customers.
func (s *Shop) CustomerCount() int {
	return len(s.customers)
}

// Record appends a completed purchase to the shop's ledger.
func (s *Shop) Record(p *domain.Purchase) {
	s.ledger = append(s.ledger, p)
}

// LedgerLen returns the number of recorded purchases.
func (s *Shop) LedgerLen() int {
	return len(s.ledger)
}

// Ledger yields recorded purchases most-recent-first. The sequence is
// finite and restartable.
func (s *Shop) Ledger() iter.Seq[*domain.Purchase] {
	return func(yield func(*domain.Purchase) bool) {
		for i := len(s.ledger) - 1; i >= 0; i-- {
			if !yield(s.ledger[i]) {
				return
			}
		}
	}
}

func (s *Shop) String() string {
	items := s.catalog.List()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return fmt.Sprintf("Shop items: %s | Customers: %d", strings.Join(parts, ", "), len(s.customers))
}
