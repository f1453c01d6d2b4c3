// Package checkout implements the purchase transaction: a two-phase
// validate-then-commit state machine over a customer's balance and a
// shop's inventory.
package checkout

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boftt/EPoe-Ylesanne/internal/domain"
	"github.com/boftt/EPoe-Ylesanne/internal/shop"
)

// goldenDiscount is the multiplier applied to golden-tier totals.
var goldenDiscount = decimal.RequireFromString("0.9")

// Service runs purchase transactions.
type Service struct {
	log *slog.Logger
	now func() time.Time
}

// NewService creates a checkout service.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		log: log,
		now: time.Now,
	}
}

// WithClock overrides the transaction timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Purchase executes the customer's cart against the shop.
//
// Phase 1 validates without mutating anything: the raw cart total is
// rounded to two decimals, the golden-tier discount is applied after
// that rounding, then the funds gate and the stock gate run in that
// order. A total exactly equal to the balance passes the funds gate.
// The stock gate walks cart entries in order and reports the first
// shortfall; entries naming nothing in the catalog are skipped.
//
// Phase 2 commits: the final total is rounded again, then the purchase
// record is appended to the customer's history, appended to the shop's
// ledger, the balance is debited and stock is decremented, in exactly
// that order. Because both gates run before any mutation, a failed
// purchase leaves balance, catalog, history and ledger untouched.
func (s *Service) Purchase(customer *domain.Customer, sh *shop.Shop) (*domain.Purchase, error) {
	cart := customer.Cart()
	total := cart.TotalCost().Round(2)
	if customer.Tier() == domain.TierGolden {
		total = total.Mul(goldenDiscount)
	}

	if !customer.CanAfford(total) {
		s.log.Info("purchase rejected",
			"customer_id", customer.ID(),
			"total", total,
			"reason", "insufficient funds")
		return nil, fmt.Errorf("customer %s: %w", customer.ID(), ErrInsufficientFunds)
	}

	entries := cart.Entries()
	for _, e := range entries {
		if _, ok := sh.Catalog().Get(e.Item.Name); !ok {
			s.log.Warn("cart item not in catalog, skipping stock check",
				"customer_id", customer.ID(),
				"item", e.Item.Name)
		}
	}
	if err := sh.Catalog().CheckStock(entries); err != nil {
		s.log.Info("purchase rejected",
			"customer_id", customer.ID(),
			"reason", err.Error())
		return nil, fmt.Errorf("customer %s: %w", customer.ID(), err)
	}

	total = total.Round(2)
	record := domain.NewPurchase(customer, s.now(), total)

	customer.RecordPurchase(record)
	sh.Record(record)
	customer.Debit(total)
	if skipped := sh.Catalog().DecrementStock(entries); skipped > 0 {
		s.log.Warn("stock decrement skipped entries with no catalog match",
			"customer_id", customer.ID(),
			"skipped", skipped)
	}

	s.log.Info("purchase completed",
		"customer_id", customer.ID(),
		"purchase_id", record.ID,
		"total", total,
		"items", len(record.Items))
	return record, nil
}
