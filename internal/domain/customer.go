package domain

import (
	"errors"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// Tier classifies a customer for discount eligibility.
type Tier string

const (
	TierRegular Tier = "regular"
	TierGolden  Tier = "golden"
)

var (
	ErrEmptyCustomerID = errors.New("customer id must not be empty")
	ErrUnknownTier     = errors.New("unknown customer tier")
)

// ParseTier validates a tier name.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierRegular, TierGolden:
		return Tier(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Customer holds an identity, a tier, a balance, exactly one cart and an
// append-only purchase history. Balance and history change only through a
// successful purchase transaction.
type Customer struct {
	id      string
	tier    Tier
	balance decimal.Decimal
	cart    *Cart
	history []*Purchase
}

// NewCustomer validates and creates a customer with an empty cart.
func NewCustomer(id string, tier Tier, balance decimal.Decimal) (*Customer, error) {
	if id == "" {
		return nil, ErrEmptyCustomerID
	}
	if _, err := ParseTier(string(tier)); err != nil {
		return nil, err
	}
	return &Customer{
		id:      id,
		tier:    tier,
		balance: balance,
		cart:    NewCart(),
	}, nil
}

// ID returns the customer's identifier.
func (c *Customer) ID() string { return c.id }

// Tier returns the customer's tier.
func (c *Customer) Tier() Tier { return c.tier }

// Cart returns the customer's cart.
func (c *Customer) Cart() *Cart { return c.cart }

// Balance returns the current balance rounded to two decimals for display.
func (c *Customer) Balance() decimal.Decimal {
	return c.balance.Round(2)
}

// CanAfford reports whether amount does not exceed the current balance.
// An amount exactly equal to the balance is affordable.
func (c *Customer) CanAfford(amount decimal.Decimal) bool {
	return !amount.GreaterThan(c.balance)
}

// Debit subtracts amount from the balance. Callers must have checked
// affordability first; the balance is never allowed to go negative
// through a validated purchase.
func (c *Customer) Debit(amount decimal.Decimal) {
	c.balance = c.balance.Sub(amount)
}

// RecordPurchase appends a completed purchase to the history.
func (c *Customer) RecordPurchase(p *Purchase) {
	c.history = append(c.history, p)
}

// History yields the customer's purchases most-recent-first. The
// sequence is finite and restartable; an empty history yields nothing.
func (c *Customer) History() iter.Seq[*Purchase] {
	return func(yield func(*Purchase) bool) {
		for i := len(c.history) - 1; i >= 0; i-- {
			if !yield(c.history[i]) {
				return
			}
		}
	}
}

// HistoryLen returns the number of recorded purchases.
func (c *Customer) HistoryLen() int {
	return len(c.history)
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer %s (%s)", c.id, c.tier)
}
