package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidCartQuantity is returned when adding an item with a quantity below one.
var ErrInvalidCartQuantity = errors.New("cart quantity must be at least 1")

// CartEntry pairs a reference to a canonical catalog item with the
// requested quantity. Entries are matched by item name, not pointer
// identity, so callers can pass any handle to the same catalog item.
type CartEntry struct {
	Item     *Item
	Quantity int
}

// Cart is an ordered collection of entries owned by exactly one Customer.
// Adding an item that is already in the cart merges into the existing
// entry instead of appending a duplicate.
type Cart struct {
	entries []CartEntry
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity units of item into the cart, merging with an
// existing entry for the same item name.
func (c *Cart) Add(item *Item, quantity int) error {
	if quantity < 1 {
		return ErrInvalidCartQuantity
	}
	for i := range c.entries {
		if c.entries[i].Item.Name == item.Name {
			c.entries[i].Quantity += quantity
			return nil
		}
	}
	c.entries = append(c.entries, CartEntry{Item: item, Quantity: quantity})
	return nil
}

// Remove deletes the first entry matching name. No-op if absent.
func (c *Cart) Remove(name string) {
	for i := range c.entries {
		if c.entries[i].Item.Name == name {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// IncreaseQuantity adds delta to the first entry matching name.
// No-op if the item is absent or delta is below one.
func (c *Cart) IncreaseQuantity(name string, delta int) {
	if delta < 1 {
		return
	}
	for i := range c.entries {
		if c.entries[i].Item.Name == name {
			c.entries[i].Quantity += delta
			return
		}
	}
}

// DecreaseQuantity subtracts delta from the first entry matching name,
// removing the entry entirely when the result drops to zero or below.
// No-op if the item is absent or delta is below one.
func (c *Cart) DecreaseQuantity(name string, delta int) {
	if delta < 1 {
		return
	}
	for i := range c.entries {
		if c.entries[i].Item.Name == name {
			if c.entries[i].Quantity-delta <= 0 {
				c.entries = append(c.entries[:i], c.entries[i+1:]...)
			} else {
				c.entries[i].Quantity -= delta
			}
			return
		}
	}
}

// TotalCost sums price times quantity over all entries. Empty cart
// totals zero. Pure, no side effects.
func (c *Cart) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// Entries returns a copy of the cart's entries in insertion order.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries in the cart.
func (c *Cart) Len() int {
	return len(c.entries)
}

// Clear removes every entry from the cart.
func (c *Cart) Clear() {
	c.entries = nil
}

func (c *Cart) String() string {
	parts := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		parts = append(parts, fmt.Sprintf("%s (%d)", e.Item.Name, e.Quantity))
	}
	return strings.Join(parts, ", ")
}
