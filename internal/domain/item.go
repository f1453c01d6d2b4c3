package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors returned when constructing domain objects
var (
	ErrEmptyName        = errors.New("item name must not be empty")
	ErrNegativePrice    = errors.New("item price must not be negative")
	ErrNegativeQuantity = errors.New("item quantity must not be negative")
)

// Item is a catalog entry. The shop's catalog owns the canonical Item
// records; cart entries reference them and never hold copies, so stock
// decrements are visible everywhere the item appears.
type Item struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// NewItem validates and creates a catalog item.
func NewItem(name string, price decimal.Decimal, quantity int) (*Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return &Item{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}, nil
}

func (i *Item) String() string {
	return fmt.Sprintf("%s: %s (%d left)", i.Name, i.Price.StringFixed(2), i.Quantity)
}
