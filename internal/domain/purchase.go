package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLine is one item of a purchase snapshot with the price
// captured at purchase time.
type PurchaseLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Purchase is an immutable record of a completed transaction. It is
// created once, atomically with the transaction, and never modified.
type Purchase struct {
	ID         string
	CustomerID string
	Date       time.Time
	Items      []PurchaseLine
	Total      decimal.Decimal
}

// NewPurchase snapshots the cart's current contents into an immutable
// record carrying the final total.
func NewPurchase(customer *Customer, at time.Time, total decimal.Decimal) *Purchase {
	entries := customer.Cart().Entries()
	lines := make([]PurchaseLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, PurchaseLine{
			Name:      e.Item.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.Item.Price,
			Subtotal:  e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity))),
		})
	}
	return &Purchase{
		ID:         uuid.New().String(),
		CustomerID: customer.ID(),
		Date:       at,
		Items:      lines,
		Total:      total,
	}
}

func (p *Purchase) String() string {
	parts := make([]string, 0, len(p.Items))
	for _, l := range p.Items {
		parts = append(parts, fmt.Sprintf("%s (%d)", l.Name, l.Quantity))
	}
	return fmt.Sprintf("Purchase date: %s, Items: %s, Total: %s",
		p.Date.Format("02.01.2006"), strings.Join(parts, ", "), p.Total.StringFixed(2))
}
