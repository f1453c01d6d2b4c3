package checkout

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boftt/EPoe-Ylesanne/internal/domain"
	"github.com/boftt/EPoe-Ylesanne/internal/shop"
	"github.com/boftt/EPoe-Ylesanne/internal/store"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log)
}

func setupShop(t *testing.T) *shop.Shop {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return shop.New(store.NewMemoryStore(), log)
}

func mustItem(t *testing.T, name, price string, quantity int) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(name, decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	return item
}

func mustCustomer(t *testing.T, id string, tier domain.Tier, balance string) *domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(id, tier, decimal.RequireFromString(balance))
	require.NoError(t, err)
	return c
}

func TestPurchase_RegularCustomer(t *testing.T) {
	sh := setupShop(t)
	item1 := mustItem(t, "Item1", "10.0", 5)
	item2 := mustItem(t, "Item2", "20.0", 3)
	sh.AddItem(item1)
	sh.AddItem(item2)

	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")
	sh.AddCustomer(c)
	require.NoError(t, c.Cart().Add(item1, 1))
	require.NoError(t, c.Cart().Add(item2, 1))

	record, err := setupService(t).Purchase(c, sh)
	require.NoError(t, err)

	assert.Equal(t, "30.00", record.Total.StringFixed(2))
	assert.Equal(t, "70.00", c.Balance().StringFixed(2))
	assert.Equal(t, 4, item1.Quantity)
	assert.Equal(t, 2, item2.Quantity)
	assert.Equal(t, 1, c.HistoryLen())
	assert.Equal(t, 1, sh.LedgerLen())
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Item1", "10.0", 5)
	sh.AddItem(item)

	c := mustCustomer(t, "C2", domain.TierGolden, "5.0")
	sh.AddCustomer(c)
	require.NoError(t, c.Cart().Add(item, 1))

	_, err := setupService(t).Purchase(c, sh)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Nothing was mutated
	assert.Equal(t, "5.00", c.Balance().StringFixed(2))
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 0, c.HistoryLen())
	assert.Equal(t, 0, sh.LedgerLen())
}

func TestPurchase_InsufficientStock(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Item1", "10.0", 5)
	sh.AddItem(item)

	c := mustCustomer(t, "C3", domain.TierGolden, "100.0")
	sh.AddCustomer(c)
	require.NoError(t, c.Cart().Add(item, 10))

	_, err := setupService(t).Purchase(c, sh)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInsufficientStock)

	var stockErr *store.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Item1", stockErr.Item)

	// Nothing was mutated
	assert.Equal(t, "100.00", c.Balance().StringFixed(2))
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 0, c.HistoryLen())
	assert.Equal(t, 0, sh.LedgerLen())
}

func TestPurchase_GoldenDiscount(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Item1", "10.0", 5)
	sh.AddItem(item)

	c := mustCustomer(t, "C1", domain.TierGolden, "100.0")
	require.NoError(t, c.Cart().Add(item, 1))

	record, err := setupService(t).Purchase(c, sh)
	require.NoError(t, err)

	assert.Equal(t, "9.00", record.Total.StringFixed(2))
	assert.Equal(t, "91.00", c.Balance().StringFixed(2))
}

func TestPurchase_DiscountAppliedAfterRounding(t *testing.T) {
	// Raw total 1.005 rounds to 1.01 before the discount, giving
	// 1.01 * 0.9 = 0.909 -> 0.91. Discounting first would give 0.90.
	sh := setupShop(t)
	item := mustItem(t, "Item1", "0.335", 10)
	sh.AddItem(item)

	c := mustCustomer(t, "C1", domain.TierGolden, "100.0")
	require.NoError(t, c.Cart().Add(item, 3))

	record, err := setupService(t).Purchase(c, sh)
	require.NoError(t, err)

	assert.Equal(t, "0.91", record.Total.StringFixed(2))
	assert.Equal(t, "99.09", c.Balance().StringFixed(2))
}

func TestPurchase_FundsGateIsStrict(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Item1", "30.0", 5)
	sh.AddItem(item)

	// Total exactly equal to the balance succeeds
	exact := mustCustomer(t, "C1", domain.TierRegular, "30.0")
	require.NoError(t, exact.Cart().Add(item, 1))
	_, err := setupService(t).Purchase(exact, sh)
	require.NoError(t, err)
	assert.Equal(t, "0.00", exact.Balance().StringFixed(2))

	// One cent short fails
	short := mustCustomer(t, "C2", domain.TierRegular, "29.99")
	require.NoError(t, short.Cart().Add(item, 1))
	_, err = setupService(t).Purchase(short, sh)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestPurchase_StockGateIsStrict(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Item1", "1.0", 5)
	sh.AddItem(item)

	// Requesting exactly the available stock succeeds
	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")
	require.NoError(t, c.Cart().Add(item, 5))
	_, err := setupService(t).Purchase(c, sh)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)

	// One more than available fails
	other := mustCustomer(t, "C2", domain.TierRegular, "100.0")
	require.NoError(t, other.Cart().Add(item, 1))
	_, err = setupService(t).Purchase(other, sh)
	assert.ErrorIs(t, err, store.ErrInsufficientStock)
}

func TestPurchase_StockGateReportsFirstShortfallInCartOrder(t *testing.T) {
	sh := setupShop(t)
	item1 := mustItem(t, "Item1", "1.0", 1)
	item2 := mustItem(t, "Item2", "1.0", 1)
	sh.AddItem(item1)
	sh.AddItem(item2)

	// Item2 comes first in the cart, so it is the one reported even
	// though Item1 precedes it in the catalog.
	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")
	require.NoError(t, c.Cart().Add(item2, 2))
	require.NoError(t, c.Cart().Add(item1, 2))

	_, err := setupService(t).Purchase(c, sh)
	var stockErr *store.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Item2", stockErr.Item)
}

func TestPurchase_UnknownItemIsSkipped(t *testing.T) {
	sh := setupShop(t)
	milk := mustItem(t, "Milk", "10.0", 5)
	sh.AddItem(milk)

	// Ghost never entered the catalog; it is priced in the cart but no
	// stock decrement happens for it.
	ghost := mustItem(t, "Ghost", "2.0", 0)
	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")
	require.NoError(t, c.Cart().Add(milk, 1))
	require.NoError(t, c.Cart().Add(ghost, 3))

	record, err := setupService(t).Purchase(c, sh)
	require.NoError(t, err)

	assert.Equal(t, "16.00", record.Total.StringFixed(2))
	assert.Equal(t, "84.00", c.Balance().StringFixed(2))
	assert.Equal(t, 4, milk.Quantity)
}

func TestPurchase_EmptyCartSucceedsAtZero(t *testing.T) {
	sh := setupShop(t)
	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")

	record, err := setupService(t).Purchase(c, sh)
	require.NoError(t, err)

	assert.Equal(t, "0.00", record.Total.StringFixed(2))
	assert.Equal(t, "100.00", c.Balance().StringFixed(2))
	assert.Equal(t, 1, c.HistoryLen())
}

func TestPurchase_RecordSnapshotsCart(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Milk", "10.0", 5)
	sh.AddItem(item)

	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc := setupService(t).WithClock(func() time.Time { return at })

	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")
	require.NoError(t, c.Cart().Add(item, 2))

	record, err := svc.Purchase(c, sh)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "C1", record.CustomerID)
	assert.Equal(t, at, record.Date)
	require.Len(t, record.Items, 1)
	assert.Equal(t, "Milk", record.Items[0].Name)
	assert.Equal(t, 2, record.Items[0].Quantity)
	assert.Equal(t, "10.00", record.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "20.00", record.Items[0].Subtotal.StringFixed(2))

	// Later cart changes must not leak into the snapshot
	c.Cart().IncreaseQuantity("Milk", 5)
	assert.Equal(t, 2, record.Items[0].Quantity)
}

func TestPurchase_HistoryAndLedgerOrdering(t *testing.T) {
	sh := setupShop(t)
	item := mustItem(t, "Milk", "1.0", 100)
	sh.AddItem(item)

	svc := setupService(t)
	c := mustCustomer(t, "C1", domain.TierRegular, "100.0")

	var want []string
	for i := 0; i < 3; i++ {
		c.Cart().Clear()
		require.NoError(t, c.Cart().Add(item, 1))
		record, err := svc.Purchase(c, sh)
		require.NoError(t, err)
		want = append([]string{record.ID}, want...)
	}

	var history []string
	for p := range c.History() {
		history = append(history, p.ID)
	}
	assert.Equal(t, want, history)

	var ledger []string
	for p := range sh.Ledger() {
		ledger = append(ledger, p.ID)
	}
	assert.Equal(t, want, ledger)
}
