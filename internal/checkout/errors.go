package checkout

import "errors"

// ErrInsufficientFunds is returned when the discounted total exceeds the
// customer's balance. Stock shortfalls surface as the store's
// InsufficientStockError. These are the only two failure kinds of the
// purchase transaction; an empty cart simply totals zero and succeeds.
var ErrInsufficientFunds = errors.New("insufficient funds")
