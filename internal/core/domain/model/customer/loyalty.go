package customer

import "time"

// Loyalty is the lifetime order counter for one handle. It only ever counts
// orders that reached a non-deferred status, is incremented exactly once per
// such order, and never decremented.
type Loyalty struct {
	// Handle is the customer handle this counter belongs to.
	Handle string
	// OrdersCount is the lifetime count of non-deferred orders.
	OrdersCount int
	// LastOrderAt is when the handle last placed a counted order.
	LastOrderAt *time.Time
}
