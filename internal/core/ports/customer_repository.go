package ports

import (
	"context"
	"time"

	"boutique/internal/core/domain/model/customer"
)

// CustomerRepository defines the persistence contract for customer-trust
// records and loyalty counters.
type CustomerRepository interface {
	// GetOrCreate returns the trust record for the handle, lazily creating
	// a pending record on first sight. Lookup and creation are one atomic
	// operation backed by the handle's unique constraint, so two
	// concurrent first orders cannot produce duplicate records.
	GetOrCreate(ctx context.Context, handle string, now time.Time) (*customer.Customer, error)

	// Get retrieves the trust record for the handle.
	Get(ctx context.Context, handle string) (*customer.Customer, error)

	// Update persists changes to an existing trust record.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// GetLoyalty returns the loyalty counter for the handle; a handle with
	// no counted orders yet gets a zero counter.
	GetLoyalty(ctx context.Context, handle string) (customer.Loyalty, error)

	// IncrementLoyalty adds one counted order to the handle's counter,
	// creating the counter on first increment.
	IncrementLoyalty(ctx context.Context, handle string, now time.Time) error
}
