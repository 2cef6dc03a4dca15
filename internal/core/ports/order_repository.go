package ports

import (
	"context"

	"boutique/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and assigns its store-generated id to the
	// aggregate. Ids are monotonically increasing and never reused.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order guarded by the status
	// the caller read: the write only succeeds if the stored status still
	// equals expected, making check-then-write atomic per order id.
	// A lost race surfaces as errs.ErrConflict.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAllNonTerminal retrieves every order that is not delivered or
	// cancelled, oldest first. Used to rebuild the dispatch board.
	GetAllNonTerminal(ctx context.Context) ([]*order.Order, error)

	// GetNonTerminalByCustomer retrieves the customer's open orders,
	// oldest first. Used for the batch cancellation on block.
	GetNonTerminalByCustomer(ctx context.Context, handle string) ([]*order.Order, error)

	// GetDeferredByCustomer retrieves the customer's orders held in
	// pending_approval, oldest first. Used at approval time.
	GetDeferredByCustomer(ctx context.Context, handle string) ([]*order.Order, error)
}
