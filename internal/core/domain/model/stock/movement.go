package stock

import "time"

// Direction marks a movement as an inbound restock or an outbound withdrawal.
type Direction string

const (
	// DirectionIn is a restock.
	DirectionIn Direction = "in"
	// DirectionOut is a withdrawal.
	DirectionOut Direction = "out"
)

// Movement is one append-only audit row: what moved, in which direction, and
// the stock level that resulted. The signed sum of movements for a (product,
// variant) pair reconstructs the current line quantity.
type Movement struct {
	// ProductID and Variant identify the stock line the movement belongs to.
	ProductID int64
	Variant   string
	// Direction is in or out.
	Direction Direction
	// Quantity is the requested amount, which for clamped withdrawals may
	// exceed the stock actually removed.
	Quantity int
	// StockAfter is the line quantity after applying the movement.
	StockAfter int
	// Reason is a free-text audit note, e.g. "Commande #42".
	Reason string
	// At is when the movement happened.
	At time.Time
}

func newMovement(l *Line, direction Direction, quantity int, reason string, now time.Time) Movement {
	return Movement{
		ProductID:  l.productID,
		Variant:    l.variant,
		Direction:  direction,
		Quantity:   quantity,
		StockAfter: l.qty,
		Reason:     reason,
		At:         now,
	}
}
