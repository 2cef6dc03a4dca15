package ports

import (
	"context"

	"boutique/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for stock lines and
// their movement journal.
type StockRepository interface {
	// GetOrCreateLine returns the line for the product and variant,
	// creating an empty line when none exists yet.
	GetOrCreateLine(ctx context.Context, productID int64, variant string) (*stock.Line, error)

	// SaveLine persists the line's current quantity.
	SaveLine(ctx context.Context, line *stock.Line) error

	// AddMovement appends one movement row to the journal.
	AddMovement(ctx context.Context, movement stock.Movement) error

	// GetLinesBelow returns every line whose quantity is strictly below
	// the threshold.
	GetLinesBelow(ctx context.Context, threshold int) ([]*stock.Line, error)
}
