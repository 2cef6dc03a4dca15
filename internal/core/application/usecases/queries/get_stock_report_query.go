package queries

import (
	"errors"
	"time"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrGetStockReportQueryIsNotConstructed = errors.New(
		"GetStockReportQuery must be created via NewGetStockReportQuery constructor",
	)
)

const (
	defaultMovementsLimit = 50
	maxMovementsLimit     = 500
)

// GetStockReportQuery retrieves the current stock lines together with the
// most recent movement journal rows.
type GetStockReportQuery struct {
	movementsLimit int

	guard guard.ConstructorGuard
}

// NewGetStockReportQuery creates the query. A non-positive limit falls back
// to the default journal page size.
func NewGetStockReportQuery(movementsLimit int) (GetStockReportQuery, error) {
	q := GetStockReportQuery{
		movementsLimit: defaultMovementsLimit,
		guard:          guard.NewConstructorGuard(),
	}

	if movementsLimit > maxMovementsLimit {
		return GetStockReportQuery{}, errs.NewValueIsOutOfRangeError(
			"movementsLimit", movementsLimit, 1, maxMovementsLimit)
	}
	if movementsLimit > 0 {
		q.movementsLimit = movementsLimit
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockReportQuery) Validate() error {
	return q.guard.Validate(ErrGetStockReportQueryIsNotConstructed)
}

// MovementsLimit returns the journal page size.
func (q GetStockReportQuery) MovementsLimit() int {
	return q.movementsLimit
}

// StockLineResponse is one product/variant quantity row.
type StockLineResponse struct {
	ProductID int64  `json:"product_id"`
	Variant   string `json:"variant,omitempty"`
	Qty       int    `json:"qty"`
}

// StockMovementResponse is one journal row, newest first.
type StockMovementResponse struct {
	ProductID  int64     `json:"product_id"`
	Variant    string    `json:"variant,omitempty"`
	Direction  string    `json:"direction"`
	Quantity   int       `json:"quantity"`
	StockAfter int       `json:"stock_after"`
	Reason     string    `json:"reason,omitempty"`
	At         time.Time `json:"at"`
}

// GetStockReportQueryResponse bundles the lines and the recent journal.
type GetStockReportQueryResponse struct {
	Lines     []StockLineResponse     `json:"lines"`
	Movements []StockMovementResponse `json:"movements"`
}
