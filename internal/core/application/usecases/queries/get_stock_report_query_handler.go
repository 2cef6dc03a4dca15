package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetStockReportQueryHandler reads the stock lines and the movement journal
// straight from their tables.
type GetStockReportQueryHandler struct {
	db *gorm.DB
}

// NewGetStockReportQueryHandler creates a handler for stock reports.
func NewGetStockReportQueryHandler(db *gorm.DB) GetStockReportQueryHandler {
	return GetStockReportQueryHandler{db: db}
}

// Handle executes the report: every line ordered by product and variant,
// then the newest journal rows up to the query's limit.
func (h GetStockReportQueryHandler) Handle(
	ctx context.Context,
	query GetStockReportQuery,
) (GetStockReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStockReportQueryResponse{}, err
	}

	report := GetStockReportQueryResponse{
		Lines:     make([]StockLineResponse, 0),
		Movements: make([]StockMovementResponse, 0),
	}

	lineRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			variant,
			qty
		FROM stock
		ORDER BY product_id, variant
	`).Rows()
	if err != nil {
		return GetStockReportQueryResponse{}, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line StockLineResponse
		if err = lineRows.Scan(&line.ProductID, &line.Variant, &line.Qty); err != nil {
			return GetStockReportQueryResponse{}, err
		}
		report.Lines = append(report.Lines, line)
	}
	if err = lineRows.Err(); err != nil {
		return GetStockReportQueryResponse{}, err
	}

	movementRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			variant,
			direction,
			quantity,
			stock_after,
			reason,
			at
		FROM stock_movements
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, query.MovementsLimit()).Rows()
	if err != nil {
		return GetStockReportQueryResponse{}, err
	}
	defer movementRows.Close()

	for movementRows.Next() {
		var m StockMovementResponse
		err = movementRows.Scan(
			&m.ProductID,
			&m.Variant,
			&m.Direction,
			&m.Quantity,
			&m.StockAfter,
			&m.Reason,
			&m.At,
		)
		if err != nil {
			return GetStockReportQueryResponse{}, err
		}
		report.Movements = append(report.Movements, m)
	}
	if err = movementRows.Err(); err != nil {
		return GetStockReportQueryResponse{}, err
	}

	return report, nil
}
