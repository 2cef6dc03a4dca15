package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetLedgerQueryHandler reads the financial journal straight from the
// transactions table.
type GetLedgerQueryHandler struct {
	db *gorm.DB
}

// NewGetLedgerQueryHandler creates a handler for ledger listings.
func NewGetLedgerQueryHandler(db *gorm.DB) GetLedgerQueryHandler {
	return GetLedgerQueryHandler{db: db}
}

// Handle executes the listing, newest entries first.
func (h GetLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerQuery,
) ([]GetLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			entry_type,
			category,
			description,
			amount,
			method,
			date
		FROM transactions
	`
	args := make([]any, 0, 2)
	if query.Category() != "" {
		sql += ` WHERE category = ?`
		args = append(args, query.Category())
	}
	sql += ` ORDER BY date DESC, id DESC LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetLedgerQueryResponse, 0)
	for rows.Next() {
		var entry GetLedgerQueryResponse
		err = rows.Scan(
			&entry.ID,
			&entry.EntryType,
			&entry.Category,
			&entry.Description,
			&entry.Amount,
			&entry.Method,
			&entry.Date,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
