package queries

import (
	"errors"
	"time"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrGetLedgerQueryIsNotConstructed = errors.New(
		"GetLedgerQuery must be created via NewGetLedgerQuery constructor",
	)
)

const (
	defaultLedgerLimit = 100
	maxLedgerLimit     = 500
)

// GetLedgerQuery retrieves recent financial journal entries, optionally
// filtered by category (vente, encaissement, ...). The category filter is
// what separates accrued sales from cash reconciliation rows.
type GetLedgerQuery struct {
	category string
	limit    int

	guard guard.ConstructorGuard
}

// NewGetLedgerQuery creates the query. An empty category means all entries;
// a non-positive limit falls back to the default page size.
func NewGetLedgerQuery(category string, limit int) (GetLedgerQuery, error) {
	q := GetLedgerQuery{
		category: category,
		limit:    defaultLedgerLimit,
		guard:    guard.NewConstructorGuard(),
	}

	if limit > maxLedgerLimit {
		return GetLedgerQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxLedgerLimit)
	}
	if limit > 0 {
		q.limit = limit
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerQueryIsNotConstructed)
}

// Category returns the category filter, empty for all entries.
func (q GetLedgerQuery) Category() string {
	return q.category
}

// Limit returns the page size.
func (q GetLedgerQuery) Limit() int {
	return q.limit
}

// GetLedgerQueryResponse is one journal entry row, newest first.
type GetLedgerQueryResponse struct {
	ID          int64     `json:"id"`
	EntryType   string    `json:"entry_type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	Date        time.Time `json:"date"`
}
