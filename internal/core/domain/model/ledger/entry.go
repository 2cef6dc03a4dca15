// Package ledger provides the append-only financial entry backing revenue and
// cash-balance reporting. Entries are value objects: once appended they are
// never updated or deleted.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry.
var ErrEntryIsNotConstructed = errors.New("ledger Entry must be created via NewEntry constructor")

// Type classifies an entry as money in or money out.
type Type string

const (
	// TypeRevenue is money in.
	TypeRevenue Type = "revenue"
	// TypeExpense is money out.
	TypeExpense Type = "expense"
)

// Entry categories used by the dispatch engine. Admin bookkeeping may append
// entries with other categories; these two are the ones the core writes.
const (
	// CategorySale is the accrual of an order's charged total, posted when
	// the order leaves deferral.
	CategorySale = "vente"
	// CategoryCashCollected reconciles the courier's cash on delivery
	// completion.
	CategoryCashCollected = "encaissement"
)

// Entry is one financial transaction row.
type Entry struct {
	entryType   Type
	category    string
	description string
	amount      float64
	method      string
	date        time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates a validated ledger entry. Amount must be positive; the
// entry type carries the sign.
func NewEntry(entryType Type, category, description string, amount float64, method string, date time.Time) (Entry, error) {
	if entryType != TypeRevenue && entryType != TypeExpense {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("entryType", fmt.Errorf("%q is not a valid entry type", entryType))
	}
	if category == "" {
		return Entry{}, errs.NewValueIsRequiredError("category")
	}
	if amount <= 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%.2f is not greater than 0", amount))
	}

	return Entry{
		entryType:   entryType,
		category:    category,
		description: description,
		amount:      amount,
		method:      method,
		date:        date,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Entry was created via NewEntry.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// EntryType returns revenue or expense.
func (e Entry) EntryType() Type { return e.entryType }

// Category returns the bookkeeping category.
func (e Entry) Category() string { return e.category }

// Description returns the free-text description.
func (e Entry) Description() string { return e.description }

// Amount returns the unsigned amount.
func (e Entry) Amount() float64 { return e.amount }

// Method returns the payment method.
func (e Entry) Method() string { return e.method }

// Date returns the accounting date.
func (e Entry) Date() time.Time { return e.date }
