// Package stock provides the inventory line aggregate and the append-only
// movement audit record. Quantities are clamped at zero: a withdrawal never
// drives stock negative, and every change appends a movement carrying the
// resulting quantity so the movement log always reconstructs current stock.
package stock

import (
	"errors"
	"fmt"
	"time"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("stock Line must be created via NewLine constructor")

// Line is the quantity on hand for one (product, variant) pair.
type Line struct {
	productID int64
	variant   string
	qty       int

	guard guard.ConstructorGuard
}

// NewLine creates a stock line starting at zero quantity.
func NewLine(productID int64, variant string) (*Line, error) {
	if productID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("productID", fmt.Errorf("%d is not a valid product id", productID))
	}

	return &Line{
		productID: productID,
		variant:   variant,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreLine reconstructs a stock line from persistence.
func RestoreLine(productID int64, variant string, qty int) (*Line, error) {
	if productID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("productID", fmt.Errorf("%d is not a valid product id", productID))
	}
	if qty < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is negative", qty))
	}

	return &Line{
		productID: productID,
		variant:   variant,
		qty:       qty,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Line was created via a constructor.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the catalog product identifier.
func (l *Line) ProductID() int64 { return l.productID }

// Variant returns the variant label.
func (l *Line) Variant() string { return l.variant }

// Qty returns the current quantity on hand.
func (l *Line) Qty() int { return l.qty }

// Withdraw decrements the line by quantity, clamped at zero, and returns the
// movement to append. The movement records the requested quantity and the
// resulting stock so the audit trail shows shortfalls.
func (l *Line) Withdraw(quantity int, reason string, now time.Time) (Movement, error) {
	if quantity <= 0 {
		return Movement{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	l.qty -= quantity
	if l.qty < 0 {
		l.qty = 0
	}

	return newMovement(l, DirectionOut, quantity, reason, now), nil
}

// Deposit increments the line by quantity and returns the movement to append.
func (l *Line) Deposit(quantity int, reason string, now time.Time) (Movement, error) {
	if quantity <= 0 {
		return Movement{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	l.qty += quantity
	return newMovement(l, DirectionIn, quantity, reason, now), nil
}
