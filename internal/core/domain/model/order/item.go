package order

import (
	"fmt"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

// LineItem is an immutable value object describing one ordered article:
// which product and variant, how many, and at what price. All fields are
// fixed at order creation.
type LineItem struct {
	productID int64
	name      string
	variant   string
	quantity  int
	unitPrice float64
	lineTotal float64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item. The line total is derived from
// quantity and unit price so the two can never disagree.
//
// Validation rules:
//   - product id must be positive
//   - display name must not be empty
//   - quantity must be >= 1
//   - unit price must be > 0
func NewLineItem(productID int64, name, variant string, quantity int, unitPrice float64) (LineItem, error) {
	if productID <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("productID", fmt.Errorf("%d is not a valid product id", productID))
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%.2f is not greater than 0", unitPrice))
	}

	return LineItem{
		productID: productID,
		name:      name,
		variant:   variant,
		quantity:  quantity,
		unitPrice: unitPrice,
		lineTotal: unitPrice * float64(quantity),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line item was created through NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(errs.NewValueIsInvalidError("line item is not constructed"))
}

// ProductID returns the catalog product identifier.
func (li LineItem) ProductID() int64 {
	return li.productID
}

// Name returns the display name shown on cards and summaries.
func (li LineItem) Name() string {
	return li.name
}

// Variant returns the variant label (may be empty for single-variant products).
func (li LineItem) Variant() string {
	return li.variant
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price per unit.
func (li LineItem) UnitPrice() float64 {
	return li.unitPrice
}

// LineTotal returns quantity times unit price.
func (li LineItem) LineTotal() float64 {
	return li.lineTotal
}
