package commands

import (
	"errors"
	"fmt"

	"boutique/internal/core/domain/model/stock"
	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrRecordStockMovementCommandIsNotConstructed = errors.New(
		"RecordStockMovementCommand must be created via NewRecordStockMovementCommand constructor",
	)
)

// RecordStockMovementCommand represents a manual stock correction: a restock
// delivery coming in, or an operator writing off spoiled or missing stock.
// Cancelled orders are never restocked automatically; this is the path an
// operator uses to put that stock back.
type RecordStockMovementCommand struct { //nolint:recvcheck //using for validation
	productID int64
	variant   string
	direction stock.Direction
	quantity  int
	reason    string

	guard guard.ConstructorGuard
}

// NewRecordStockMovementCommand creates the command.
func NewRecordStockMovementCommand(
	productID int64,
	variant string,
	direction stock.Direction,
	quantity int,
	reason string,
) (RecordStockMovementCommand, error) {
	cmd := RecordStockMovementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setVariant(variant),
		cmd.setDirection(direction),
		cmd.setQuantity(quantity),
		cmd.setReason(reason),
	); err != nil {
		return RecordStockMovementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordStockMovementCommand) Validate() error {
	return c.guard.Validate(ErrRecordStockMovementCommandIsNotConstructed)
}

// ProductID returns the product the movement belongs to.
func (c RecordStockMovementCommand) ProductID() int64 {
	return c.productID
}

// Variant returns the product variant the movement belongs to.
func (c RecordStockMovementCommand) Variant() string {
	return c.variant
}

// Direction returns whether stock comes in or goes out.
func (c RecordStockMovementCommand) Direction() stock.Direction {
	return c.direction
}

// Quantity returns the amount moved.
func (c RecordStockMovementCommand) Quantity() int {
	return c.quantity
}

// Reason returns the audit note for the movement.
func (c RecordStockMovementCommand) Reason() string {
	return c.reason
}

func (c *RecordStockMovementCommand) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productID", fmt.Errorf("%d is not a valid product id", productID))
	}

	c.productID = productID
	return nil
}

func (c *RecordStockMovementCommand) setVariant(variant string) error {
	if variant == "" {
		return errs.NewValueIsRequiredError("variant")
	}

	c.variant = variant
	return nil
}

func (c *RecordStockMovementCommand) setDirection(direction stock.Direction) error {
	if direction != stock.DirectionIn && direction != stock.DirectionOut {
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not in or out", direction))
	}

	c.direction = direction
	return nil
}

func (c *RecordStockMovementCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *RecordStockMovementCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
