package commands

import (
	"errors"
	"fmt"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrRefuseOrderCommandIsNotConstructed = errors.New(
		"RefuseOrderCommand must be created via NewRefuseOrderCommand constructor",
	)
)

// RefuseOrderCommand represents a courier declining an order that was
// offered to them.
type RefuseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	courierID string

	guard guard.ConstructorGuard
}

// NewRefuseOrderCommand creates the command.
func NewRefuseOrderCommand(orderID int64, courierID string) (RefuseOrderCommand, error) {
	cmd := RefuseOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RefuseOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefuseOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefuseOrderCommandIsNotConstructed)
}

// OrderID returns the order being refused.
func (c RefuseOrderCommand) OrderID() int64 {
	return c.orderID
}

// CourierID returns the acting courier's chat identity.
func (c RefuseOrderCommand) CourierID() string {
	return c.courierID
}

func (c *RefuseOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *RefuseOrderCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierID")
	}

	c.courierID = courierID
	return nil
}
