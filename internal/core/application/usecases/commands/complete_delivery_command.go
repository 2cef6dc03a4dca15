package commands

import (
	"errors"
	"fmt"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// CompleteDeliveryCommand represents a courier confirming a delivery.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	courierID string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates the command.
func NewCompleteDeliveryCommand(orderID int64, courierID string) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c CompleteDeliveryCommand) OrderID() int64 {
	return c.orderID
}

// CourierID returns the acting courier's chat identity.
func (c CompleteDeliveryCommand) CourierID() string {
	return c.courierID
}

func (c *CompleteDeliveryCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierID")
	}

	c.courierID = courierID
	return nil
}
