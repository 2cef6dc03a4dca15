package commands

import (
	"errors"
	"fmt"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrStartDeliveryCommandIsNotConstructed = errors.New(
		"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
	)
)

// StartDeliveryCommand represents a courier declaring their delivery estimate
// for an assigned order, moving it en route.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID    int64
	courierID  string
	etaMinutes int

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates the command. The estimate must be one of
// the fixed buckets.
func NewStartDeliveryCommand(orderID int64, courierID string, etaMinutes int) (StartDeliveryCommand, error) {
	cmd := StartDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setEtaMinutes(etaMinutes),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being started.
func (c StartDeliveryCommand) OrderID() int64 {
	return c.orderID
}

// CourierID returns the acting courier's chat identity.
func (c StartDeliveryCommand) CourierID() string {
	return c.courierID
}

// EtaMinutes returns the declared estimate.
func (c StartDeliveryCommand) EtaMinutes() int {
	return c.etaMinutes
}

func (c *StartDeliveryCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *StartDeliveryCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierID")
	}

	c.courierID = courierID
	return nil
}

func (c *StartDeliveryCommand) setEtaMinutes(etaMinutes int) error {
	if err := order.ValidateEta(etaMinutes); err != nil {
		return err
	}

	c.etaMinutes = etaMinutes
	return nil
}
