package commands

import (
	"errors"
	"fmt"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// LineItemInput is one raw cart line as received from intake, validated into
// an order.LineItem by the handler.
type LineItemInput struct {
	ProductID int64
	Name      string
	Variant   string
	Quantity  int
	UnitPrice float64
}

// CreateOrderCommand represents a request to place a new customer order.
// Carries the raw intake payload: who orders, how it should be delivered,
// and the cart contents with the declared total.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer     string
	deliveryType string
	address      string
	items        []LineItemInput
	total        float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Validates the
// handle, delivery type, cart lines and declared total. The address rule
// (required unless pickup) is enforced by the order aggregate.
func NewCreateOrderCommand(
	customer, deliveryType, address string,
	items []LineItemInput,
	total float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setDeliveryType(deliveryType),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Customer returns the ordering customer's handle.
func (c CreateOrderCommand) Customer() string {
	return c.customer
}

// DeliveryType returns the free-text delivery choice.
func (c CreateOrderCommand) DeliveryType() string {
	return c.deliveryType
}

// Address returns the delivery address, possibly empty for pickups.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Items returns the raw cart lines.
func (c CreateOrderCommand) Items() []LineItemInput {
	items := make([]LineItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// Total returns the declared cart total before discount.
func (c CreateOrderCommand) Total() float64 {
	return c.total
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType string) error {
	if deliveryType == "" {
		return errs.NewValueIsRequiredError("deliveryType")
	}

	c.deliveryType = deliveryType
	return nil
}

func (c *CreateOrderCommand) setItems(items []LineItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = make([]LineItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setTotal(total float64) error {
	if total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%.2f is not greater than 0", total))
	}

	c.total = total
	return nil
}
