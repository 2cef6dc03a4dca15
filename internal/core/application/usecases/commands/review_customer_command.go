package commands

import (
	"errors"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrReviewCustomerCommandIsNotConstructed = errors.New(
		"ReviewCustomerCommand must be created via NewReviewCustomerCommand constructor",
	)
)

// ReviewAction is the operator's verdict on a pending customer.
type ReviewAction string

const (
	// ReviewApprove trusts the handle and activates its deferred orders.
	ReviewApprove ReviewAction = "approve"
	// ReviewBlock bars the handle and cancels its non-terminal orders.
	ReviewBlock ReviewAction = "block"
)

// ReviewCustomerCommand represents an operator's trust decision on a handle.
type ReviewCustomerCommand struct { //nolint:recvcheck //using for validation
	handle   string
	action   ReviewAction
	reviewer string
	reason   string

	guard guard.ConstructorGuard
}

// NewReviewCustomerCommand creates a review command. Reason is free text,
// recorded only on block.
func NewReviewCustomerCommand(handle string, action ReviewAction, reviewer, reason string) (ReviewCustomerCommand, error) {
	cmd := ReviewCustomerCommand{
		reviewer: reviewer,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setHandle(handle),
		cmd.setAction(action),
	); err != nil {
		return ReviewCustomerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewCustomerCommand) Validate() error {
	return c.guard.Validate(ErrReviewCustomerCommandIsNotConstructed)
}

// Handle returns the reviewed customer's handle.
func (c ReviewCustomerCommand) Handle() string {
	return c.handle
}

// Action returns the verdict.
func (c ReviewCustomerCommand) Action() ReviewAction {
	return c.action
}

// Reviewer returns the deciding operator's identity.
func (c ReviewCustomerCommand) Reviewer() string {
	return c.reviewer
}

// Reason returns the block reason, empty on approve.
func (c ReviewCustomerCommand) Reason() string {
	return c.reason
}

func (c *ReviewCustomerCommand) setHandle(handle string) error {
	if handle == "" {
		return errs.NewValueIsRequiredError("handle")
	}

	c.handle = handle
	return nil
}

func (c *ReviewCustomerCommand) setAction(action ReviewAction) error {
	if action != ReviewApprove && action != ReviewBlock {
		return errs.NewValueIsInvalidError("action")
	}

	c.action = action
	return nil
}
