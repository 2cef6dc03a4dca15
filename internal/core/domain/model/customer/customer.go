package customer

import (
	"errors"
	"time"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

// Domain errors for customer operations.
var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was
	// not created through NewCustomer or RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
	// ErrCustomerBlocked is the trust error rejecting an order from a
	// blocked handle before any order row is written.
	ErrCustomerBlocked = errors.New("customer is blocked")
)

// Customer is the trust record for one pseudonymous handle. A handle has at
// most one record, created lazily on its first order.
type Customer struct {
	handle      string
	status      TrustStatus
	firstSeen   time.Time
	approvedAt  *time.Time
	approvedBy  string
	blockReason string
	notes       string

	guard guard.ConstructorGuard
}

// NewCustomer creates a pending trust record for a freshly seen handle.
func NewCustomer(handle string, now time.Time) (*Customer, error) {
	if handle == "" {
		return nil, errs.NewValueIsRequiredError("handle")
	}

	return &Customer{
		handle:    handle,
		status:    TrustPending,
		firstSeen: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCustomer reconstructs a trust record from persistence.
func RestoreCustomer(
	handle string,
	status TrustStatus,
	firstSeen time.Time,
	approvedAt *time.Time,
	approvedBy, blockReason, notes string,
) (*Customer, error) {
	if handle == "" {
		return nil, errs.NewValueIsRequiredError("handle")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Customer{
		handle:      handle,
		status:      status,
		firstSeen:   firstSeen,
		approvedAt:  approvedAt,
		approvedBy:  approvedBy,
		blockReason: blockReason,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Customer was created via a constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Handle returns the customer's pseudonymous handle.
func (c *Customer) Handle() string { return c.handle }

// Status returns the current trust status.
func (c *Customer) Status() TrustStatus { return c.status }

// FirstSeen returns when the handle placed its first order.
func (c *Customer) FirstSeen() time.Time { return c.firstSeen }

// ApprovedAt returns the approval timestamp, nil while unapproved.
func (c *Customer) ApprovedAt() *time.Time { return c.approvedAt }

// ApprovedBy returns the approving operator identity, empty while unapproved.
func (c *Customer) ApprovedBy() string { return c.approvedBy }

// BlockReason returns the free-text reason recorded on block.
func (c *Customer) BlockReason() string { return c.blockReason }

// Notes returns the operator notes.
func (c *Customer) Notes() string { return c.notes }

// Approve marks the handle trusted. Only pending customers can be approved.
func (c *Customer) Approve(approver string, now time.Time) error {
	newStatus, err := c.status.Approve()
	if err != nil {
		return err
	}
	c.status = newStatus
	c.approvedAt = &now
	c.approvedBy = approver
	return nil
}

// Block bars the handle from ordering. Pending and approved customers can be
// blocked; a blocked customer stays blocked.
func (c *Customer) Block(reason string) error {
	newStatus, err := c.status.Block()
	if err != nil {
		return err
	}
	c.status = newStatus
	c.blockReason = reason
	return nil
}
