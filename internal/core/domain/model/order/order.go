package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrDiscountAlreadyApplied is returned on a second discount application.
	ErrDiscountAlreadyApplied = errors.New("discount has already been applied")
	// ErrIDAlreadyAssigned is returned when the persistence layer tries to
	// assign an id to an order that already has one.
	ErrIDAlreadyAssigned = errors.New("order id has already been assigned")
)

// etaBuckets are the delivery estimates a courier may pick, in minutes.
var etaBuckets = []int{15, 30, 45, 60}

// EtaBuckets returns the fixed delivery estimates, in minutes. The slice is
// a copy; callers cannot change the buckets ValidateEta accepts.
func EtaBuckets() []int {
	buckets := make([]int, len(etaBuckets))
	copy(buckets, etaBuckets)
	return buckets
}

// ValidateEta checks that the chosen estimate is one of the fixed buckets.
func ValidateEta(minutes int) error {
	for _, bucket := range etaBuckets {
		if minutes == bucket {
			return nil
		}
	}
	return errs.NewValueIsOutOfRangeError("etaMinutes", minutes, etaBuckets[0], etaBuckets[len(etaBuckets)-1])
}

// Order is the aggregate root for a customer order. It owns the order's
// identity, its immutable line items and pricing, and the lifecycle status.
//
// Invariants:
//   - total charged = declared total - discount, discount >= 0, applied once
//   - line items never change after creation
//   - status only moves along the edges defined by Status
//   - the delivery address is required unless the order is a pickup
type Order struct {
	// id is assigned by the store on first persistence; zero until then
	id int64

	// customer is the opaque, unverified customer handle
	customer string

	// deliveryType is the free-text delivery choice matched against zones
	deliveryType string

	// address is the delivery destination (empty for pickups)
	address string

	items []LineItem

	// total is the declared cart total before any discount
	total float64

	// discount is the loyalty discount, applied at most once
	discount float64

	status Status

	// zone is set once dispatch routing has resolved a delivery zone
	zone string

	// etaMinutes is the courier's declared estimate, set on StartDelivery
	etaMinutes *int

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new order. Deferred orders (unapproved customers) start
// in PendingApproval, everything else starts in Pending.
func NewOrder(
	customer, deliveryType, address string,
	items []LineItem,
	declaredTotal float64,
	deferred bool,
	now time.Time,
) (*Order, error) {
	status := Pending
	if deferred {
		status = PendingApproval
	}

	o := &Order{
		status:    status,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setCustomer(customer),
		o.setDeliveryType(deliveryType),
		o.setAddress(address),
		o.setItems(items),
		o.setTotal(declaredTotal),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without replaying the
// creation rules. The stored state is trusted except for the status value.
func RestoreOrder(
	id int64,
	customer, deliveryType, address string,
	items []LineItem,
	total, discount float64,
	status Status,
	zone string,
	etaMinutes *int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:           id,
		customer:     customer,
		deliveryType: deliveryType,
		address:      address,
		items:        items,
		total:        total,
		discount:     discount,
		status:       status,
		zone:         zone,
		etaMinutes:   etaMinutes,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// AssignID records the store-assigned identity. Ids are assigned exactly once
// and never reused.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	return nil
}

// ID returns the order's identity, or zero before first persistence.
func (o *Order) ID() int64 { return o.id }

// Customer returns the opaque customer handle.
func (o *Order) Customer() string { return o.customer }

// DeliveryType returns the free-text delivery choice.
func (o *Order) DeliveryType() string { return o.deliveryType }

// Address returns the delivery address (empty for pickups).
func (o *Order) Address() string { return o.address }

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the declared cart total before discount.
func (o *Order) Total() float64 { return o.total }

// Discount returns the applied loyalty discount.
func (o *Order) Discount() float64 { return o.discount }

// TotalCharged returns the amount actually charged: total minus discount.
func (o *Order) TotalCharged() float64 { return o.total - o.discount }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Zone returns the assigned delivery zone, or empty if not routed yet.
func (o *Order) Zone() string { return o.zone }

// EtaMinutes returns the courier's declared estimate, or nil before EnRoute.
func (o *Order) EtaMinutes() *int { return o.etaMinutes }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last-transition timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsPickup reports whether the delivery type denotes an on-site pickup, in
// which case no address is required.
func (o *Order) IsPickup() bool {
	return isPickupType(o.deliveryType)
}

// ApplyDiscount records the loyalty discount. A discount is applied at most
// once over the order's whole lifecycle, including deferred orders re-priced
// at approval time.
func (o *Order) ApplyDiscount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("discount", fmt.Errorf("%.2f is negative", amount))
	}
	if o.discount != 0 {
		return ErrDiscountAlreadyApplied
	}
	o.discount = amount
	return nil
}

// AssignZone records the delivery zone resolved by dispatch routing.
func (o *Order) AssignZone(zone string) error {
	if zone == "" {
		return errs.NewValueIsRequiredError("zone")
	}
	o.zone = zone
	return nil
}

// Approve moves a deferred order into the courier backlog.
func (o *Order) Approve(now time.Time) error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.updatedAt = now
	return nil
}

// StartDelivery records the courier's estimate and moves the order en route.
// The estimate must be one of the fixed buckets.
func (o *Order) StartDelivery(etaMinutes int, now time.Time) error {
	if err := ValidateEta(etaMinutes); err != nil {
		return err
	}
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.etaMinutes = &etaMinutes
	o.updatedAt = now
	return nil
}

// Complete marks the delivery as done. Terminal.
func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Cancel terminates the order from any non-terminal state. Terminal.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.updatedAt = now
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setDeliveryType(deliveryType string) error {
	if deliveryType == "" {
		return errs.NewValueIsRequiredError("deliveryType")
	}
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" && !isPickupType(o.deliveryType) {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%.2f is not greater than 0", total))
	}
	o.total = total
	return nil
}

func isPickupType(deliveryType string) bool {
	t := strings.ToLower(deliveryType)
	return strings.Contains(t, "emporter") || strings.Contains(t, "pickup") || strings.Contains(t, "retrait")
}
