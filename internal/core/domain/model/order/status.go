package order

import (
	"errors"
	"fmt"

	"boutique/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel wrapped by every rejected status
// transition. Callers classify it with errors.Is to report the violation to
// the acting operator without touching the order.
var ErrIllegalTransition = errors.New("illegal order status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	PendingApproval ──> Pending ──> EnRoute ──> Delivered
//	       │               │           │
//	       └───────────────┴───────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. Any transition not drawn above is
// rejected with an error wrapping ErrIllegalTransition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingApproval holds an order from a customer whose trust status is
	// not yet approved. Stock, ledger and loyalty are all deferred while an
	// order is in this state.
	PendingApproval

	// Pending means the order awaits courier pickup.
	Pending

	// EnRoute means the assigned courier has declared a delivery estimate.
	EnRoute

	// Delivered is the terminal success state.
	Delivered

	// Cancelled is the terminal failure/refusal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		PendingApproval: "pending_approval",
		Pending:         "pending",
		EnRoute:         "en_route",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingApproval: "pending_approval",
		Pending:         "pending",
		EnRoute:         "en_route",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// Validate checks if the Status value is one of the five defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in logs, messages and queries.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a snake_case status name back into a Status.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Approve transitions a deferred order into the courier backlog.
//
// Valid transition: PendingApproval -> Pending.
func (s Status) Approve() (Status, error) {
	if s != PendingApproval {
		return 0, transitionError("approve", s)
	}
	return Pending, nil
}

// StartDelivery transitions a backlog order into active delivery.
//
// Valid transition: Pending -> EnRoute.
func (s Status) StartDelivery() (Status, error) {
	if s != Pending {
		return 0, transitionError("start delivery", s)
	}
	return EnRoute, nil
}

// Complete marks an active delivery as done.
//
// Valid transition: EnRoute -> Delivered.
func (s Status) Complete() (Status, error) {
	if s != EnRoute {
		return 0, transitionError("complete", s)
	}
	return Delivered, nil
}

// Cancel terminates the order.
//
// Valid transitions: any non-terminal state -> Cancelled. Covers courier
// refusal, admin deletion and the batch cancellation that follows a customer
// block.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return 0, transitionError("cancel", s)
	}
	return Cancelled, nil
}

func transitionError(action string, from Status) error {
	return fmt.Errorf("%w: cannot %s an order in status %s", ErrIllegalTransition, action, from)
}
