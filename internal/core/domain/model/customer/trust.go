package customer

import (
	"errors"
	"fmt"

	"boutique/internal/pkg/errs"
)

// ErrIllegalTrustTransition is wrapped by every rejected trust change.
// Trust never moves backward: once approved or blocked, a handle never
// returns to pending, and blocked is final.
var ErrIllegalTrustTransition = errors.New("illegal trust status transition")

// TrustStatus is the customer-trust state machine:
//
//	TrustPending ──> TrustApproved ──> TrustBlocked
//	      │                                 ▲
//	      └─────────────────────────────────┘
type TrustStatus int

const (
	// TrustUnknown represents an invalid or undefined status.
	TrustUnknown TrustStatus = iota

	// TrustPending marks a handle awaiting manual review. Orders are
	// accepted but deferred.
	TrustPending

	// TrustApproved marks a handle that orders normally.
	TrustApproved

	// TrustBlocked marks a handle that can no longer place orders. Final.
	TrustBlocked
)

func getTrustStatusStrings() map[TrustStatus]string {
	return map[TrustStatus]string{
		TrustUnknown:  "unknown",
		TrustPending:  "pending",
		TrustApproved: "approved",
		TrustBlocked:  "blocked",
	}
}

// Validate checks the status is one of the three defined states.
func (s TrustStatus) Validate() error {
	if s != TrustPending && s != TrustApproved && s != TrustBlocked {
		return errs.NewValueIsInvalidErrorWithCause("trust status", fmt.Errorf("%d is not a valid trust status", s))
	}
	return nil
}

// String returns the lowercase name of the status.
func (s TrustStatus) String() string {
	if str, ok := getTrustStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// TrustStatusFromString parses a lowercase status name back into a TrustStatus.
func TrustStatusFromString(name string) (TrustStatus, error) {
	for status, str := range getTrustStatusStrings() {
		if status != TrustUnknown && str == name {
			return status, nil
		}
	}
	return TrustUnknown, errs.NewValueIsInvalidErrorWithCause("trust status", fmt.Errorf("%q is not a valid trust status", name))
}

// Approve transitions pending -> approved.
func (s TrustStatus) Approve() (TrustStatus, error) {
	if s != TrustPending {
		return 0, fmt.Errorf("%w: cannot approve a %s customer", ErrIllegalTrustTransition, s)
	}
	return TrustApproved, nil
}

// Block transitions pending or approved -> blocked.
func (s TrustStatus) Block() (TrustStatus, error) {
	if s != TrustPending && s != TrustApproved {
		return 0, fmt.Errorf("%w: cannot block a %s customer", ErrIllegalTrustTransition, s)
	}
	return TrustBlocked, nil
}
