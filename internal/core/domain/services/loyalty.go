package services

import (
	"fmt"

	"boutique/internal/pkg/errs"
)

// Default loyalty parameters: every 10th order gets 10% off, capped at 20.
const (
	DefaultLoyaltyThreshold = 10
	DefaultLoyaltyRate      = 0.10
	DefaultLoyaltyCap       = 20.0
)

// LoyaltyPolicy computes the loyalty discount for an order given the
// customer's historical order count. It is pure and deterministic: the same
// inputs always produce the same discount.
//
// Deferred orders must be priced with the counter value at approval time, not
// at submission time, so the policy is always called inside the transaction
// that settles the order.
type LoyaltyPolicy struct {
	threshold int
	rate      float64
	cap       float64
}

// NewLoyaltyPolicy creates a policy with the given threshold, rate and cap.
func NewLoyaltyPolicy(threshold int, rate, cap float64) (LoyaltyPolicy, error) {
	if threshold <= 0 {
		return LoyaltyPolicy{}, errs.NewValueIsInvalidErrorWithCause("threshold", fmt.Errorf("%d is not greater than 0", threshold))
	}
	if rate <= 0 || rate > 1 {
		return LoyaltyPolicy{}, errs.NewValueIsOutOfRangeError("rate", rate, 0, 1)
	}
	if cap <= 0 {
		return LoyaltyPolicy{}, errs.NewValueIsInvalidErrorWithCause("cap", fmt.Errorf("%.2f is not greater than 0", cap))
	}

	return LoyaltyPolicy{threshold: threshold, rate: rate, cap: cap}, nil
}

// DefaultLoyaltyPolicy creates a policy with the default parameters.
func DefaultLoyaltyPolicy() LoyaltyPolicy {
	policy, _ := NewLoyaltyPolicy(DefaultLoyaltyThreshold, DefaultLoyaltyRate, DefaultLoyaltyCap)
	return policy
}

// Discount returns the discount for the order that would take the customer's
// lifetime count to priorOrderCount+1: when that lands on a multiple of the
// threshold, the discount is min(total * rate, cap), otherwise zero.
func (p LoyaltyPolicy) Discount(priorOrderCount int, total float64) float64 {
	if priorOrderCount < 0 || total <= 0 {
		return 0
	}
	if (priorOrderCount+1)%p.threshold != 0 {
		return 0
	}

	discount := total * p.rate
	if discount > p.cap {
		discount = p.cap
	}
	return discount
}
