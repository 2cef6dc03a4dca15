// Package customer provides the customer-trust aggregate and loyalty counter.
//
// Customers are pseudonymous handles, not verified identities. A handle gets a
// record lazily on its first order, starting in the pending trust status. The
// trust status is monotonic: pending -> approved, pending -> blocked and
// approved -> blocked are the only legal moves, and nothing ever goes back.
//
// The loyalty counter tracks lifetime non-deferred orders per handle and is
// the input to the loyalty discount calculation.
package customer
