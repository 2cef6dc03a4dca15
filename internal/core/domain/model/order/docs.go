// Package order provides the Order aggregate root and its lifecycle state
// machine for the boutique dispatch engine.
//
// The package includes:
//   - Order: the aggregate root owning identity, line items, pricing and status
//   - Status: a state machine enforcing the legal lifecycle transitions
//   - LineItem: an immutable value object describing one ordered article
//
// Key business rules:
//   - An order's charged total is always declared total minus discount, and the
//     discount is applied at most once
//   - Status only moves along the edges pending_approval -> pending -> en_route
//     -> delivered, with cancellation allowed from any non-terminal state
//   - Courier-facing transitions carry the acting courier identity, which must
//     match the order's assignment (checked by the application layer)
//
// The package follows the same Domain-Driven Design conventions as the rest of
// the codebase: private fields, validating constructors guarded against
// zero-value construction, and Restore* factories for persistence.
package order
