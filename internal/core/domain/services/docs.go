// Package services contains the domain services of the dispatch engine:
// stateless business logic that does not belong to any single aggregate.
//
// The package includes:
//   - LoyaltyPolicy: the pure discount calculation over a customer's
//     historical order count
//   - ZoneRouter: the keyword match resolving a delivery type to a zone and
//     the courier serving it
//   - DispatchBoard: the process-local table of active courier assignments,
//     backlog ordering and conversation relays
//
// The DispatchBoard is the one deliberately non-durable piece of core state;
// it is rebuilt from non-terminal orders at startup and all access goes
// through its methods under a single mutex.
package services
