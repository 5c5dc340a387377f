// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: a booked move between two addresses with a fixed total cost
//   - Status: the lifecycle state and its allowed transitions
//
// Key business rules:
//   - Orders are created pending; end time must be after start time
//   - pending -> confirmed only after the deposit was captured
//   - confirmed -> completed
//   - pending|confirmed -> cancelled
//   - completed and cancelled are terminal
//
// Repositories persist transitions with a compare-and-set on the previous
// status, see Order.PersistedStatus.
//
// A rating may reference an order only once it is completed, see
// Order.EnsureRatableBy.
package order
