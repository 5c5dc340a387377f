// Package services provides domain services for logic that does not belong to
// a single aggregate.
//
// The package includes:
//   - MoverMatcher: ranks eligible movers by great-circle distance from an origin
//   - RatingAggregator: derives a mover's average from the stored score aggregate
//   - OrderPricing: computes an order's total cost from rate, distance and duration
//
// All services are stateless and safe for concurrent use.
package services
