// Package mover provides the Mover aggregate: a vetted service provider with a
// position on the map and an average customer rating.
//
// Key business rules:
//   - A mover is eligible for booking only when identity is verified AND the
//     background check has passed
//   - The rating is the mean of all submitted scores, or 0 when there are none;
//     it is only changed through ApplyRating
//   - Movers are never deleted
package mover
