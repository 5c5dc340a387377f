// Package kernel holds the value objects shared by every aggregate of the
// movers marketplace: UUID identifiers and geographic Location points with a
// great-circle distance metric.
//
// Value objects are immutable and must be created through their constructors;
// the zero value fails Validate.
package kernel
