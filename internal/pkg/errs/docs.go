// Package errs provides standardized error types for the movers marketplace.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input
//   - ObjectNotFoundError: a referenced mover, order or rating is absent
//   - InvalidTransitionError: an order state machine precondition does not hold
//   - PaymentFailedError: the payment provider declined or errored
//   - UpstreamTimeoutError: an external dependency exceeded its deadline
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error produced by the application onto a Kind, which the
// inbound adapters use to pick a response code.
package errs
