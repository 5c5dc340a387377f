package ports

import (
	"context"

	"movers/internal/core/domain/model/kernel"
)

// CaptureRequest asks the payment provider to charge AmountMinor (cents) in Currency.
type CaptureRequest struct {
	OrderID       kernel.UUID
	CustomerID    kernel.UUID
	AmountMinor   int64
	Currency      string
	PaymentMethod string
	// IdempotencyKey lets the provider collapse retries of the same capture.
	IdempotencyKey string
	Description    string
}

// CaptureResult is the outcome of a capture the provider accepted.
type CaptureResult struct {
	Succeeded bool
	Reference string
	// Status is the raw provider status, kept for logging.
	Status string
}

// PaymentProvider captures payments. A declined charge may be reported either as
// a non-nil error or as Succeeded == false; callers treat both as a failed payment.
// Implementations must honor ctx cancellation.
type PaymentProvider interface {
	Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error)
}
