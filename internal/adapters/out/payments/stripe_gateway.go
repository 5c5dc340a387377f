// Package payments implements ports.PaymentProvider on top of Stripe PaymentIntents.
package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"movers/internal/core/ports"
	"movers/internal/pkg/log"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

var (
	ErrCardDeclined     = errors.New("card was declined")
	ErrProviderDown     = errors.New("payment provider is unavailable")
	ErrIdempotencyInUse = errors.New("idempotency key is already in use")
)

var _ ports.PaymentProvider = (*StripeGateway)(nil)

type StripeGateway struct {
	client *client.API
	logger *log.Zap
}

// NewStripeGateway creates a gateway bound to apiKey. backends may be nil to
// talk to api.stripe.com.
func NewStripeGateway(apiKey string, backends *stripe.Backends, logger *log.Zap) *StripeGateway {
	if logger == nil {
		logger = log.NewNop()
	}

	sc := &client.API{}
	sc.Init(apiKey, backends)

	return &StripeGateway{client: sc, logger: logger.Named("stripe")}
}

// Capture charges the saved payment method immediately. A payment intent that
// needs customer action is reported as not succeeded rather than left open.
func (g *StripeGateway) Capture(ctx context.Context, req ports.CaptureRequest) (ports.CaptureResult, error) {
	if req.AmountMinor <= 0 {
		return ports.CaptureResult{}, fmt.Errorf("amount must be positive, got %d", req.AmountMinor)
	}
	if req.PaymentMethod == "" {
		return ports.CaptureResult{}, errors.New("payment method is required")
	}

	params := &stripe.PaymentIntentParams{
		Amount:                stripe.Int64(req.AmountMinor),
		Currency:              stripe.String(req.Currency),
		PaymentMethod:         stripe.String(req.PaymentMethod),
		PaymentMethodTypes:    stripe.StringSlice([]string{"card"}),
		Confirm:               stripe.Bool(true),
		ErrorOnRequiresAction: stripe.Bool(true),
		Description:           stripe.String(req.Description),
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}
	params.AddMetadata("order_id", req.OrderID.String())
	params.AddMetadata("customer_id", req.CustomerID.String())
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return ports.CaptureResult{Reference: failedIntentID(err)}, g.mapStripeError(err)
	}

	g.logger.Info("payment intent created",
		zap.String("orderId", req.OrderID.String()),
		zap.String("paymentIntent", pi.ID),
		zap.String("status", string(pi.Status)),
	)

	return ports.CaptureResult{
		Succeeded: pi.Status == stripe.PaymentIntentStatusSucceeded,
		Reference: pi.ID,
		Status:    string(pi.Status),
	}, nil
}

// mapStripeError keeps stripe types out of the core. Transport errors are
// returned unchanged so a context deadline stays detectable.
func (g *StripeGateway) mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return err
	}

	g.logger.Warn("stripe request failed",
		zap.String("type", string(stripeErr.Type)),
		zap.String("code", string(stripeErr.Code)),
		zap.Int("httpStatus", stripeErr.HTTPStatusCode),
	)

	switch stripeErr.Code {
	case stripe.ErrorCodeCardDeclined:
		return fmt.Errorf("%w: %s", ErrCardDeclined, stripeErr.Msg)
	case stripe.ErrorCodeExpiredCard:
		return fmt.Errorf("%w: card has expired", ErrCardDeclined)
	case stripe.ErrorCodeBalanceInsufficient:
		return fmt.Errorf("%w: insufficient funds", ErrCardDeclined)
	case stripe.ErrorCodeIdempotencyKeyInUse:
		return ErrIdempotencyInUse
	}
	if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w | %w", ErrProviderDown, err)
	}

	return fmt.Errorf("stripe request failed | %w", err)
}

func failedIntentID(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.PaymentIntent != nil {
		return stripeErr.PaymentIntent.ID
	}
	return ""
}
