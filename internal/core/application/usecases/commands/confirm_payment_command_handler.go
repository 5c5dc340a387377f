package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/order"
	"movers/internal/core/ports"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	paymentUpstream = "payment provider"

	DefaultCurrency = "usd"
)

// DefaultDepositRate is the share of the total cost captured on confirmation.
var DefaultDepositRate = decimal.RequireFromString("0.10")

// PaymentSettings configures deposit capture.
type PaymentSettings struct {
	DepositRate decimal.Decimal
	Currency    string
	Timeout     time.Duration
}

// UncommittedCaptureError reports a deposit that the provider captured but that
// could not be recorded on the order, typically because the order left pending
// while the capture was in flight. Reference identifies the charge to reconcile
// or refund. The error kind is that of Cause.
type UncommittedCaptureError struct {
	OrderID   kernel.UUID
	Reference string
	Cause     error
}

func (e *UncommittedCaptureError) Error() string {
	return fmt.Sprintf("deposit %s captured for order %s was not recorded: %v", e.Reference, e.OrderID, e.Cause)
}

func (e *UncommittedCaptureError) Unwrap() error {
	return e.Cause
}

// ConfirmPaymentCommandHandler moves a pending order to confirmed once the
// deposit is captured.
//
// The order is checked before the provider is called, so a non-pending order
// never triggers a charge. The capture itself runs outside any transaction.
// The transition is then written with a compare-and-set on the status; when two
// confirmations race, exactly one wins and the other gets an invalid transition.
// Provider decline, provider error and timeout all leave the order pending.
// A capture that cannot be recorded is logged and returned as an
// UncommittedCaptureError carrying the provider reference.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	payments   ports.PaymentProvider
	settings   PaymentSettings
	logger     *log.Zap
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	payments ports.PaymentProvider,
	settings PaymentSettings,
	logger *log.Zap,
) ConfirmPaymentCommandHandler {
	if logger == nil {
		logger = log.NewNop()
	}
	if settings.DepositRate.IsZero() {
		settings.DepositRate = DefaultDepositRate
	}
	if settings.Currency == "" {
		settings.Currency = DefaultCurrency
	}
	settings.Currency = strings.ToLower(settings.Currency)

	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		settings:   settings,
		logger:     logger.Named("confirm_payment"),
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.load(ctx, cmd)
	if err != nil {
		return err
	}
	if err = o.EnsureCanConfirm(); err != nil {
		return err
	}

	deposit, err := o.Deposit(h.settings.DepositRate)
	if err != nil {
		return err
	}

	result, err := callUpstream(ctx, paymentUpstream, h.settings.Timeout,
		func(ctx context.Context) (ports.CaptureResult, error) {
			return h.payments.Capture(ctx, ports.CaptureRequest{
				OrderID:        o.ID(),
				CustomerID:     o.CustomerID(),
				AmountMinor:    deposit.Shift(order.CurrencyPrecision).IntPart(),
				Currency:       h.settings.Currency,
				PaymentMethod:  cmd.PaymentMethod(),
				IdempotencyKey: cmd.IdempotencyKey(),
				Description:    fmt.Sprintf("Deposit for moving order %s", o.ID()),
			})
		})
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamTimeout) {
			return err
		}
		return errs.NewPaymentFailedErrorWithCause(result.Reference, err)
	}
	if !result.Succeeded {
		return errs.NewPaymentFailedErrorWithCause(result.Reference,
			fmt.Errorf("capture finished with status %q", result.Status))
	}

	if err = h.confirm(ctx, cmd, result.Reference, deposit); err != nil {
		h.logger.Error("captured deposit was not recorded on the order",
			zap.String("order_id", cmd.OrderID().String()),
			zap.String("payment_reference", result.Reference),
			zap.String("deposit", deposit.StringFixed(order.CurrencyPrecision)),
			zap.Error(err),
		)
		return &UncommittedCaptureError{OrderID: cmd.OrderID(), Reference: result.Reference, Cause: err}
	}

	return nil
}

func (h *ConfirmPaymentCommandHandler) load(ctx context.Context, cmd ConfirmPaymentCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, cmd.OrderID())
}

func (h *ConfirmPaymentCommandHandler) confirm(
	ctx context.Context,
	cmd ConfirmPaymentCommand,
	reference string,
	deposit decimal.Decimal,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ConfirmPayment(reference, cmd.PaymentMethod(), deposit); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
