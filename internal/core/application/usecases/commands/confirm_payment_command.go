package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand captures the deposit for a pending order with the given
// payment method (a provider token such as "pm_card_visa"). An optional attempt
// key distinguishes deliberate retries with the same payment method; repeated
// submissions of the same attempt are charged at most once.
type ConfirmPaymentCommand struct {
	orderID       kernel.UUID
	paymentMethod string
	attemptKey    string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderID kernel.UUID, paymentMethod string) (ConfirmPaymentCommand, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)

	var err error
	if vErr := orderID.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if paymentMethod == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentMethod"))
	}
	if err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID:       orderID,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmPaymentCommand) PaymentMethod() string {
	return c.paymentMethod
}

// WithAttemptKey returns a copy of the command bound to a caller supplied
// attempt key, typically the Idempotency-Key request header.
func (c ConfirmPaymentCommand) WithAttemptKey(key string) ConfirmPaymentCommand {
	c.attemptKey = strings.TrimSpace(key)
	return c
}

func (c ConfirmPaymentCommand) AttemptKey() string {
	return c.attemptKey
}

// IdempotencyKey identifies this capture attempt at the payment provider. It
// changes with the payment method or the attempt key, and repeats otherwise.
func (c ConfirmPaymentCommand) IdempotencyKey() string {
	sum := sha256.Sum256([]byte(c.orderID.String() + "\x00" + c.paymentMethod + "\x00" + c.attemptKey))
	return "order-deposit-" + c.orderID.String() + "-" + hex.EncodeToString(sum[:12])
}
