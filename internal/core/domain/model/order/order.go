package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/ddd"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	maxAddressLength = 500

	// CurrencyPrecision is the number of minor-unit digits kept for money amounts.
	CurrencyPrecision = 2
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrTimeRangeIsInvalid    = errs.NewValueIsInvalidErrorWithCause(
		"endTime", errors.New("end time must be after start time"))
	ErrOrderIsNotRatable = errs.NewValueIsInvalidErrorWithCause(
		"orderId", errors.New("only a completed order of the rated mover and rating customer can be referenced"))
)

type Order struct {
	ddd.EventRecorder

	id                 kernel.UUID
	customerID         kernel.UUID
	moverID            kernel.UUID
	originAddress      string
	destinationAddress string
	startTime          time.Time
	endTime            time.Time
	totalCost          decimal.Decimal
	status             Status
	persistedStatus    Status
	paymentReference   string
	paymentMethod      string
	depositAmount      decimal.Decimal
	guard              guard.ConstructorGuard
}

// NewOrder creates a pending order. Mover eligibility is checked by the caller,
// the order only references the mover by id.
func NewOrder(
	id, customerID, moverID kernel.UUID,
	originAddress, destinationAddress string,
	startTime, endTime time.Time,
	totalCost decimal.Decimal,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMoverID(moverID),
		o.setAddresses(originAddress, destinationAddress),
		o.setSchedule(startTime, endTime),
		o.setTotalCost(totalCost),
	); err != nil {
		return nil, err
	}

	o.RaiseDomainEvent(NewCreatedEvent(o))
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. The restored status
// becomes the expected value for the next compare-and-set.
func RestoreOrder(
	id, customerID, moverID kernel.UUID,
	originAddress, destinationAddress string,
	startTime, endTime time.Time,
	totalCost decimal.Decimal,
	status Status,
	paymentReference, paymentMethod string,
	depositAmount decimal.Decimal,
) (*Order, error) {
	o := &Order{
		paymentReference: paymentReference,
		paymentMethod:    paymentMethod,
		depositAmount:    depositAmount,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMoverID(moverID),
		o.setAddresses(originAddress, destinationAddress),
		o.setSchedule(startTime, endTime),
		o.setTotalCost(totalCost),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	o.persistedStatus = status
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) MoverID() kernel.UUID {
	return o.moverID
}

func (o *Order) OriginAddress() string {
	return o.originAddress
}

func (o *Order) DestinationAddress() string {
	return o.destinationAddress
}

func (o *Order) StartTime() time.Time {
	return o.startTime
}

func (o *Order) EndTime() time.Time {
	return o.endTime
}

func (o *Order) Duration() time.Duration {
	return o.endTime.Sub(o.startTime)
}

func (o *Order) TotalCost() decimal.Decimal {
	return o.totalCost
}

func (o *Order) Status() Status {
	return o.status
}

// PersistedStatus is the status the order had when it was loaded or last saved.
// Unknown for an order that was never stored.
func (o *Order) PersistedStatus() Status {
	return o.persistedStatus
}

// MarkPersisted is called by repositories after the current status was written.
func (o *Order) MarkPersisted() {
	o.persistedStatus = o.status
}

func (o *Order) PaymentReference() string {
	return o.paymentReference
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) DepositAmount() decimal.Decimal {
	return o.depositAmount
}

// Deposit returns the share of the total cost captured to confirm the order,
// truncated to the currency precision. rate must be within [0..1].
func (o *Order) Deposit(rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("depositRate", rate.String(), 0, 1)
	}
	return o.totalCost.Mul(rate).Truncate(CurrencyPrecision), nil
}

// IsOverdue reports whether a still pending order has reached its start time.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.status == Pending && !now.Before(o.startTime)
}

// EnsureCanConfirm fails with an invalid transition unless the order is pending.
func (o *Order) EnsureCanConfirm() error {
	_, err := o.status.Confirm()
	return err
}

// EnsureRatableBy fails with ErrOrderIsNotRatable unless the order is completed
// and was booked by customerID with moverID.
func (o *Order) EnsureRatableBy(customerID, moverID kernel.UUID) error {
	if o.status != Completed || !o.customerID.IsEqual(customerID) || !o.moverID.IsEqual(moverID) {
		return ErrOrderIsNotRatable
	}
	return nil
}

// ConfirmPayment records a successful deposit capture and moves the order to confirmed.
func (o *Order) ConfirmPayment(reference, method string, deposit decimal.Decimal) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	if deposit.IsNegative() || deposit.GreaterThan(o.totalCost) {
		return errs.NewValueIsOutOfRangeError("deposit", deposit.String(), 0, o.totalCost.String())
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentReference = reference
	o.paymentMethod = strings.TrimSpace(method)
	o.depositAmount = deposit
	o.RaiseDomainEvent(NewStatusChangedEvent(o))
	return nil
}

func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.RaiseDomainEvent(NewStatusChangedEvent(o))
	return nil
}

func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.RaiseDomainEvent(NewStatusChangedEvent(o))
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = id
	return nil
}

func (o *Order) setMoverID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("moverId")
	}
	o.moverID = id
	return nil
}

func (o *Order) setAddresses(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	var err error
	if origin == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("originAddress"))
	}
	if destination == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destinationAddress"))
	}
	if len(origin) > maxAddressLength {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("originAddress",
			fmt.Errorf("length %d exceeds %d", len(origin), maxAddressLength)))
	}
	if len(destination) > maxAddressLength {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("destinationAddress",
			fmt.Errorf("length %d exceeds %d", len(destination), maxAddressLength)))
	}
	if err != nil {
		return err
	}

	o.originAddress = origin
	o.destinationAddress = destination
	return nil
}

func (o *Order) setSchedule(start, end time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("startTime")
	}
	if !end.After(start) {
		return ErrTimeRangeIsInvalid
	}
	o.startTime = start.UTC()
	o.endTime = end.UTC()
	return nil
}

func (o *Order) setTotalCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalCost", fmt.Errorf("%s is negative", cost))
	}
	o.totalCost = cost.Round(CurrencyPrecision)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
