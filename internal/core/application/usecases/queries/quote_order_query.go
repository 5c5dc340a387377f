package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrQuoteOrderQueryIsNotConstructed = errors.New(
	"QuoteOrderQuery must be created via NewQuoteOrderQuery constructor",
)

// QuoteOrderQuery prices a prospective move at rate per km-hour.
type QuoteOrderQuery struct {
	rate               decimal.Decimal
	originAddress      string
	destinationAddress string
	startTime          time.Time
	endTime            time.Time

	guard guard.ConstructorGuard
}

func NewQuoteOrderQuery(
	rate decimal.Decimal,
	originAddress, destinationAddress string,
	startTime, endTime time.Time,
) (QuoteOrderQuery, error) {
	originAddress = strings.TrimSpace(originAddress)
	destinationAddress = strings.TrimSpace(destinationAddress)

	var err error
	if rate.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("rate", fmt.Errorf("%s is negative", rate)))
	}
	if originAddress == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("originAddress"))
	}
	if destinationAddress == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destinationAddress"))
	}
	if !endTime.After(startTime) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("endTime",
			errors.New("end time must be after start time")))
	}
	if err != nil {
		return QuoteOrderQuery{}, err
	}

	return QuoteOrderQuery{
		rate:               rate,
		originAddress:      originAddress,
		destinationAddress: destinationAddress,
		startTime:          startTime,
		endTime:            endTime,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (q QuoteOrderQuery) Validate() error {
	return q.guard.Validate(ErrQuoteOrderQueryIsNotConstructed)
}

func (q QuoteOrderQuery) Rate() decimal.Decimal {
	return q.rate
}

func (q QuoteOrderQuery) OriginAddress() string {
	return q.originAddress
}

func (q QuoteOrderQuery) DestinationAddress() string {
	return q.destinationAddress
}

func (q QuoteOrderQuery) StartTime() time.Time {
	return q.startTime
}

func (q QuoteOrderQuery) EndTime() time.Time {
	return q.endTime
}

type QuoteOrderQueryResponse struct {
	DistanceKm    float64
	DurationHours float64
	TotalCost     decimal.Decimal
	Deposit       decimal.Decimal
}
