package queries

import (
	"context"

	"movers/internal/core/domain/model/order"
	"movers/internal/core/domain/services"
	"movers/internal/core/ports"

	"github.com/shopspring/decimal"
)

// QuoteOrderQueryHandler geocodes both addresses and prices the move by
// great-circle distance and booked duration. Nothing is stored.
type QuoteOrderQueryHandler struct {
	geocoder    ports.Geocoder
	pricing     services.OrderPricing
	depositRate decimal.Decimal
}

func NewQuoteOrderQueryHandler(
	geocoder ports.Geocoder,
	pricing services.OrderPricing,
	depositRate decimal.Decimal,
) QuoteOrderQueryHandler {
	return QuoteOrderQueryHandler{
		geocoder:    geocoder,
		pricing:     pricing,
		depositRate: depositRate,
	}
}

func (h QuoteOrderQueryHandler) Handle(ctx context.Context, query QuoteOrderQuery) (QuoteOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteOrderQueryResponse{}, err
	}

	origin, err := geocode(ctx, h.geocoder, query.OriginAddress())
	if err != nil {
		return QuoteOrderQueryResponse{}, err
	}
	destination, err := geocode(ctx, h.geocoder, query.DestinationAddress())
	if err != nil {
		return QuoteOrderQueryResponse{}, err
	}

	distanceKm, err := origin.DistanceKm(destination)
	if err != nil {
		return QuoteOrderQueryResponse{}, err
	}
	durationHours := query.EndTime().Sub(query.StartTime()).Hours()

	cost, err := h.pricing.ComputeCost(query.Rate(), distanceKm, durationHours)
	if err != nil {
		return QuoteOrderQueryResponse{}, err
	}

	deposit := cost.Mul(h.depositRate).Truncate(order.CurrencyPrecision)

	return QuoteOrderQueryResponse{
		DistanceKm:    distanceKm,
		DurationHours: durationHours,
		TotalCost:     cost,
		Deposit:       deposit,
	}, nil
}
