package queries_test

import (
	"context"
	"testing"
	"time"

	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/services"
	"movers/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, addressOrIP string) (kernel.Location, error) {
	args := m.Called(ctx, addressOrIP)
	return args.Get(0).(kernel.Location), args.Error(1)
}

type MockNearestFinder struct{ mock.Mock }

func (m *MockNearestFinder) Handle(ctx context.Context, q queries.FindNearestMoversQuery) ([]queries.MoverMatchResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.MoverMatchResponse), args.Error(1)
}

func mustLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func TestSearchMoversByAddressQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	origin := mustLocation(t, 40, -73)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "1 Main St, Springfield").Return(origin, nil).Once()

	want := []queries.MoverMatchResponse{{DistanceKm: 1.4}}
	finder := new(MockNearestFinder)
	finder.On("Handle", ctx, mock.MatchedBy(func(q queries.FindNearestMoversQuery) bool {
		same, _ := q.Origin().IsEqual(origin)
		return same && q.Limit() == 3 && q.RadiusKm() == 25
	})).Return(want, nil).Once()

	q, err := queries.NewSearchMoversByAddressQuery("  1 Main St, Springfield ", 3, 25)
	require.NoError(t, err)

	h := queries.NewSearchMoversByAddressQueryHandler(geocoder, finder)
	got, err := h.Handle(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	geocoder.AssertExpectations(t)
	finder.AssertExpectations(t)
}

func TestSearchMoversByAddressQueryHandler_Handle_Unresolvable(t *testing.T) {
	ctx := t.Context()
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "nowhere").
		Return(kernel.Location{}, errs.NewObjectNotFoundError("address", "nowhere")).Once()
	finder := new(MockNearestFinder)

	q, err := queries.NewSearchMoversByAddressQuery("nowhere", 3, 0)
	require.NoError(t, err)

	h := queries.NewSearchMoversByAddressQueryHandler(geocoder, finder)
	_, err = h.Handle(ctx, q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	finder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)

	_, err = queries.NewSearchMoversByAddressQuery("   ", 3, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGeocodedQueries_GeocoderDeadlineIsUpstreamTimeout(t *testing.T) {
	ctx := t.Context()
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "A").Return(kernel.Location{}, context.DeadlineExceeded).Twice()
	finder := new(MockNearestFinder)

	search, err := queries.NewSearchMoversByAddressQuery("A", 3, 0)
	require.NoError(t, err)
	_, err = queries.NewSearchMoversByAddressQueryHandler(geocoder, finder).Handle(ctx, search)
	require.ErrorIs(t, err, errs.ErrUpstreamTimeout)
	assert.Equal(t, errs.KindUpstreamTimeout, errs.KindOf(err))
	finder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)

	quote, err := queries.NewQuoteOrderQuery(decimal.NewFromInt(10), "A", "B", start, start.Add(time.Hour))
	require.NoError(t, err)
	_, err = queries.NewQuoteOrderQueryHandler(geocoder, services.NewOrderPricing(), decimal.Zero).Handle(ctx, quote)
	require.ErrorIs(t, err, errs.ErrUpstreamTimeout)
	geocoder.AssertExpectations(t)
}

func TestQuoteOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "A").Return(mustLocation(t, 40, -73), nil).Once()
	geocoder.On("Geocode", ctx, "B").Return(mustLocation(t, 40.01, -73.01), nil).Once()

	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	q, err := queries.NewQuoteOrderQuery(decimal.NewFromInt(10), "A", "B", start, start.Add(2*time.Hour))
	require.NoError(t, err)

	h := queries.NewQuoteOrderQueryHandler(geocoder, services.NewOrderPricing(), decimal.RequireFromString("0.10"))
	got, err := h.Handle(ctx, q)
	require.NoError(t, err)

	assert.InDelta(t, 1.40, got.DistanceKm, 0.05)
	assert.InDelta(t, 2.0, got.DurationHours, 1e-9)
	expected, err := services.NewOrderPricing().ComputeCost(decimal.NewFromInt(10), got.DistanceKm, 2)
	require.NoError(t, err)
	assert.True(t, expected.Equal(got.TotalCost))
	assert.True(t, got.TotalCost.Mul(decimal.RequireFromString("0.10")).Truncate(2).Equal(got.Deposit))
	geocoder.AssertExpectations(t)
}

func TestNewQuoteOrderQuery_Validation(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := queries.NewQuoteOrderQuery(decimal.NewFromInt(-1), "", "B", start, start)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQueries_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.FindNearestMoversQuery{}.Validate(), queries.ErrFindNearestMoversQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetMoverQuery{}.Validate(), queries.ErrGetMoverQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListMoverRatingsQuery{}.Validate(), queries.ErrListMoverRatingsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.QuoteOrderQuery{}.Validate(), queries.ErrQuoteOrderQueryIsNotConstructed)

	_, err := queries.NewListMoverRatingsQuery(kernel.NewUUID(), queries.MaxRatingsPageSize+1, 0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	_, err = queries.NewListMoverRatingsQuery(kernel.NewUUID(), 10, -1)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
