package http_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "movers/internal/adapters/in/http"
	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/order"
	"movers/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type mockCommand[C any] struct{ mock.Mock }

func (m *mockCommand[C]) Handle(_ context.Context, cmd C) error {
	return m.Called(cmd).Error(0)
}

type mockQuery[Q, R any] struct{ mock.Mock }

func (m *mockQuery[Q, R]) Handle(_ context.Context, query Q) (R, error) {
	args := m.Called(query)
	return args.Get(0).(R), args.Error(1)
}

type fixture struct {
	handlers httpin.Handlers
	router   nethttp.Handler
	registry *prometheus.Registry
	spans    *tracetest.SpanRecorder
	customer *mockCommand[commands.RegisterCustomerCommand]
	register *mockCommand[commands.RegisterMoverCommand]
	create   *mockCommand[commands.CreateOrderCommand]
	confirm  *mockCommand[commands.ConfirmPaymentCommand]
	rate     *mockCommand[commands.SubmitRatingCommand]
	nearest  *mockQuery[queries.FindNearestMoversQuery, []queries.MoverMatchResponse]
	getOrder *mockQuery[queries.GetOrderQuery, queries.OrderResponse]
	quote    *mockQuery[queries.QuoteOrderQuery, queries.QuoteOrderQueryResponse]
	ratings  *mockQuery[queries.ListMoverRatingsQuery, []queries.RatingResponse]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		registry: prometheus.NewRegistry(),
		spans:    tracetest.NewSpanRecorder(),
		customer: new(mockCommand[commands.RegisterCustomerCommand]),
		register: new(mockCommand[commands.RegisterMoverCommand]),
		create:   new(mockCommand[commands.CreateOrderCommand]),
		confirm:  new(mockCommand[commands.ConfirmPaymentCommand]),
		rate:     new(mockCommand[commands.SubmitRatingCommand]),
		nearest:  new(mockQuery[queries.FindNearestMoversQuery, []queries.MoverMatchResponse]),
		getOrder: new(mockQuery[queries.GetOrderQuery, queries.OrderResponse]),
		quote:    new(mockQuery[queries.QuoteOrderQuery, queries.QuoteOrderQueryResponse]),
		ratings:  new(mockQuery[queries.ListMoverRatingsQuery, []queries.RatingResponse]),
	}
	f.handlers = httpin.Handlers{
		RegisterCustomer:  f.customer,
		RegisterMover:     f.register,
		CreateOrder:       f.create,
		ConfirmPayment:    f.confirm,
		SubmitRating:      f.rate,
		FindNearestMovers: f.nearest,
		GetOrder:          f.getOrder,
		QuoteOrder:        f.quote,
		ListMoverRatings:  f.ratings,
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f.router = httpin.NewRouter(httpin.NewServer(f.handlers, nil), httpin.RouterOptions{
		ServiceName: "movers-test",
		Registerer:  f.registry,
		Tracer:      tp.Tracer("test"),
	})
	return f
}

func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(nethttp.MethodGet, "/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	customer, moverID := kernel.NewUUID(), kernel.NewUUID()

	f.create.On("Handle", mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.CustomerID() == customer && cmd.MoverID() == moverID &&
			cmd.TotalCost().Equal(decimal.RequireFromString("240.50")) &&
			cmd.StartTime().Equal(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	body := `{"mover_id":"` + moverID.String() + `","origin_address":"1 Main St",` +
		`"destination_address":"9 Elm St","start_time":"2026-06-01T09:00:00Z",` +
		`"end_time":"2026-06-01T12:00:00Z","total_cost":"240.50"}`
	rec := f.do(nethttp.MethodPost, "/api/v1/orders", body, map[string]string{"X-User-ID": customer.String()})

	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[map[string]string](t, rec)
	id, err := kernel.UUIDFromString(resp["id"])
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/orders/"+id.String(), rec.Header().Get("Location"))
	f.create.AssertExpectations(t)
}

func TestCreateOrder_RequiresUser(t *testing.T) {
	f := newFixture(t)
	rec := f.do(nethttp.MethodPost, "/api/v1/orders", `{}`, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	f.create.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestCreateOrder_ValidationFailures(t *testing.T) {
	f := newFixture(t)
	user := map[string]string{"X-User-ID": kernel.NewUUID().String()}

	rec := f.do(nethttp.MethodPost, "/api/v1/orders", `{"mover_id":"nope"}`, user)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	f.create.On("Handle", mock.Anything).
		Return(errs.NewValueIsInvalidErrorWithCause("endTime", errors.New("end time must be after start time"))).Once()
	body := `{"mover_id":"` + kernel.NewUUID().String() + `","origin_address":"a","destination_address":"b",` +
		`"start_time":"2026-06-01T09:00:00Z","end_time":"2026-06-01T09:00:00Z","total_cost":"1"}`
	rec = f.do(nethttp.MethodPost, "/api/v1/orders", body, user)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decode[map[string]any](t, rec)["kind"])
}

func TestConfirmPayment_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "ok", err: nil, want: nethttp.StatusNoContent},
		{name: "not found", err: errs.NewObjectNotFoundError("order", "x"), want: nethttp.StatusNotFound},
		{name: "invalid transition", err: errs.NewInvalidTransitionError("cancelled", "confirmed"), want: nethttp.StatusConflict},
		{name: "payment failed", err: errs.NewPaymentFailedError("pi_1"), want: nethttp.StatusPaymentRequired},
		{name: "upstream timeout", err: errs.NewUpstreamTimeoutError("payment provider", context.DeadlineExceeded), want: nethttp.StatusGatewayTimeout},
		{name: "unknown", err: errors.New("db exploded"), want: nethttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			orderID := kernel.NewUUID()
			f.confirm.On("Handle", mock.MatchedBy(func(cmd commands.ConfirmPaymentCommand) bool {
				return cmd.OrderID() == orderID && cmd.PaymentMethod() == "pm_card_visa"
			})).Return(tt.err).Once()

			rec := f.do(nethttp.MethodPost, "/api/v1/orders/"+orderID.String()+"/payment",
				`{"payment_method":"pm_card_visa"}`, nil)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == nethttp.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "db exploded")
			}

			spans := f.spans.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, "POST /api/v1/orders/:id/payment", spans[0].Name())
			if tt.err != nil {
				assert.Equal(t, codes.Error, spans[0].Status().Code)
			} else {
				assert.Equal(t, codes.Ok, spans[0].Status().Code)
			}
		})
	}
}

func TestConfirmPayment_ForwardsIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()
	f.confirm.On("Handle", mock.MatchedBy(func(cmd commands.ConfirmPaymentCommand) bool {
		return cmd.OrderID() == orderID && cmd.AttemptKey() == "retry-2"
	})).Return(nil).Once()

	rec := f.do(nethttp.MethodPost, "/api/v1/orders/"+orderID.String()+"/payment",
		`{"payment_method":"pm_card_visa"}`, map[string]string{"Idempotency-Key": "retry-2"})
	assert.Equal(t, nethttp.StatusNoContent, rec.Code)
	f.confirm.AssertExpectations(t)
}

func TestConfirmPayment_BadID(t *testing.T) {
	f := newFixture(t)
	rec := f.do(nethttp.MethodPost, "/api/v1/orders/not-a-uuid/payment", `{"payment_method":"pm"}`, nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	f.confirm.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t)
	f.customer.On("Handle", mock.MatchedBy(func(cmd commands.RegisterCustomerCommand) bool {
		return cmd.Name() == "Jane Doe" && cmd.Email() == "jane@example.com"
	})).Return(nil).Once()

	rec := f.do(nethttp.MethodPost, "/api/v1/customers", `{"name":"Jane Doe","email":"jane@example.com"}`, nil)
	require.Equal(t, nethttp.StatusCreated, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "/api/v1/customers/"+body["id"], rec.Header().Get("Location"))
	f.customer.AssertExpectations(t)
}

func TestRegisterCustomer_RejectsBadEmail(t *testing.T) {
	f := newFixture(t)
	rec := f.do(nethttp.MethodPost, "/api/v1/customers", `{"name":"Jane Doe","email":"jane"}`, nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	f.customer.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestCustomerReferences_UnknownCustomerIsNotFound(t *testing.T) {
	f := newFixture(t)
	userID := kernel.NewUUID()
	notFound := errs.NewObjectNotFoundError("customer", userID.String())
	f.create.On("Handle", mock.Anything).Return(notFound).Once()
	f.rate.On("Handle", mock.Anything).Return(notFound).Once()
	headers := map[string]string{"X-User-ID": userID.String()}

	rec := f.do(nethttp.MethodPost, "/api/v1/orders", `{"mover_id":"`+kernel.NewUUID().String()+
		`","origin_address":"1 Main St","destination_address":"9 Elm St",`+
		`"start_time":"2026-06-01T09:00:00Z","end_time":"2026-06-01T12:00:00Z","total_cost":"180"}`, headers)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = f.do(nethttp.MethodPost, "/api/v1/movers/"+kernel.NewUUID().String()+"/ratings", `{"score":4}`, headers)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestRegisterMover_RejectsBadPhone(t *testing.T) {
	f := newFixture(t)
	body := `{"name":"Ann","phone":"123","vehicle":"Van","latitude":40,"longitude":-73,` +
		`"identity_document":{"full_name":"Ann","document_number":"X1"}}`
	rec := f.do(nethttp.MethodPost, "/api/v1/movers", body, nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	f.register.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestRegisterMover(t *testing.T) {
	f := newFixture(t)
	f.register.On("Handle", mock.MatchedBy(func(cmd commands.RegisterMoverCommand) bool {
		return cmd.Phone() == "+12015550123" && cmd.Document().Country == "US"
	})).Return(nil).Once()

	body := `{"name":"Ann","phone":"(201) 555-0123","vehicle":"Van","latitude":40,"longitude":-73,` +
		`"identity_document":{"full_name":"Ann","document_number":"X1","country":"us"}}`
	rec := f.do(nethttp.MethodPost, "/api/v1/movers", body, nil)
	assert.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	f.register.AssertExpectations(t)
}

func TestFindNearestMovers(t *testing.T) {
	f := newFixture(t)
	loc, err := kernel.NewLocation(40.01, -73.01)
	require.NoError(t, err)
	moverID := kernel.NewUUID()

	f.nearest.On("Handle", mock.MatchedBy(func(q queries.FindNearestMoversQuery) bool {
		return q.Limit() == 3 && q.RadiusKm() == 10
	})).Return([]queries.MoverMatchResponse{{
		MoverResponse: queries.MoverResponse{ID: moverID, Name: "Ann", Location: loc, Eligible: true},
		DistanceKm:    1.4,
	}}, nil).Once()

	rec := f.do(nethttp.MethodGet, "/api/v1/movers/nearest?lat=40&lng=-73&limit=3&radius_km=10", "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	out := decode[[]map[string]any](t, rec)
	require.Len(t, out, 1)
	assert.Equal(t, moverID.String(), out[0]["id"])
	assert.InDelta(t, 1.4, out[0]["distance_km"], 1e-9)
	assert.Equal(t, true, out[0]["eligible"])
}

func TestFindNearestMovers_BadParams(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, nethttp.StatusBadRequest, f.do(nethttp.MethodGet, "/api/v1/movers/nearest?lng=1", "", nil).Code)
	assert.Equal(t, nethttp.StatusBadRequest, f.do(nethttp.MethodGet, "/api/v1/movers/nearest?lat=x&lng=1", "", nil).Code)
	assert.Equal(t, nethttp.StatusBadRequest, f.do(nethttp.MethodGet, "/api/v1/movers/nearest?lat=91&lng=1", "", nil).Code)
	f.nearest.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestSubmitRating(t *testing.T) {
	f := newFixture(t)
	user, moverID, orderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	f.rate.On("Handle", mock.MatchedBy(func(cmd commands.SubmitRatingCommand) bool {
		return cmd.UserID() == user && cmd.MoverID() == moverID && cmd.Score() == 4 &&
			cmd.OrderID() != nil && *cmd.OrderID() == orderID
	})).Return(nil).Once()

	rec := f.do(nethttp.MethodPost, "/api/v1/movers/"+moverID.String()+"/ratings",
		`{"score":4,"comment":"fine","order_id":"`+orderID.String()+`"}`,
		map[string]string{"X-User-ID": user.String()})
	assert.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	f.rate.AssertExpectations(t)
}

func TestGetOrder(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.getOrder.On("Handle", mock.Anything).Return(queries.OrderResponse{
		ID:            id,
		Status:        order.Pending,
		TotalCost:     decimal.RequireFromString("240"),
		DepositAmount: decimal.RequireFromString("24"),
	}, nil).Once()

	rec := f.do(nethttp.MethodGet, "/api/v1/orders/"+id.String(), "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	out := decode[map[string]any](t, rec)
	assert.Equal(t, id.String(), out["id"])
	assert.Equal(t, "pending", out["status"])
	assert.Equal(t, "24", out["deposit_amount"])
}

func TestQuoteOrder(t *testing.T) {
	f := newFixture(t)
	f.quote.On("Handle", mock.Anything).Return(queries.QuoteOrderQueryResponse{
		DistanceKm:    10,
		DurationHours: 2,
		TotalCost:     decimal.RequireFromString("200"),
		Deposit:       decimal.RequireFromString("20"),
	}, nil).Once()

	rec := f.do(nethttp.MethodPost, "/api/v1/quotes", `{"rate":"10","origin_address":"A","destination_address":"B",`+
		`"start_time":"2026-06-01T09:00:00Z","end_time":"2026-06-01T11:00:00Z"}`, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	out := decode[map[string]any](t, rec)
	assert.Equal(t, "200", out["total_cost"])
	assert.Equal(t, "20", out["deposit"])
}

func TestListMoverRatings_PageTooLarge(t *testing.T) {
	f := newFixture(t)
	rec := f.do(nethttp.MethodGet, "/api/v1/movers/"+kernel.NewUUID().String()+"/ratings?limit=1000", "", nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	f.ratings.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestMetricsAreRecorded(t *testing.T) {
	f := newFixture(t)
	f.do(nethttp.MethodGet, "/health", "", nil)
	f.do(nethttp.MethodGet, "/api/v1/orders/not-a-uuid", "", nil)

	families, err := f.registry.Gather()
	require.NoError(t, err)

	names := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if mf.GetName() == "http_error_requests_count" {
				names[mf.GetName()] += m.GetCounter().GetValue()
			} else {
				names[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.InDelta(t, 2.0, names["http_responses_duration_seconds"], 1e-9)
	assert.InDelta(t, 1.0, names["http_error_requests_count"], 1e-9)
}
