package commands_test

import (
	"context"
	"testing"
	"time"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/domain/model/customer"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
	"movers/internal/core/domain/model/order"
	"movers/internal/core/domain/model/rating"
	"movers/internal/core/domain/services"
	"movers/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockMoverRepository struct{ mock.Mock }

func (m *MockMoverRepository) Add(ctx context.Context, aggregate *mover.Mover) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMoverRepository) Update(ctx context.Context, aggregate *mover.Mover) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMoverRepository) Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mover.Mover), args.Error(1)
}

func (m *MockMoverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mover.Mover), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOverduePending(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRatingRepository struct{ mock.Mock }

func (m *MockRatingRepository) Add(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) ScoreAggregate(ctx context.Context, moverID kernel.UUID) (services.ScoreAggregate, error) {
	args := m.Called(ctx, moverID)
	return args.Get(0).(services.ScoreAggregate), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) MoverRepository() ports.MoverRepository {
	args := m.Called()
	return args.Get(0).(ports.MoverRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RatingRepository() ports.RatingRepository {
	args := m.Called()
	return args.Get(0).(ports.RatingRepository)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	args := m.Called()
	return args.Get(0).(commands.CustomerUoW)
}

type MockMoverUoWFactory struct{ mock.Mock }

func (m *MockMoverUoWFactory) Create() commands.MoverUoW {
	args := m.Called()
	return args.Get(0).(commands.MoverUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockRatingUoWFactory struct{ mock.Mock }

func (m *MockRatingUoWFactory) Create() commands.RatingUoW {
	args := m.Called()
	return args.Get(0).(commands.RatingUoW)
}

type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) Capture(ctx context.Context, req ports.CaptureRequest) (ports.CaptureResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CaptureResult), args.Error(1)
}

type MockVerificationProvider struct{ mock.Mock }

func (m *MockVerificationProvider) VerifyIdentity(ctx context.Context, doc ports.IdentityDocument) (bool, error) {
	args := m.Called(ctx, doc)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationProvider) SubmitBackgroundCheck(ctx context.Context, doc ports.IdentityDocument) (bool, error) {
	args := m.Called(ctx, doc)
	return args.Bool(0), args.Error(1)
}

func mustLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

// knownCustomer returns a customer repository that finds exactly the given customer.
func knownCustomer(t *testing.T, ctx context.Context, id kernel.UUID) *MockCustomerRepository {
	t.Helper()
	c, err := customer.NewCustomer(id, "Jane Doe", "jane@example.com", time.Now())
	require.NoError(t, err)
	repo := new(MockCustomerRepository)
	repo.On("Get", ctx, id).Return(c, nil).Once()
	return repo
}

func restoreMover(t *testing.T, id kernel.UUID, eligible bool) *mover.Mover {
	t.Helper()
	m, err := mover.RestoreMover(id, "Ann Smith", "+12015550123", "Box truck",
		mustLocation(t, 40.7128, -74.0060), eligible, eligible, 0, 0)
	require.NoError(t, err)
	return m
}

func restoreOrder(t *testing.T, id kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	var reference string
	if status != order.Pending {
		reference = "pi_existing"
	}
	o, err := order.RestoreOrder(id, kernel.NewUUID(), kernel.NewUUID(), "1 Main St", "9 Elm St",
		start, start.Add(3*time.Hour), decimal.RequireFromString("240.00"), status,
		reference, "", decimal.Zero)
	require.NoError(t, err)
	return o
}
