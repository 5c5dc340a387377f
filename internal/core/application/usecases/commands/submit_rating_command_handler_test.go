package commands_test

import (
	"errors"
	"testing"
	"time"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
	"movers/internal/core/domain/model/order"
	"movers/internal/core/domain/model/rating"
	"movers/internal/core/domain/services"
	"movers/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitRatingCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &orderID, 4, "great")
	require.NoError(t, err)
	require.NotNil(t, cmd.OrderID())
	assert.Equal(t, orderID, *cmd.OrderID())
	assert.Equal(t, 4, cmd.Score())

	cmd, err = commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, 4, "")
	require.NoError(t, err)
	assert.Nil(t, cmd.OrderID())

	_, err = commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), nil, 4, "")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestSubmitRatingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	moverID := kernel.NewUUID()
	m := restoreMover(t, moverID, true)
	cmd, _ := commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.NewUUID(), moverID, nil, 4, "on time")

	moverRepo := new(MockMoverRepository)
	ratingRepo := new(MockRatingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(knownCustomer(t, ctx, cmd.UserID())).Once(),
		uow.On("MoverRepository").Return(moverRepo).Once(),
		moverRepo.On("GetForUpdate", ctx, moverID).Return(m, nil).Once(),
		uow.On("RatingRepository").Return(ratingRepo).Once(),
		ratingRepo.On("Add", ctx, mock.MatchedBy(func(r *rating.Rating) bool {
			return r.MoverID() == moverID && r.Score() == 4 && r.Comment() == "on time"
		})).Return(nil).Once(),
		ratingRepo.On("ScoreAggregate", ctx, moverID).Return(services.ScoreAggregate{Sum: 12, Count: 3}, nil).Once(),
		moverRepo.On("Update", ctx, m).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.InDelta(t, 4.0, m.Rating(), 1e-9)
	assert.Equal(t, int64(3), m.RatingCount())
	uow.AssertExpectations(t)
	moverRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestSubmitRatingCommandHandler_Handle_ScoreOutOfRange(t *testing.T) {
	for _, score := range []int{0, 6, -1} {
		cmd, err := commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, score, "")
		require.NoError(t, err)

		factory := new(MockRatingUoWFactory)
		h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())

		err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		factory.AssertNotCalled(t, "Create")
	}
}

func TestSubmitRatingCommandHandler_Handle_UnknownMover(t *testing.T) {
	ctx := t.Context()
	moverID := kernel.NewUUID()
	cmd, _ := commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.NewUUID(), moverID, nil, 5, "")

	moverRepo := new(MockMoverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(knownCustomer(t, ctx, cmd.UserID())).Once(),
		uow.On("MoverRepository").Return(moverRepo).Once(),
		moverRepo.On("GetForUpdate", ctx, moverID).
			Return(nil, errs.NewObjectNotFoundError("mover", moverID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "RatingRepository")
}

func TestSubmitRatingCommandHandler_Handle_AddErrorLeavesMoverUntouched(t *testing.T) {
	ctx := t.Context()
	moverID := kernel.NewUUID()
	m := restoreMover(t, moverID, true)
	cmd, _ := commands.NewSubmitRatingCommand(kernel.NewUUID(), kernel.NewUUID(), moverID, nil, 5, "")

	moverRepo := new(MockMoverRepository)
	ratingRepo := new(MockRatingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(knownCustomer(t, ctx, cmd.UserID())).Once(),
		uow.On("MoverRepository").Return(moverRepo).Once(),
		moverRepo.On("GetForUpdate", ctx, moverID).Return(m, nil).Once(),
		uow.On("RatingRepository").Return(ratingRepo).Once(),
		ratingRepo.On("Add", ctx, mock.AnythingOfType("*rating.Rating")).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())
	require.Error(t, h.Handle(ctx, cmd))
	assert.Zero(t, m.RatingCount())
	moverRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitRatingCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	cmd, _ := commands.NewSubmitRatingCommand(kernel.NewUUID(), userID, kernel.NewUUID(), nil, 5, "")

	customerRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, userID).
			Return(nil, errs.NewObjectNotFoundError("customer", userID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	uow.AssertNotCalled(t, "MoverRepository")
	uow.AssertNotCalled(t, "RatingRepository")
}

func restoreOrderFor(
	t *testing.T,
	id, customerID, moverID kernel.UUID,
	status order.Status,
) *order.Order {
	t.Helper()
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	o, err := order.RestoreOrder(id, customerID, moverID, "1 Main St", "9 Elm St",
		start, start.Add(3*time.Hour), decimal.NewFromInt(240), status, "pi_1", "pm_card_visa", decimal.NewFromInt(24))
	require.NoError(t, err)
	return o
}

func TestSubmitRatingCommandHandler_Handle_WithCompletedOrder(t *testing.T) {
	ctx := t.Context()
	userID, moverID, orderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	m := restoreMover(t, moverID, true)
	cmd, _ := commands.NewSubmitRatingCommand(kernel.NewUUID(), userID, moverID, &orderID, 5, "")

	orderRepo := new(MockOrderRepository)
	moverRepo := new(MockMoverRepository)
	ratingRepo := new(MockRatingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(knownCustomer(t, ctx, userID)).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(restoreOrderFor(t, orderID, userID, moverID, order.Completed), nil).Once(),
		uow.On("MoverRepository").Return(moverRepo).Once(),
		moverRepo.On("GetForUpdate", ctx, moverID).Return(m, nil).Once(),
		uow.On("RatingRepository").Return(ratingRepo).Once(),
		ratingRepo.On("Add", ctx, mock.MatchedBy(func(r *rating.Rating) bool {
			return r.OrderID() != nil && r.OrderID().IsEqual(orderID)
		})).Return(nil).Once(),
		ratingRepo.On("ScoreAggregate", ctx, moverID).Return(services.ScoreAggregate{Sum: 5, Count: 1}, nil).Once(),
		moverRepo.On("Update", ctx, m).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestSubmitRatingCommandHandler_Handle_RejectsUnratableOrder(t *testing.T) {
	userID, moverID, orderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	tests := []struct {
		name     string
		stored   func(t *testing.T) (*order.Order, error)
		wantErr  error
		wantKind errs.Kind
	}{
		{
			name: "unknown order",
			stored: func(*testing.T) (*order.Order, error) {
				return nil, errs.NewObjectNotFoundError("order", orderID.String())
			},
			wantErr:  errs.ErrObjectNotFound,
			wantKind: errs.KindNotFound,
		},
		{
			name: "order of another customer",
			stored: func(t *testing.T) (*order.Order, error) {
				return restoreOrderFor(t, orderID, kernel.NewUUID(), moverID, order.Completed), nil
			},
			wantErr:  order.ErrOrderIsNotRatable,
			wantKind: errs.KindValidation,
		},
		{
			name: "order of another mover",
			stored: func(t *testing.T) (*order.Order, error) {
				return restoreOrderFor(t, orderID, userID, kernel.NewUUID(), order.Completed), nil
			},
			wantErr:  order.ErrOrderIsNotRatable,
			wantKind: errs.KindValidation,
		},
		{
			name: "order not completed",
			stored: func(t *testing.T) (*order.Order, error) {
				return restoreOrderFor(t, orderID, userID, moverID, order.Confirmed), nil
			},
			wantErr:  order.ErrOrderIsNotRatable,
			wantKind: errs.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, _ := commands.NewSubmitRatingCommand(kernel.NewUUID(), userID, moverID, &orderID, 4, "")
			o, getErr := tt.stored(t)

			orderRepo := new(MockOrderRepository)
			uow := new(MockUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("CustomerRepository").Return(knownCustomer(t, ctx, userID)).Once(),
				uow.On("OrderRepository").Return(orderRepo).Once(),
				orderRepo.On("Get", ctx, orderID).Return(o, getErr).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockRatingUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewSubmitRatingCommandHandler(factory, services.NewRatingAggregator())
			err := h.Handle(ctx, cmd)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))
			uow.AssertNotCalled(t, "MoverRepository")
			uow.AssertNotCalled(t, "RatingRepository")
			uow.AssertNotCalled(t, "Commit", ctx)
		})
	}
}

func TestRecomputeMoverRatingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	moverID := kernel.NewUUID()
	m, err := mover.RestoreMover(moverID, "Ann Smith", "+12015550123", "Van",
		mustLocation(t, 1, 1), true, true, 2.0, 1)
	require.NoError(t, err)

	moverRepo := new(MockMoverRepository)
	ratingRepo := new(MockRatingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MoverRepository").Return(moverRepo).Once(),
		moverRepo.On("GetForUpdate", ctx, moverID).Return(m, nil).Once(),
		uow.On("RatingRepository").Return(ratingRepo).Once(),
		ratingRepo.On("ScoreAggregate", ctx, moverID).Return(services.ScoreAggregate{Sum: 12, Count: 3}, nil).Once(),
		moverRepo.On("Update", ctx, m).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRecomputeMoverRatingCommand(moverID)
	require.NoError(t, err)

	h := commands.NewRecomputeMoverRatingCommandHandler(factory, services.NewRatingAggregator())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.InDelta(t, 4.0, m.Rating(), 1e-9)
	assert.Equal(t, int64(3), m.RatingCount())
	uow.AssertExpectations(t)
}
