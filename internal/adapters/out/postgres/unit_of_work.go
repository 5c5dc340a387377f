// Package postgres implements the unit of work over GORM.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin share that transaction and report every aggregate they write.
// Once Commit succeeds the recorded domain events of those aggregates are
// handed to the event publisher. A publish failure is logged and does not undo
// the commit.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"movers/internal/adapters/out/postgres/customerrepo"
	"movers/internal/adapters/out/postgres/moverrepo"
	"movers/internal/adapters/out/postgres/orderrepo"
	"movers/internal/adapters/out/postgres/ratingrepo"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/ports"
	"movers/internal/pkg/ddd"
	"movers/internal/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands out a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *log.Zap
}

// NewGormUnitOfWorkFactory creates the factory. publisher may be nil, in which
// case committed events are dropped.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *log.Zap) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = log.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.Named("uow"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *log.Zap
	trackedAggregates []trackedAggregate
}

// Begin is a no-op when a transaction is already open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.publishEvents(context.WithoutCancel(ctx))
	return nil
}

// Rollback after Commit returns gorm.ErrInvalidTransaction, which callers
// using the deferred-rollback pattern ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) MoverRepository() ports.MoverRepository {
	return moverrepo.NewGormMoverRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RatingRepository() ports.RatingRepository {
	return ratingrepo.NewGormRatingRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// collectEvents drains each tracked aggregate once, in tracking order.
func (uow *GormUnitOfWork) collectEvents() []ddd.DomainEvent {
	seen := make(map[ddd.AggregateRoot]struct{}, len(uow.trackedAggregates))
	events := make([]ddd.DomainEvent, 0)

	for _, tracked := range uow.trackedAggregates {
		root, ok := tracked.Aggregate.(ddd.AggregateRoot)
		if !ok {
			continue
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}

		events = append(events, root.DomainEvents()...)
		root.ClearDomainEvents()
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return events
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	events := uow.collectEvents()
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.Error("publish domain events", zap.Int("count", len(events)), zap.Error(err))
		return
	}

	uow.logger.Debug("domain events published", zap.Int("count", len(events)))
}
