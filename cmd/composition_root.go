package cmd

import (
	"errors"
	"fmt"
	"net/http"

	httpin "movers/internal/adapters/in/http"
	"movers/internal/adapters/out/events"
	"movers/internal/adapters/out/geocoding"
	"movers/internal/adapters/out/payments"
	"movers/internal/adapters/out/postgres"
	"movers/internal/adapters/out/verification"
	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/services"
	"movers/internal/core/ports"
	"movers/internal/jobs"
	"movers/internal/pkg/log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns the outbound adapters and builds every use case handler.
type CompositionRoot struct {
	cfg    Config
	pool   *pgxpool.Pool
	logger *log.Zap

	uowFactory   *postgres.GormUnitOfWorkFactory
	payments     ports.PaymentProvider
	geocoder     ports.Geocoder
	verification ports.VerificationProvider

	kafka *events.KafkaPublisher
	redis *redis.Client

	matcher    services.MoverMatcher
	pricing    services.OrderPricing
	aggregator services.RatingAggregator
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, pool *pgxpool.Pool, logger *log.Zap) (*CompositionRoot, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	c := &CompositionRoot{
		cfg:        cfg,
		pool:       pool,
		logger:     logger,
		matcher:    services.NewMoverMatcher(),
		pricing:    services.NewOrderPricing(),
		aggregator: services.NewRatingAggregator(),
	}

	var publisher ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, logger)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher | %w", err)
		}
		c.kafka = kp
		publisher = kp
	} else {
		logger.Warn("kafka brokers are not configured, domain events will be dropped")
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	c.payments = payments.NewStripeGateway(cfg.Payments.StripeSecretKey, nil, logger)

	c.verification = verification.NewHTTPClient(
		cfg.Verification.URL,
		cfg.Verification.APIKey,
		&http.Client{Timeout: cfg.Verification.Timeout},
	)

	var geocoder ports.Geocoder = geocoding.NewHTTPGeocoder(geocoding.HTTPGeocoderConfig{
		AddressURL: cfg.Geocoder.AddressURL,
		IPURL:      cfg.Geocoder.IPURL,
		APIKey:     cfg.Geocoder.APIKey,
		Timeout:    cfg.Geocoder.Timeout,
	}, &http.Client{Timeout: cfg.Geocoder.Timeout})
	if cfg.Redis.URL != "" {
		rc, err := geocoding.Connect(cfg.Redis.URL)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("redis | %w", err), c.Close())
		}
		c.redis = rc
		geocoder = geocoding.NewCachedGeocoder(geocoder, rc, cfg.Redis.CacheTTL, logger)
	}
	c.geocoder = geocoder

	return c, nil
}

// Close releases the event writer and the cache connection.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.kafka != nil {
		if err := c.kafka.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close kafka writer | %w", err))
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close redis | %w", err))
		}
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) customerUoWFactory() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) moverUoWFactory() commands.MoverUoWFactory {
	return FuncMoverUoWFactory(func() commands.MoverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) bookingUoWFactory() commands.BookingUoWFactory {
	return FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ratingUoWFactory() commands.RatingUoWFactory {
	return FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() *commands.RegisterCustomerCommandHandler {
	h := commands.NewRegisterCustomerCommandHandler(c.customerUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRegisterMoverCommandHandler() *commands.RegisterMoverCommandHandler {
	h := commands.NewRegisterMoverCommandHandler(c.moverUoWFactory(), c.verification, c.cfg.Verification.Timeout)
	return &h
}

func (c *CompositionRoot) CreateRecordBackgroundCheckCommandHandler() *commands.RecordBackgroundCheckCommandHandler {
	h := commands.NewRecordBackgroundCheckCommandHandler(c.moverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateMoverLocationCommandHandler() *commands.UpdateMoverLocationCommandHandler {
	h := commands.NewUpdateMoverLocationCommandHandler(c.moverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() *commands.SubmitRatingCommandHandler {
	h := commands.NewSubmitRatingCommandHandler(c.ratingUoWFactory(), c.aggregator)
	return &h
}

func (c *CompositionRoot) CreateRecomputeMoverRatingCommandHandler() *commands.RecomputeMoverRatingCommandHandler {
	h := commands.NewRecomputeMoverRatingCommandHandler(c.ratingUoWFactory(), c.aggregator)
	return &h
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.bookingUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() *commands.ConfirmPaymentCommandHandler {
	h := commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.payments, commands.PaymentSettings{
		DepositRate: c.cfg.Payments.DepositRate,
		Currency:    c.cfg.Payments.Currency,
		Timeout:     c.cfg.Payments.Timeout,
	}, c.logger)
	return &h
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() *commands.CompleteOrderCommandHandler {
	h := commands.NewCompleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateExpireOverdueOrdersCommandHandler() *commands.ExpireOverdueOrdersCommandHandler {
	h := commands.NewExpireOverdueOrdersCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateGetMoverQueryHandler() queries.GetMoverQueryHandler {
	return queries.NewGetMoverQueryHandler(c.pool)
}

func (c *CompositionRoot) CreateFindNearestMoversQueryHandler() queries.FindNearestMoversQueryHandler {
	return queries.NewFindNearestMoversQueryHandler(c.pool, c.matcher)
}

func (c *CompositionRoot) CreateSearchMoversByAddressQueryHandler() queries.SearchMoversByAddressQueryHandler {
	return queries.NewSearchMoversByAddressQueryHandler(c.geocoder, c.CreateFindNearestMoversQueryHandler())
}

func (c *CompositionRoot) CreateListMoverRatingsQueryHandler() queries.ListMoverRatingsQueryHandler {
	return queries.NewListMoverRatingsQueryHandler(c.pool)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.pool)
}

func (c *CompositionRoot) CreateQuoteOrderQueryHandler() queries.QuoteOrderQueryHandler {
	return queries.NewQuoteOrderQueryHandler(c.geocoder, c.pricing, c.cfg.Payments.DepositRate)
}

// HTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterCustomer:      c.CreateRegisterCustomerCommandHandler(),
		RegisterMover:         c.CreateRegisterMoverCommandHandler(),
		RecordBackgroundCheck: c.CreateRecordBackgroundCheckCommandHandler(),
		UpdateMoverLocation:   c.CreateUpdateMoverLocationCommandHandler(),
		SubmitRating:          c.CreateSubmitRatingCommandHandler(),
		RecomputeMoverRating:  c.CreateRecomputeMoverRatingCommandHandler(),
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ConfirmPayment:        c.CreateConfirmPaymentCommandHandler(),
		CompleteOrder:         c.CreateCompleteOrderCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),

		GetMover:          c.CreateGetMoverQueryHandler(),
		FindNearestMovers: c.CreateFindNearestMoversQueryHandler(),
		SearchMovers:      c.CreateSearchMoversByAddressQueryHandler(),
		ListMoverRatings:  c.CreateListMoverRatingsQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		QuoteOrder:        c.CreateQuoteOrderQueryHandler(),
	}
}

// Jobs returns the background jobs enabled by configuration.
func (c *CompositionRoot) Jobs() []jobs.Job {
	var list []jobs.Job
	if c.cfg.Jobs.ExpiryEnabled {
		list = append(list, jobs.NewPendingOrderExpiryJob(
			c.CreateExpireOverdueOrdersCommandHandler(),
			c.cfg.Jobs.ExpirySchedule,
			c.cfg.Jobs.ExpiryBatchSize,
			c.logger,
		))
	}
	c.logger.Info("background jobs configured", zap.Int("count", len(list)))
	return list
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncMoverUoWFactory func() commands.MoverUoW

func (f FuncMoverUoWFactory) Create() commands.MoverUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}
