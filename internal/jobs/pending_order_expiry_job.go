package jobs

import (
	"context"
	"time"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/pkg/log"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultExpirySchedule = "@every 1m"

type expireOverdueOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireOverdueOrdersCommand) error
}

// PendingOrderExpiryJob cancels pending orders that were never paid before
// their start time.
type PendingOrderExpiryJob struct {
	handler   expireOverdueOrdersHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *log.Zap
}

func NewPendingOrderExpiryJob(
	handler expireOverdueOrdersHandler,
	schedule string,
	batchSize int,
	logger *log.Zap,
) *PendingOrderExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &PendingOrderExpiryJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		now:       time.Now,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.Named("pending_order_expiry_job"),
	}
}

func (j *PendingOrderExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("pending order expiry job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs a single expiry pass.
func (j *PendingOrderExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewExpireOverdueOrdersCommand(j.now().UTC(), j.batchSize)
	if err != nil {
		j.logger.Error("cannot build expiry command", zap.Error(err))
		return
	}

	if err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.Error("pending order expiry failed", zap.Error(err))
	}
}

// Stop waits for a running pass to finish.
func (j *PendingOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("pending order expiry job stopped")
}
