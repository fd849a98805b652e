package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// outboxRelayHandler is satisfied by *commands.RelayOutboxCommandHandler.
type outboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// DefaultBatchTimeout bounds one relay batch, including broker confirms.
const DefaultBatchTimeout = 30 * time.Second

// OutboxRelayJob publishes pending outbox events on a cron schedule.
type OutboxRelayJob struct {
	handler      outboxRelayHandler
	cmd          commands.RelayOutboxCommand
	schedule     string
	batchTimeout time.Duration
	cron         *cron.Cron
	logger       *slog.Logger

	// ctx is cancelled by Stop so an in-flight batch stops waiting on the broker.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewOutboxRelayJob takes a six-field cron expression (with seconds), e.g. "*/5 * * * * *".
func NewOutboxRelayJob(
	handler outboxRelayHandler,
	cmd commands.RelayOutboxCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &OutboxRelayJob{
		handler:      handler,
		cmd:          cmd,
		schedule:     schedule,
		batchTimeout: DefaultBatchTimeout,
		cron:         cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:       logger.With("component", "outbox_relay_job"),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// WithBatchTimeout overrides DefaultBatchTimeout. Non-positive values are ignored.
func (j *OutboxRelayJob) WithBatchTimeout(d time.Duration) *OutboxRelayJob {
	if d > 0 {
		j.batchTimeout = d
	}
	return j
}

// Start schedules Run and starts the cron loop.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays one batch within the batch timeout. Broker outages and timeouts are logged and
// retried on the next tick.
func (j *OutboxRelayJob) Run() {
	ctx, cancel := context.WithTimeout(j.ctx, j.batchTimeout)
	defer cancel()

	published, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "published", published)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox events published", "count", published)
	}
}

// Stop cancels a running batch and waits for it to return.
func (j *OutboxRelayJob) Stop() {
	stopped := j.cron.Stop()
	j.cancel()
	<-stopped.Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
