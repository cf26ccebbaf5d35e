package jobs

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentRetryJob periodically sweeps orders stuck in PAYMENT_FAILED and
// either sends them back for another payment attempt or cancels them once
// the retry budget is spent.
type PaymentRetryJob struct {
	handler     commands.RetryFailedPaymentsCommandHandler
	maxAttempts int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPaymentRetryJob creates the payment retry sweep job.
// maxAttempts is the per-order retry budget enforced by the sweep.
func NewPaymentRetryJob(
	handler commands.RetryFailedPaymentsCommandHandler,
	maxAttempts int,
	logger *slog.Logger,
) *PaymentRetryJob {
	return &PaymentRetryJob{
		handler:     handler,
		maxAttempts: maxAttempts,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "payment_retry_job"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *PaymentRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRetryFailedPaymentsCommand(j.maxAttempts)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "invalid payment retry configuration", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "payment retry sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "payment retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *PaymentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "payment retry job stopped")
}
