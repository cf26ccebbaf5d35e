// Package jobs provides scheduled background tasks, implemented as cron jobs
// using github.com/robfig/cron/v3. The only job today is the payment retry
// sweep; JobManager exists so the composition root starts and stops every
// job through one interface.
package jobs

import (
	"fmt"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	paymentRetryJob *PaymentRetryJob
}

// NewJobManager creates a job manager wired with all background jobs.
func NewJobManager(
	retryHandler commands.RetryFailedPaymentsCommandHandler,
	paymentMaxAttempts int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentRetryJob: NewPaymentRetryJob(retryHandler, paymentMaxAttempts, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment retry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentRetryJob.Stop()
}
