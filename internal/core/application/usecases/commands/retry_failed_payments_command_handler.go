package commands

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
)

// RetryFailedPaymentsCommandHandler sweeps orders in PAYMENT_FAILED status.
// Orders within their retry budget return to PAYMENT_PROCESSING; exhausted
// ones are cancelled. The sweep runs from a scheduled job, so each order is
// processed under its per-id lock to stay serialized with concurrent
// request-driven transitions.
type RetryFailedPaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   *services.OrderRegistry
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewRetryFailedPaymentsCommandHandler creates a handler for the payment
// retry sweep. publisher may be nil, in which case no events are emitted.
func NewRetryFailedPaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	registry *services.OrderRegistry,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) RetryFailedPaymentsCommandHandler {
	return RetryFailedPaymentsCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		logger:     logger.With("component", "retry_failed_payments_handler"),
	}
}

// Handle processes the sweep. Each order is written in its own transaction,
// so one failed order neither poisons the rest of the sweep nor leaves the
// registry holding transitions that never became durable. Orders that fail
// individually are logged and skipped.
func (h *RetryFailedPaymentsCommandHandler) Handle(ctx context.Context, cmd RetryFailedPaymentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	failed, err := h.failedOrders(ctx)
	if err != nil {
		return err
	}

	for _, stored := range failed {
		if sweepErr := h.sweepOne(ctx, stored, cmd.MaxAttempts()); sweepErr != nil {
			h.logger.ErrorContext(ctx, "payment retry sweep failed for order",
				"order_id", stored.ID(), "error", sweepErr)
		}
	}

	return nil
}

func (h *RetryFailedPaymentsCommandHandler) failedOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	failed, err := uow.OrderRepository().GetAllInStatus(ctx, order.PaymentFailed)
	if err != nil {
		return nil, err
	}

	return failed, uow.Commit(ctx)
}

func (h *RetryFailedPaymentsCommandHandler) sweepOne(
	ctx context.Context,
	stored *order.Order,
	maxAttempts int,
) error {
	h.registry.Lock(stored.ID())
	defer h.registry.Unlock(stored.ID())

	// Prefer the in-flight copy; a request may have moved the order on since
	// the sweep query ran.
	aggregate, err := h.registry.Get(stored.ID())
	if err != nil {
		aggregate = stored
		if err = h.registry.Track(aggregate); err != nil {
			return err
		}
	}

	if aggregate.Status() != order.PaymentFailed {
		return nil
	}

	// Mutate a copy so the registry entry never reflects a transition that
	// failed to commit.
	updated := aggregate.Clone()

	if updated.PaymentAttempts() >= maxAttempts {
		err = updated.Cancel()
	} else {
		err = updated.ChangeStatus(order.PaymentProcessing)
	}
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, updated); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.registry.Update(updated); err != nil {
		return err
	}
	if updated.Status().IsTerminal() {
		h.registry.Remove(updated.ID())
	}

	if h.publisher != nil {
		if err = h.publisher.PublishOrderStatusChanged(ctx, updated); err != nil {
			h.logger.WarnContext(ctx, "failed to publish order status changed event",
				"order_id", updated.ID(), "error", err)
		}
	}

	return nil
}
