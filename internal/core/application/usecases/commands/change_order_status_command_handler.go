package commands

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler drives orders through the lifecycle state
// machine. Concurrent transitions on the same order are serialized through
// the registry's per-id lock, so the read-modify-write cycle cannot lose an
// update; transitions on distinct orders proceed concurrently.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   *services.OrderRegistry
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// publisher may be nil, in which case no events are emitted.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	registry *services.OrderRegistry,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle processes the status transition command.
//
// The order is taken from the registry when in flight, otherwise read through
// from storage. Invalid transitions fail without touching storage; once the
// order reaches a terminal status it leaves the in-flight index.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.registry.Lock(cmd.OrderID())
	defer h.registry.Unlock(cmd.OrderID())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := h.loadOrder(ctx, uow, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Mutate a copy so the registry entry never reflects a transition that
	// failed to commit.
	updated := aggregate.Clone()

	if err = updated.ChangeStatus(cmd.Next()); err != nil {
		return nil, err
	}

	if cmd.PaymentTransactionID() != "" {
		if err = updated.SetPaymentTransactionID(cmd.PaymentTransactionID()); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, updated); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.registry.Update(updated); err != nil {
		return nil, err
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

	return updated, nil
}

// loadOrder prefers the in-flight registry copy and falls back to storage,
// filling the registry cache on the way.
func (h *ChangeOrderStatusCommandHandler) loadOrder(
	ctx context.Context,
	uow OrderUoW,
	orderID int64,
) (*order.Order, error) {
	aggregate, err := h.registry.Get(orderID)
	if err == nil {
		return aggregate, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err = uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = h.registry.Track(aggregate); err != nil {
		return nil, err
	}

	return aggregate, nil
}
