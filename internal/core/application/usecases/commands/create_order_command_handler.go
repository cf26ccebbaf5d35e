package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// it resolves the ordering user through the user directory, prices and builds
// the requested items, registers the order with the lifecycle registry, and
// persists it transactionally.
//
// The user directory call is a blocking network round trip and is bounded by
// a timeout so a slow collaborator cannot exhaust the request handler pool.
// Any directory failure is normalized to ports.ErrUserNotFound.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	registry    *services.OrderRegistry
	users       ports.UserDirectory
	menu        ports.MenuCatalog
	publisher   ports.OrderEventPublisher
	userTimeout time.Duration
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// publisher may be nil, in which case no events are emitted. userTimeout
// bounds the user directory round trip.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	registry *services.OrderRegistry,
	users ports.UserDirectory,
	menu ports.MenuCatalog,
	publisher ports.OrderEventPublisher,
	userTimeout time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		registry:    registry,
		users:       users,
		menu:        menu,
		publisher:   publisher,
		userTimeout: userTimeout,
		logger:      logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command.
//
// Returns the created order, or:
//   - ports.ErrUserNotFound when the user cannot be resolved (including
//     directory timeouts and malformed responses)
//   - a validation error when an item's attributes are malformed
//   - item.ErrUnsupportedCategory for an unhandled category
//
// On any failure no registered order remains behind.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.resolveUser(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	items, err := h.buildItems(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	// The order belongs to the requested user; the directory only vouches
	// for existence.
	aggregate, err := h.registry.Create(cmd.UserID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if err = aggregate.AddItem(it); err != nil {
			h.registry.Remove(aggregate.ID())
			return nil, err
		}
	}

	if err = h.persist(ctx, aggregate); err != nil {
		h.registry.Remove(aggregate.ID())
		return nil, err
	}

	if h.publisher != nil {
		if err = h.publisher.PublishOrderCreated(ctx, aggregate); err != nil {
			h.logger.WarnContext(ctx, "failed to publish order created event",
				"order_id", aggregate.ID(), "error", err)
		}
	}

	return aggregate, nil
}

// resolveUser consults the user directory under the configured timeout and
// normalizes every failure mode to ports.ErrUserNotFound.
func (h *CreateOrderCommandHandler) resolveUser(ctx context.Context, userID int64) (*ports.User, error) {
	userCtx, cancel := context.WithTimeout(ctx, h.userTimeout)
	defer cancel()

	user, err := h.users.GetUser(userCtx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: user %d: %v", ports.ErrUserNotFound, userID, err)
	}

	return user, nil
}

func (h *CreateOrderCommandHandler) buildItems(ctx context.Context, requests []ItemRequest) ([]*item.Item, error) {
	items := make([]*item.Item, 0, len(requests))
	for _, request := range requests {
		menuItem, err := h.menu.GetMenuItem(ctx, request.MenuItemID())
		if err != nil {
			return nil, err
		}

		it, err := item.New(request.Category(), request.Attributes(), menuItem.BasePrice)
		if err != nil {
			return nil, err
		}

		items = append(items, it)
	}

	return items, nil
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
