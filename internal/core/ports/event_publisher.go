package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
)

// OrderEventPublisher notifies interested parties of order lifecycle changes.
// Publication is best effort: a failed publish never fails the operation that
// triggered it.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, aggregate *order.Order) error
	PublishOrderStatusChanged(ctx context.Context, aggregate *order.Order) error
}
