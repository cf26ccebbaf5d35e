// Package ports defines the interfaces through which the application core
// talks to the outside world: persistence, external collaborators, and the
// event bus. Adapters implement these interfaces; the core never imports an
// adapter package.
package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository provides durable storage for order aggregates.
// Storage is strongly consistent and keyed by order id; deleting an order
// cascades to its owned items and delivery details.
type OrderRepository interface {
	// Add persists a new order with its items.
	// Database-generated item and delivery-details identifiers are written
	// back into the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	// Fails with a not-found error if the order has never been added.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id, with its items and delivery details.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAll retrieves every stored order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// Delete removes an order together with its owned items and delivery
	// details.
	Delete(ctx context.Context, id int64) error

	// MaxID returns the highest stored order id, zero for an empty store.
	// Used to seed the order registry's allocation sequence at startup.
	MaxID(ctx context.Context) (int64, error)
}
