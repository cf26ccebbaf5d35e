package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
)

// MenuItem is the catalog record consulted during item pricing.
type MenuItem struct {
	ID        int64
	Name      string
	BasePrice kernel.Money
}

// MenuCatalog looks up menu records from the external menu service.
// Consulted during item pricing at order creation, never during retrieval.
type MenuCatalog interface {
	// GetMenuItem resolves a menu item by id. Returns a not-found error when
	// the item is unknown or no longer available.
	GetMenuItem(ctx context.Context, id int64) (*MenuItem, error)
}
