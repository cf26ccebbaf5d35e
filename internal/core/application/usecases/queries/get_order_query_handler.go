package queries

import (
	"context"
	"errors"

	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns a not-found error when no order with
// the requested id exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return OrderSummary{}, err
	}

	var row orderRow
	if err := h.db.WithContext(ctx).First(&row, "id = ?", query.OrderID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderSummary{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return OrderSummary{}, err
	}

	var items []itemRow
	if err := h.db.WithContext(ctx).Order("id").Find(&items, "order_id = ?", row.ID).Error; err != nil {
		return OrderSummary{}, err
	}

	var delivery *deliveryRow
	var d deliveryRow
	err := h.db.WithContext(ctx).First(&d, "order_id = ?", row.ID).Error
	switch {
	case err == nil:
		delivery = &d
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return OrderSummary{}, err
	}

	return toSummary(row, items, delivery)
}
