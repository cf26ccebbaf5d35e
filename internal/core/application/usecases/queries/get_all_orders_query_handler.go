package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler lists every order from the database.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for the order listing query.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order id; items keep
// their insertion order within each summary.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	if err := h.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	if len(rows) == 0 {
		return summaries, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var items []itemRow
	if err := h.db.WithContext(ctx).Order("id").Find(&items, "order_id IN ?", ids).Error; err != nil {
		return nil, err
	}
	itemsByOrder := make(map[int64][]itemRow, len(rows))
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}

	var deliveries []deliveryRow
	if err := h.db.WithContext(ctx).Find(&deliveries, "order_id IN ?", ids).Error; err != nil {
		return nil, err
	}
	deliveryByOrder := make(map[int64]deliveryRow, len(deliveries))
	for _, d := range deliveries {
		deliveryByOrder[d.OrderID] = d
	}

	for _, row := range rows {
		var delivery *deliveryRow
		if d, ok := deliveryByOrder[row.ID]; ok {
			delivery = &d
		}

		summary, err := toSummary(row, itemsByOrder[row.ID], delivery)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
