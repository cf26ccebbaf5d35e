package queries

import (
	"encoding/json"
	"time"

	"pizzeria/internal/core/domain/model/order"
)

// Read-side row types. These map the persistence tables directly so queries
// never round-trip through the domain model.
type orderRow struct {
	ID                   int64
	UserID               int64
	OrderTime            time.Time
	Status               int
	TotalAmount          int64
	PaymentTransactionID string
	PaymentAttempts      int
}

func (orderRow) TableName() string {
	return "orders"
}

type itemRow struct {
	ID         int64
	OrderID    int64
	Category   string
	Attributes string
	Price      int64
}

func (itemRow) TableName() string {
	return "order_items"
}

type deliveryRow struct {
	ID                 int64
	OrderID            int64
	Address            string
	PreferredTime      string
	DriverID           int64
	ActualDeliveryTime *time.Time
}

func (deliveryRow) TableName() string {
	return "delivery_details"
}

func toSummary(row orderRow, items []itemRow, delivery *deliveryRow) (OrderSummary, error) {
	itemSummaries := make([]ItemSummary, 0, len(items))
	for _, it := range items {
		var attrs map[string]any
		if err := json.Unmarshal([]byte(it.Attributes), &attrs); err != nil {
			return OrderSummary{}, err
		}

		itemSummaries = append(itemSummaries, ItemSummary{
			ItemID:     it.ID,
			Category:   it.Category,
			Attributes: attrs,
			Price:      float64(it.Price) / 100,
		})
	}

	summary := OrderSummary{
		OrderID:              row.ID,
		UserID:               row.UserID,
		OrderDate:            row.OrderTime.UTC().Format(time.RFC3339),
		Status:               order.Status(row.Status).String(),
		Items:                itemSummaries,
		TotalAmount:          float64(row.TotalAmount) / 100,
		PaymentTransactionID: row.PaymentTransactionID,
		PaymentAttempts:      row.PaymentAttempts,
	}

	if delivery != nil {
		summary.DeliveryDetailsID = &delivery.ID
		summary.DeliveryDetails = &DeliverySummary{
			ID:                 delivery.ID,
			Address:            delivery.Address,
			PreferredTime:      delivery.PreferredTime,
			DriverID:           delivery.DriverID,
			ActualDeliveryTime: delivery.ActualDeliveryTime,
		}
	}

	return summary, nil
}
