// Package queries contains read-only operations answering questions about
// system state. Queries bypass the domain model and read the database
// directly, projecting rows into transport-friendly summaries.
package queries

import (
	"errors"
	"time"

	"pizzeria/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order with its items and delivery
// details.
//
// Example:
//
//	query := queries.NewGetAllOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// OrderSummary is the read model for one order. Money amounts are projected
// as decimal values and the status as its wire name, e.g. "PAYMENT_PROCESSING".
type OrderSummary struct {
	OrderID              int64            `json:"orderId"`
	UserID               int64            `json:"userId"`
	OrderDate            string           `json:"orderDate"`
	Status               string           `json:"orderStatus"`
	Items                []ItemSummary    `json:"items"`
	TotalAmount          float64          `json:"totalAmount"`
	PaymentTransactionID string           `json:"paymentTransactionId,omitempty"`
	PaymentAttempts      int              `json:"paymentAttempts"`
	DeliveryDetailsID    *int64           `json:"deliveryDetailsId,omitempty"`
	DeliveryDetails      *DeliverySummary `json:"deliveryDetails,omitempty"`
}

// ItemSummary is the read model for one order line. Items never carry a
// back-reference to their order.
type ItemSummary struct {
	ItemID     int64          `json:"itemId"`
	Category   string         `json:"type"`
	Attributes map[string]any `json:"details"`
	Price      float64        `json:"price"`
}

// DeliverySummary is the read model for an order's delivery record.
type DeliverySummary struct {
	ID                 int64      `json:"id"`
	Address            string     `json:"address"`
	PreferredTime      string     `json:"preferredTime,omitempty"`
	DriverID           int64      `json:"driverId"`
	ActualDeliveryTime *time.Time `json:"actualDeliveryTime,omitempty"`
}
