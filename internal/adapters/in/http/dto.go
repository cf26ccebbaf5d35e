package http

import (
	"time"

	"pizzeria/internal/core/domain/model/order"

	"github.com/go-playground/validator/v10"
)

// APIResponse is the envelope wrapping every response body.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	UserID int64                    `json:"userId" validate:"required,gt=0"`
	Items  []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested order line.
type CreateOrderItemRequest struct {
	MenuItemID int64          `json:"menuItemId" validate:"required,gt=0"`
	Category   string         `json:"category" validate:"required"`
	Attributes map[string]any `json:"attributes"`
}

// ChangeOrderStatusRequest is the body of POST /api/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status               string `json:"status" validate:"required"`
	PaymentTransactionID string `json:"paymentTransactionId"`
}

// OrderResponse is the representation of an order returned by write
// operations. Read operations return queries.OrderSummary instead.
type OrderResponse struct {
	OrderID              int64                    `json:"orderId"`
	UserID               int64                    `json:"userId"`
	OrderDate            string                   `json:"orderDate"`
	Status               string                   `json:"status"`
	Items                []ItemResponse           `json:"items"`
	TotalAmount          float64                  `json:"totalAmount"`
	PaymentTransactionID string                   `json:"paymentTransactionId,omitempty"`
	PaymentAttempts      int                      `json:"paymentAttempts"`
	DeliveryDetails      *DeliveryDetailsResponse `json:"deliveryDetails,omitempty"`
}

// ItemResponse is one order line in an OrderResponse.
type ItemResponse struct {
	ItemID     int64          `json:"itemId"`
	Category   string         `json:"category"`
	Attributes map[string]any `json:"attributes"`
	Price      float64        `json:"price"`
}

// DeliveryDetailsResponse is the delivery record in an OrderResponse.
type DeliveryDetailsResponse struct {
	ID                 int64      `json:"id"`
	Address            string     `json:"address"`
	PreferredTime      string     `json:"preferredTime,omitempty"`
	DriverID           int64      `json:"driverId"`
	ActualDeliveryTime *time.Time `json:"actualDeliveryTime,omitempty"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, ItemResponse{
			ItemID:     it.ID(),
			Category:   it.Category().String(),
			Attributes: it.Attributes().Map(),
			Price:      it.Price().Float64(),
		})
	}

	response := OrderResponse{
		OrderID:              aggregate.ID(),
		UserID:               aggregate.UserID(),
		OrderDate:            aggregate.OrderTime().UTC().Format(time.RFC3339),
		Status:               aggregate.Status().String(),
		Items:                items,
		TotalAmount:          aggregate.TotalAmount().Float64(),
		PaymentTransactionID: aggregate.PaymentTransactionID(),
		PaymentAttempts:      aggregate.PaymentAttempts(),
	}

	if dd := aggregate.DeliveryDetails(); dd != nil {
		response.DeliveryDetails = &DeliveryDetailsResponse{
			ID:                 dd.ID(),
			Address:            dd.Address(),
			PreferredTime:      dd.PreferredTime(),
			DriverID:           dd.DriverID(),
			ActualDeliveryTime: dd.ActualDeliveryTime(),
		}
	}

	return response
}

// RequestValidator adapts go-playground/validator to echo's Validator
// interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for request DTOs.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
