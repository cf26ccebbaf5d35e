// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and their relational
// representation: an orders row owning order_items rows and an optional
// delivery_details row.
package orderrepo

import (
	"encoding/json"
	"time"

	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderDTO represents the database row for an order aggregate.
// The primary key is allocated by the order registry, never by the database,
// so autoincrement is disabled. Amounts are stored in cents.
type OrderDTO struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID               int64     `gorm:"index"`
	OrderTime            time.Time
	Status               int       `gorm:"index"`
	TotalAmount          int64
	PaymentTransactionID string
	PaymentAttempts      int

	Items           []ItemDTO           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveryDetails *DeliveryDetailsDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. The database assigns the identifier on
// first insert; the category-specific attributes travel as a JSON document.
type ItemDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	OrderID    int64  `gorm:"index"`
	Category   string
	Attributes string `gorm:"type:jsonb"`
	Price      int64
}

// TableName overrides GORM's default naming convention.
func (ItemDTO) TableName() string {
	return "order_items"
}

// DeliveryDetailsDTO represents the one-to-one delivery record of an order.
type DeliveryDetailsDTO struct {
	ID                 int64 `gorm:"primaryKey;autoIncrement"`
	OrderID            int64 `gorm:"uniqueIndex"`
	Address            string
	PreferredTime      string
	DriverID           int64
	ActualDeliveryTime *time.Time
}

// TableName overrides GORM's default naming convention.
func (DeliveryDetailsDTO) TableName() string {
	return "delivery_details"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		dto, err := itemFromDomain(aggregate.ID(), it)
		if err != nil {
			return OrderDTO{}, err
		}
		items = append(items, dto)
	}

	var details *DeliveryDetailsDTO
	if dd := aggregate.DeliveryDetails(); dd != nil {
		details = &DeliveryDetailsDTO{
			ID:                 dd.ID(),
			OrderID:            aggregate.ID(),
			Address:            dd.Address(),
			PreferredTime:      dd.PreferredTime(),
			DriverID:           dd.DriverID(),
			ActualDeliveryTime: dd.ActualDeliveryTime(),
		}
	}

	return OrderDTO{
		ID:                   aggregate.ID(),
		UserID:               aggregate.UserID(),
		OrderTime:            aggregate.OrderTime(),
		Status:               int(aggregate.Status()),
		TotalAmount:          aggregate.TotalAmount().Cents(),
		PaymentTransactionID: aggregate.PaymentTransactionID(),
		PaymentAttempts:      aggregate.PaymentAttempts(),
		Items:                items,
		DeliveryDetails:      details,
	}, nil
}

func itemFromDomain(orderID int64, it *item.Item) (ItemDTO, error) {
	attrs, err := json.Marshal(it.Attributes().Map())
	if err != nil {
		return ItemDTO{}, err
	}

	return ItemDTO{
		ID:         it.ID(),
		OrderID:    orderID,
		Category:   it.Category().String(),
		Attributes: string(attrs),
		Price:      it.Price().Cents(),
	}, nil
}

// toDomain converts a database row back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*item.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		it, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	var details *order.DeliveryDetails
	if dto.DeliveryDetails != nil {
		dd, err := order.RestoreDeliveryDetails(
			dto.DeliveryDetails.ID,
			dto.DeliveryDetails.Address,
			dto.DeliveryDetails.PreferredTime,
			dto.DeliveryDetails.DriverID,
			dto.DeliveryDetails.ActualDeliveryTime,
		)
		if err != nil {
			return nil, err
		}
		details = dd
	}

	return order.RestoreOrder(
		dto.ID,
		dto.UserID,
		dto.OrderTime,
		order.Status(dto.Status),
		items,
		details,
		dto.PaymentTransactionID,
		dto.PaymentAttempts,
	)
}

func itemToDomain(dto ItemDTO) (*item.Item, error) {
	category, err := item.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	var attrs map[string]any
	if err = json.Unmarshal([]byte(dto.Attributes), &attrs); err != nil {
		return nil, err
	}

	price, err := kernel.NewMoneyFromCents(dto.Price)
	if err != nil {
		return nil, err
	}

	return item.Restore(dto.ID, category, attrs, price)
}
