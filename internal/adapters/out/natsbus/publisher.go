// Package natsbus publishes order lifecycle events to NATS.
// Publication is best effort: the command handlers log and ignore publish
// failures, so a broker outage never blocks order processing.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	subjectOrderCreated       = "orders.created"
	subjectOrderStatusChanged = "orders.status_changed"

	flushTimeout = 2 * time.Second
)

// Publisher implements ports.OrderEventPublisher over a NATS connection.
type Publisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// OrderCreatedEvent is emitted on the orders.created subject when a new
// order has been persisted.
type OrderCreatedEvent struct {
	EventID     string  `json:"eventId"`
	OrderID     int64   `json:"orderId"`
	UserID      int64   `json:"userId"`
	TotalAmount float64 `json:"totalAmount"`
	CreatedAt   string  `json:"createdAt"`
}

// OrderStatusChangedEvent is emitted on the orders.status_changed subject
// after every persisted status transition.
type OrderStatusChangedEvent struct {
	EventID              string `json:"eventId"`
	OrderID              int64  `json:"orderId"`
	Status               string `json:"status"`
	PaymentTransactionID string `json:"paymentTransactionId,omitempty"`
	PaymentAttempts      int    `json:"paymentAttempts"`
	OccurredAt           string `json:"occurredAt"`
}

// NewPublisher connects to NATS at the given URL.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	log := logger.With("component", "nats_publisher")

	nc, err := nats.Connect(url,
		nats.Name("pizzeria-orders"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	log.Info("connected to NATS", "url", url)
	return &Publisher{nc: nc, logger: log}, nil
}

var _ ports.OrderEventPublisher = (*Publisher)(nil)

// PublishOrderCreated emits an order created event.
func (p *Publisher) PublishOrderCreated(ctx context.Context, aggregate *order.Order) error {
	event := OrderCreatedEvent{
		EventID:     uuid.NewString(),
		OrderID:     aggregate.ID(),
		UserID:      aggregate.UserID(),
		TotalAmount: aggregate.TotalAmount().Float64(),
		CreatedAt:   aggregate.OrderTime().UTC().Format(time.RFC3339),
	}

	return p.publish(ctx, subjectOrderCreated, event)
}

// PublishOrderStatusChanged emits a status transition event.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, aggregate *order.Order) error {
	event := OrderStatusChangedEvent{
		EventID:              uuid.NewString(),
		OrderID:              aggregate.ID(),
		Status:               aggregate.Status().String(),
		PaymentTransactionID: aggregate.PaymentTransactionID(),
		PaymentAttempts:      aggregate.PaymentAttempts(),
		OccurredAt:           time.Now().UTC().Format(time.RFC3339),
	}

	return p.publish(ctx, subjectOrderStatusChanged, event)
}

func (p *Publisher) publish(ctx context.Context, subject string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	if err = p.nc.FlushTimeout(flushTimeout); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	p.logger.DebugContext(ctx, "published event", "subject", subject)
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}
