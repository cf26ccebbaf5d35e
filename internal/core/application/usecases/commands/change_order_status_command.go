package commands

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request to advance an order to the
// next lifecycle status. When the target status is PAYMENT_SUCCEEDED the
// payment collaborator's transaction reference must accompany it.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID              int64
	next                 order.Status
	paymentTransactionID string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated status transition command.
// paymentTransactionID is only meaningful, and only allowed, for transitions
// into PAYMENT_SUCCEEDED.
func NewChangeOrderStatusCommand(
	orderID int64,
	next order.Status,
	paymentTransactionID string,
) (ChangeOrderStatusCommand, error) {
	command := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNext(next),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	if err := command.setPaymentTransactionID(paymentTransactionID); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// Next returns the target status.
func (c ChangeOrderStatusCommand) Next() order.Status {
	return c.next
}

// PaymentTransactionID returns the payment reference, empty for transitions
// other than PAYMENT_SUCCEEDED.
func (c ChangeOrderStatusCommand) PaymentTransactionID() string {
	return c.paymentTransactionID
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderId",
			fmt.Errorf("%d is not greater than 0", orderID),
		)
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}

func (c *ChangeOrderStatusCommand) setPaymentTransactionID(txID string) error {
	if txID == "" {
		return nil
	}
	if c.next != order.PaymentSucceeded {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentTransactionId",
			fmt.Errorf("transaction reference is only allowed when transitioning to %s", order.PaymentSucceeded),
		)
	}
	c.paymentTransactionID = txID
	return nil
}
