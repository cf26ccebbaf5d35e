package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsImmutable is returned on any mutation attempt once the order
	// has reached a terminal status.
	ErrOrderIsImmutable = errors.New("order is in a terminal status and cannot be modified")

	// ErrItemMutationNotAllowed is returned when the item list is modified
	// outside of the Pending status.
	ErrItemMutationNotAllowed = errors.New("items can only be added or removed while the order is pending")

	// ErrPaymentTransactionAlreadySet is returned when a payment transaction
	// reference is assigned to an order that already has one.
	ErrPaymentTransactionAlreadySet = errors.New("payment transaction ID is already set")
)

// Order represents one customer purchase transaction. It is the aggregate
// root owning the ordered item collection, the lifecycle status, the running
// total, and the optional delivery and payment metadata.
//
// Order follows these invariants:
//   - The identifier and owning user identifier are positive
//   - totalAmount always equals the sum of the current item prices; every
//     item-list mutation recomputes it atomically with the mutation
//   - Items may only be added or removed while the status is Pending
//   - Status transitions follow the state machine defined on Status
//   - Once a terminal status is reached no further mutation is permitted
//   - The payment transaction reference is set at most once
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated methods.
type Order struct {
	id                   int64
	userID               int64
	orderTime            time.Time
	status               Status
	items                []*item.Item
	totalAmount          kernel.Money
	deliveryDetails      *DeliveryDetails
	paymentTransactionID string
	paymentAttempts      int

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with no items.
//
// Parameters:
//   - id: positive identifier allocated by the order registry
//   - userID: identifier of the owning user, resolved beforehand
//   - orderTime: creation timestamp, immutable afterwards
func NewOrder(id, userID int64, orderTime time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		orderTime:     orderTime,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs a persisted order. The total is recomputed from
// the restored items so the total/items invariant holds regardless of what
// was stored.
func RestoreOrder(
	id, userID int64,
	orderTime time.Time,
	status Status,
	items []*item.Item,
	deliveryDetails *DeliveryDetails,
	paymentTransactionID string,
	paymentAttempts int,
) (*Order, error) {
	o, err := NewOrder(id, userID, orderTime)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}

	if deliveryDetails != nil {
		if err := deliveryDetails.Validate(); err != nil {
			return nil, err
		}
	}

	if paymentAttempts < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"paymentAttempts",
			fmt.Errorf("%d is negative", paymentAttempts),
		)
	}

	o.status = status
	o.items = append([]*item.Item(nil), items...)
	o.deliveryDetails = deliveryDetails
	o.paymentTransactionID = paymentTransactionID
	o.paymentAttempts = paymentAttempts
	o.recomputeTotal()

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Clone returns a copy that can be mutated independently of the receiver.
// The item and delivery records are shared: both are owned values that no
// mutation method rewrites in place.
func (o *Order) Clone() *Order {
	clone := *o
	clone.items = append([]*item.Item(nil), o.items...)
	return &clone
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's identifier.
func (o *Order) ID() int64 {
	return o.id
}

// UserID returns the identifier of the owning user.
func (o *Order) UserID() int64 {
	return o.userID
}

// OrderTime returns the creation timestamp.
func (o *Order) OrderTime() time.Time {
	return o.orderTime
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the ordered item collection. The returned slice is a copy;
// the items themselves are owned by the order.
func (o *Order) Items() []*item.Item {
	return append([]*item.Item(nil), o.items...)
}

// TotalAmount returns the sum of the current item prices.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// DeliveryDetails returns the owned delivery record, or nil if unassigned.
func (o *Order) DeliveryDetails() *DeliveryDetails {
	return o.deliveryDetails
}

// PaymentTransactionID returns the external payment reference, or the empty
// string while no payment has succeeded.
func (o *Order) PaymentTransactionID() string {
	return o.paymentTransactionID
}

// PaymentAttempts returns the number of failed payment attempts recorded.
func (o *Order) PaymentAttempts() int {
	return o.paymentAttempts
}

// AddItem appends an item to the order and recomputes the total atomically
// with the mutation. Only legal while the status is Pending.
func (o *Order) AddItem(it *item.Item) error {
	if err := o.ensureItemsMutable(); err != nil {
		return err
	}
	if err := it.Validate(); err != nil {
		return err
	}

	o.items = append(o.items, it)
	o.recomputeTotal()
	return nil
}

// RemoveItem removes the item with the given identifier and recomputes the
// total atomically with the mutation. Only legal while the status is Pending.
func (o *Order) RemoveItem(itemID int64) error {
	if err := o.ensureItemsMutable(); err != nil {
		return err
	}

	for i, it := range o.items {
		if it.ID() == itemID {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.recomputeTotal()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("itemId", itemID)
}

// ChangeStatus transitions the order to the next status, enforcing the
// state machine. A transition into PaymentFailed increments the payment
// attempt counter.
func (o *Order) ChangeStatus(next Status) error {
	if o.status.IsTerminal() {
		return ErrOrderIsImmutable
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == PaymentFailed {
		o.paymentAttempts++
	}
	return nil
}

// Cancel transitions the order to Cancelled. Valid from any non-terminal
// status.
func (o *Order) Cancel() error {
	return o.ChangeStatus(Cancelled)
}

// SetDeliveryDetails attaches the owned delivery record.
// Not permitted once the order is terminal.
func (o *Order) SetDeliveryDetails(dd *DeliveryDetails) error {
	if o.status.IsTerminal() {
		return ErrOrderIsImmutable
	}
	if err := dd.Validate(); err != nil {
		return err
	}

	o.deliveryDetails = dd
	return nil
}

// SetPaymentTransactionID records the external payment reference.
// Only permitted once, and only after payment has succeeded.
func (o *Order) SetPaymentTransactionID(txID string) error {
	if o.paymentTransactionID != "" {
		return ErrPaymentTransactionAlreadySet
	}
	if txID == "" {
		return errs.NewValueIsRequiredError("paymentTransactionId")
	}
	if o.status != PaymentSucceeded {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to record a payment transaction", o.status),
		)
	}

	o.paymentTransactionID = txID
	return nil
}

func (o *Order) ensureItemsMutable() error {
	if o.status.IsTerminal() {
		return ErrOrderIsImmutable
	}
	if o.status != Pending {
		return ErrItemMutationNotAllowed
	}
	return nil
}

func (o *Order) recomputeTotal() {
	var total kernel.Money
	for _, it := range o.items {
		total = total.Add(it.Price())
	}
	o.totalAmount = total
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderId",
			fmt.Errorf("%d is not greater than 0", id),
		)
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"userId",
			fmt.Errorf("%d is not greater than 0", userID),
		)
	}
	o.userID = userID
	return nil
}
