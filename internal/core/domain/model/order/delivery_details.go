package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/pkg/errs"
)

var (
	// ErrDeliveryDetailsAreNotConstructed is returned when a DeliveryDetails
	// instance was not created through NewDeliveryDetails or RestoreDeliveryDetails.
	ErrDeliveryDetailsAreNotConstructed = errors.New(
		"DeliveryDetails must be created via NewDeliveryDetails or RestoreDeliveryDetails",
	)

	// ErrDeliveryDetailsIDAlreadyAssigned is returned when a persistence
	// identifier is assigned to delivery details that already have one.
	ErrDeliveryDetailsIDAlreadyAssigned = errors.New("delivery details ID is already assigned")
)

// DeliveryDetails is the delivery record owned one-to-one by an Order:
// destination address, the assigned driver, and delivery times. It cannot
// outlive its order; deleting the order deletes the details with it.
type DeliveryDetails struct {
	id                 int64
	address            string
	preferredTime      string
	driverID           int64
	actualDeliveryTime *time.Time

	isConstructed bool
}

// NewDeliveryDetails creates delivery details for an order.
// The address must be non-empty and the driver identifier positive.
func NewDeliveryDetails(address, preferredTime string, driverID int64) (*DeliveryDetails, error) {
	if address == "" {
		return nil, errs.NewValueIsRequiredError("deliveryAddress")
	}
	if driverID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"deliveryDriverId",
			fmt.Errorf("%d is not greater than 0", driverID),
		)
	}

	return &DeliveryDetails{
		address:       address,
		preferredTime: preferredTime,
		driverID:      driverID,
		isConstructed: true,
	}, nil
}

// RestoreDeliveryDetails reconstructs persisted delivery details.
func RestoreDeliveryDetails(
	id int64,
	address, preferredTime string,
	driverID int64,
	actualDeliveryTime *time.Time,
) (*DeliveryDetails, error) {
	dd, err := NewDeliveryDetails(address, preferredTime, driverID)
	if err != nil {
		return nil, err
	}

	dd.actualDeliveryTime = actualDeliveryTime
	if id != 0 {
		if err := dd.AssignID(id); err != nil {
			return nil, err
		}
	}

	return dd, nil
}

// Validate ensures the instance was created through a constructor.
func (d *DeliveryDetails) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryDetailsAreNotConstructed
	}
	return nil
}

// ID returns the persistence identifier, or zero if not yet persisted.
func (d *DeliveryDetails) ID() int64 {
	return d.id
}

// AssignID sets the persistence identifier after the first persist.
// The identifier can only be assigned once and must be positive.
func (d *DeliveryDetails) AssignID(id int64) error {
	if d.id != 0 {
		return ErrDeliveryDetailsIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryDetailsId",
			fmt.Errorf("%d is not greater than 0", id),
		)
	}

	d.id = id
	return nil
}

// Address returns the delivery destination address.
func (d *DeliveryDetails) Address() string {
	return d.address
}

// PreferredTime returns the customer's preferred delivery time, if any.
func (d *DeliveryDetails) PreferredTime() string {
	return d.preferredTime
}

// DriverID returns the assigned delivery driver's identifier.
func (d *DeliveryDetails) DriverID() int64 {
	return d.driverID
}

// ActualDeliveryTime returns the recorded delivery time.
// Returns nil while the order has not been delivered.
func (d *DeliveryDetails) ActualDeliveryTime() *time.Time {
	return d.actualDeliveryTime
}

// RecordDelivery stores the actual delivery time. Set once.
func (d *DeliveryDetails) RecordDelivery(at time.Time) error {
	if d.actualDeliveryTime != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"actualDeliveryTime",
			errors.New("delivery time is already recorded"),
		)
	}

	d.actualDeliveryTime = &at
	return nil
}
