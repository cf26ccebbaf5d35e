package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct fulfillment workflow:
//
//	PENDING ──> ORDER_RECEIVED ──> PAYMENT_PROCESSING ──┬──> PAYMENT_SUCCEEDED ──> PREPARING ──> PREPARED ──> OUT_FOR_DELIVERY ──> COMPLETED
//	                                       ▲            │
//	                                       │            └──> PAYMENT_FAILED
//	                                       └──────────────────────┘
//	                                                        (retry)
//
// CANCELLED is reachable from every non-terminal state. COMPLETED and
// CANCELLED are terminal: no further transitions are allowed past them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; items may only be added or removed here.
	Pending

	OrderReceived
	PaymentProcessing
	PaymentSucceeded
	PaymentFailed
	Preparing
	Prepared
	OutForDelivery

	// Completed indicates successful delivery. Terminal.
	Completed

	// Cancelled indicates the order was abandoned before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Pending:           "PENDING",
		OrderReceived:     "ORDER_RECEIVED",
		PaymentProcessing: "PAYMENT_PROCESSING",
		PaymentSucceeded:  "PAYMENT_SUCCEEDED",
		PaymentFailed:     "PAYMENT_FAILED",
		Preparing:         "PREPARING",
		Prepared:          "PREPARED",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Completed:         "COMPLETED",
		Cancelled:         "CANCELLED",
	}
}

// getStatusTransitions returns the allowed forward transitions per status.
// CANCELLED is handled separately: it is reachable from any non-terminal state.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:           {OrderReceived},
		OrderReceived:     {PaymentProcessing},
		PaymentProcessing: {PaymentSucceeded, PaymentFailed},
		PaymentSucceeded:  {Preparing},
		PaymentFailed:     {PaymentProcessing},
		Preparing:         {Prepared},
		Prepared:          {OutForDelivery},
		OutForDelivery:    {Completed},
		Completed:         {},
		Cancelled:         {},
	}
}

// Validate checks if the Status value is one of the enumerated valid values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, e.g. "PAYMENT_PROCESSING".
// Implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire name into a Status.
func StatusFromString(str string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == str && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", str),
	)
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the transition from s to next is allowed
// by the state machine.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == Cancelled {
		return true
	}
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo transitions the status to next.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("transition from %s to %s is not allowed", s, next),
		)
	}

	return next, nil
}

// Cancel transitions the status to Cancelled.
// Valid from any non-terminal state.
func (s Status) Cancel() (Status, error) {
	return s.TransitionTo(Cancelled)
}
