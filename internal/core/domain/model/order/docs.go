// Package order contains the order aggregate of the domain model.
//
// Order is the aggregate root: it owns the ordered item collection, the
// lifecycle status, the running total, and the optional delivery and payment
// metadata. Status implements the fulfillment state machine; DeliveryDetails
// is the one-to-one owned delivery record.
//
// All state changes go through validated methods on the aggregate, so the
// total/items invariant and the status transition rules cannot be bypassed.
package order
