// Package kernel contains shared value objects used across the domain model.
// These types carry no business process of their own; they enforce the basic
// invariants (precision, non-negativity) that the aggregates rely on.
package kernel
