package item

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the New or Restore factory functions.
	ErrItemIsNotConstructed = errors.New("Item must be created via New or Restore")

	// ErrItemIDAlreadyAssigned is returned when a persistence identifier is
	// assigned to an item that already has one.
	ErrItemIDAlreadyAssigned = errors.New("item ID is already assigned")
)

// Item represents one purchasable line within an order.
//
// Item follows these invariants:
//   - Category is immutable after creation
//   - Attributes match the category's record type and pass validation
//   - Price is resolved at creation time and never editable afterwards
//   - The persistence identifier is assigned exactly once, on first persist
//
// An Item belongs to exactly one order for its entire lifetime. Ownership is
// expressed by the order's item collection; the item holds no reference back
// to its order, so projections can never leak a cyclic back-reference.
type Item struct {
	// id is the persistence identifier, zero until first persisted
	id int64

	// category is the item's kind, immutable after creation
	category Category

	// attrs is the category-specific attribute record
	attrs Attributes

	// price is the resolved amount, computed at creation time
	price kernel.Money

	// isConstructed ensures the item was created via New or Restore
	isConstructed bool
}

// Validate ensures the Item instance was properly constructed through the
// factory. This prevents bypassing validation by directly instantiating
// the struct.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's persistence identifier, or zero if not yet persisted.
func (i *Item) ID() int64 {
	return i.id
}

// AssignID sets the persistence identifier after the item's first persist.
// The identifier can only be assigned once and must be positive.
func (i *Item) AssignID(id int64) error {
	if i.id != 0 {
		return ErrItemIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemId",
			fmt.Errorf("%d is not greater than 0", id),
		)
	}

	i.id = id
	return nil
}

// Category returns the item's category.
func (i *Item) Category() Category {
	return i.category
}

// Attributes returns the category-specific attribute record.
func (i *Item) Attributes() Attributes {
	return i.attrs
}

// Price returns the item's resolved price.
func (i *Item) Price() kernel.Money {
	return i.price
}
