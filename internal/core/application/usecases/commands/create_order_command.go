package commands

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemRequestIsNotConstructed = errors.New(
		"ItemRequest must be created via NewItemRequest constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemRequest describes one requested order line: which menu record to price
// against, the item category, and the generic attribute map the factory will
// convert into the category's record.
type ItemRequest struct { //nolint:recvcheck //using for validation
	menuItemID int64
	category   item.Category
	attributes map[string]any

	guard guard.ConstructorGuard
}

// NewItemRequest creates a validated line request. Attribute content is
// validated later, at the item factory boundary; here only the menu reference
// is checked. A nil attribute map is normalized to an empty one.
func NewItemRequest(menuItemID int64, category item.Category, attributes map[string]any) (ItemRequest, error) {
	request := ItemRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := request.setMenuItemID(menuItemID); err != nil {
		return ItemRequest{}, err
	}

	if attributes == nil {
		attributes = map[string]any{}
	}
	request.category = category
	request.attributes = attributes

	return request, nil
}

// Validate ensures the request was created through the constructor.
func (r ItemRequest) Validate() error {
	return r.guard.Validate(ErrItemRequestIsNotConstructed)
}

// MenuItemID returns the referenced menu record's identifier.
func (r ItemRequest) MenuItemID() int64 {
	return r.menuItemID
}

// Category returns the requested item category.
func (r ItemRequest) Category() item.Category {
	return r.category
}

// Attributes returns the generic attribute map for the factory.
func (r ItemRequest) Attributes() map[string]any {
	return r.attributes
}

func (r *ItemRequest) setMenuItemID(menuItemID int64) error {
	if menuItemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"menuItemId",
			fmt.Errorf("%d is not greater than 0", menuItemID),
		)
	}
	r.menuItemID = menuItemID
	return nil
}

// CreateOrderCommand represents a request to create a new order for a user
// from a list of requested lines.
//
// Example:
//
//	req, _ := commands.NewItemRequest(3, item.CategoryPizza, map[string]any{"size": "LARGE"})
//	cmd, err := commands.NewCreateOrderCommand(42, []commands.ItemRequest{req})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID int64
	items  []ItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the user id is positive and at least one constructed item
// request is present.
func NewCreateOrderCommand(userID int64, items []ItemRequest) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the ordering user.
func (c CreateOrderCommand) UserID() int64 {
	return c.userID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemRequest {
	return c.items
}

func (c *CreateOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"userId",
			fmt.Errorf("%d is not greater than 0", userID),
		)
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, request := range items {
		if err := request.Validate(); err != nil {
			return err
		}
	}

	c.items = append([]ItemRequest(nil), items...)
	return nil
}
