package item

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
)

// ErrUnsupportedCategory is the unwrap target for UnsupportedCategoryError.
var ErrUnsupportedCategory = errors.New("item category is not supported")

// UnsupportedCategoryError indicates an enumerated category with no factory
// mapping. This is a server-side defect, distinct from the validation errors
// raised for malformed caller input, and must never be swallowed.
type UnsupportedCategoryError struct {
	Category Category
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedCategory, e.Category)
}

func (e *UnsupportedCategoryError) Unwrap() error {
	return ErrUnsupportedCategory
}

// Pizza size surcharges applied on top of the menu base price.
func pizzaSizeSurcharge(size PizzaSize) kernel.Money {
	surcharges := map[PizzaSize]int64{
		PizzaSizeSmall:  0,
		PizzaSizeMedium: 150,
		PizzaSizeLarge:  300,
	}

	m, _ := kernel.NewMoneyFromCents(surcharges[size])
	return m
}

// New constructs an item of the given category from a generic attribute map
// and the menu base price. It is the only way to create line items: it selects
// the category's attribute record, validates required attributes (a missing
// required key fails construction, it is never defaulted), and resolves the
// final price from the base price plus category-specific adjustments.
//
// Returns a validation error for malformed attributes and an
// UnsupportedCategoryError for a category outside the enumeration.
//
// Example:
//
//	basePrice, _ := kernel.NewMoneyFromFloat(10.00)
//	it, err := item.New(item.CategoryPizza, map[string]any{"size": "LARGE"}, basePrice)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(it.Price()) // base price plus the large-size surcharge
func New(category Category, attrs map[string]any, basePrice kernel.Money) (*Item, error) {
	record, err := buildAttributes(category, attrs)
	if err != nil {
		return nil, err
	}

	price := basePrice
	if pizza, ok := record.(PizzaAttributes); ok {
		price = price.Add(pizzaSizeSurcharge(pizza.Size))
	}

	return &Item{
		category:      category,
		attrs:         record,
		price:         price,
		isConstructed: true,
	}, nil
}

// Restore reconstructs a persisted item. The stored price is kept as-is;
// pricing adjustments are never re-applied on load.
func Restore(id int64, category Category, attrs map[string]any, price kernel.Money) (*Item, error) {
	record, err := buildAttributes(category, attrs)
	if err != nil {
		return nil, err
	}

	it := &Item{
		category:      category,
		attrs:         record,
		price:         price,
		isConstructed: true,
	}

	if id != 0 {
		if err := it.AssignID(id); err != nil {
			return nil, err
		}
	}

	return it, nil
}

// buildAttributes dispatches on category to the matching record builder.
// Total over the valid enumeration; an enumerated category without a builder
// surfaces as UnsupportedCategoryError so tests catch the defect.
func buildAttributes(category Category, attrs map[string]any) (Attributes, error) {
	switch category {
	case CategoryPizza:
		return newPizzaAttributes(attrs)
	case CategoryDrink:
		return newDrinkAttributes(attrs)
	case CategoryAppetizer:
		return newAppetizerAttributes(attrs)
	case CategorySauce:
		return newSauceAttributes(attrs)
	case CategoryDessert:
		return newDessertAttributes(attrs)
	default:
		return nil, &UnsupportedCategoryError{Category: category}
	}
}

func newPizzaAttributes(attrs map[string]any) (Attributes, error) {
	sizeStr, err := stringAttr(attrs, attrSize)
	if err != nil {
		return nil, err
	}

	size, err := PizzaSizeFromString(sizeStr)
	if err != nil {
		return nil, err
	}

	toppings, err := stringSliceAttr(attrs, attrToppings)
	if err != nil {
		return nil, err
	}

	record := PizzaAttributes{Size: size, Toppings: toppings}
	return record, record.Validate()
}

func newDrinkAttributes(attrs map[string]any) (Attributes, error) {
	name, err := stringAttr(attrs, attrName)
	if err != nil {
		return nil, err
	}

	volume, err := intAttr(attrs, attrVolumeMl)
	if err != nil {
		return nil, err
	}

	record := DrinkAttributes{Name: name, VolumeMl: volume}
	return record, record.Validate()
}

func newAppetizerAttributes(attrs map[string]any) (Attributes, error) {
	name, err := stringAttr(attrs, attrName)
	if err != nil {
		return nil, err
	}

	record := AppetizerAttributes{Name: name}
	return record, record.Validate()
}

func newSauceAttributes(attrs map[string]any) (Attributes, error) {
	name, err := stringAttr(attrs, attrName)
	if err != nil {
		return nil, err
	}

	record := SauceAttributes{Name: name}
	return record, record.Validate()
}

func newDessertAttributes(attrs map[string]any) (Attributes, error) {
	name, err := stringAttr(attrs, attrName)
	if err != nil {
		return nil, err
	}

	record := DessertAttributes{Name: name}
	return record, record.Validate()
}
