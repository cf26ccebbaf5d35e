package item

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Category is the fixed enumeration of purchasable item kinds.
// The set is closed: every place that consumes a Category matches it
// exhaustively, and the factory is total over the valid values.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	// This value (0) helps catch uninitialized Category values.
	CategoryUnknown Category = iota

	CategoryPizza
	CategoryDrink
	CategoryAppetizer
	CategorySauce
	CategoryDessert
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown:   "UNKNOWN",
		CategoryPizza:     "PIZZA",
		CategoryDrink:     "DRINK",
		CategoryAppetizer: "APPETIZER",
		CategorySauce:     "SAUCE",
		CategoryDessert:   "DESSERT",
	}
}

// Categories returns all valid categories in declaration order.
// Used by consumers that must be total over the enumeration, such as tests
// verifying the factory handles every category.
func Categories() []Category {
	return []Category{CategoryPizza, CategoryDrink, CategoryAppetizer, CategorySauce, CategoryDessert}
}

// Validate checks that the Category is one of the enumerated valid values.
func (c Category) Validate() error {
	if c <= CategoryUnknown || c > CategoryDessert {
		return errs.NewValueIsInvalidErrorWithCause(
			"category",
			fmt.Errorf("%d is not a valid item category", c),
		)
	}
	return nil
}

// String returns the wire name of the category, e.g. "PIZZA".
// Implements fmt.Stringer and is safe to call on invalid values.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}

// CategoryFromString parses a wire name into a Category.
func CategoryFromString(s string) (Category, error) {
	for category, str := range getCategoryStrings() {
		if str == s && category != CategoryUnknown {
			return category, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"category",
		fmt.Errorf("%q is not a valid item category", s),
	)
}

// PizzaSize is the fixed enumeration of pizza sizes.
type PizzaSize int

const (
	// PizzaSizeUnknown represents an invalid or undefined size.
	PizzaSizeUnknown PizzaSize = iota

	PizzaSizeSmall
	PizzaSizeMedium
	PizzaSizeLarge
)

func getPizzaSizeStrings() map[PizzaSize]string {
	return map[PizzaSize]string{
		PizzaSizeUnknown: "UNKNOWN",
		PizzaSizeSmall:   "SMALL",
		PizzaSizeMedium:  "MEDIUM",
		PizzaSizeLarge:   "LARGE",
	}
}

// Validate checks that the PizzaSize is one of the enumerated valid values.
func (s PizzaSize) Validate() error {
	if s <= PizzaSizeUnknown || s > PizzaSizeLarge {
		return errs.NewValueIsInvalidErrorWithCause(
			"size",
			fmt.Errorf("%d is not a valid pizza size", s),
		)
	}
	return nil
}

// String returns the wire name of the size, e.g. "LARGE".
func (s PizzaSize) String() string {
	if str, ok := getPizzaSizeStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// PizzaSizeFromString parses a wire name into a PizzaSize.
func PizzaSizeFromString(s string) (PizzaSize, error) {
	for size, str := range getPizzaSizeStrings() {
		if str == s && size != PizzaSizeUnknown {
			return size, nil
		}
	}
	return PizzaSizeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"size",
		fmt.Errorf("%q is not a valid pizza size", s),
	)
}
