package item

import (
	"fmt"
	"math"

	"pizzeria/internal/pkg/errs"
)

// Attribute keys recognized by the per-category records. These are the only
// keys the factory reads from the generic attribute map.
const (
	attrSize     = "size"
	attrToppings = "toppings"
	attrName     = "name"
	attrVolumeMl = "volumeMl"
)

// Attributes is the closed set of category-specific attribute records.
// Exactly one record type exists per Category; instances are produced by the
// factory from the generic wire-level attribute map and converted back with
// Map at serialization boundaries.
type Attributes interface {
	// Validate checks the record's category-specific invariants.
	Validate() error

	// Map projects the record back to the generic key-value form used on the
	// wire and in persistence.
	Map() map[string]any
}

// PizzaAttributes carries the attributes specific to pizza items.
type PizzaAttributes struct {
	Size     PizzaSize
	Toppings []string
}

func (a PizzaAttributes) Validate() error {
	return a.Size.Validate()
}

func (a PizzaAttributes) Map() map[string]any {
	m := map[string]any{attrSize: a.Size.String()}
	if len(a.Toppings) > 0 {
		m[attrToppings] = a.Toppings
	}
	return m
}

// DrinkAttributes carries the attributes specific to drink items.
type DrinkAttributes struct {
	Name     string
	VolumeMl int
}

func (a DrinkAttributes) Validate() error {
	if a.Name == "" {
		return errs.NewValueIsRequiredError(attrName)
	}
	if a.VolumeMl < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			attrVolumeMl,
			fmt.Errorf("%d is negative", a.VolumeMl),
		)
	}
	return nil
}

func (a DrinkAttributes) Map() map[string]any {
	m := map[string]any{attrName: a.Name}
	if a.VolumeMl > 0 {
		m[attrVolumeMl] = a.VolumeMl
	}
	return m
}

// AppetizerAttributes carries the attributes specific to appetizer items.
type AppetizerAttributes struct {
	Name string
}

func (a AppetizerAttributes) Validate() error {
	if a.Name == "" {
		return errs.NewValueIsRequiredError(attrName)
	}
	return nil
}

func (a AppetizerAttributes) Map() map[string]any {
	return map[string]any{attrName: a.Name}
}

// SauceAttributes carries the attributes specific to sauce items.
type SauceAttributes struct {
	Name string
}

func (a SauceAttributes) Validate() error {
	if a.Name == "" {
		return errs.NewValueIsRequiredError(attrName)
	}
	return nil
}

func (a SauceAttributes) Map() map[string]any {
	return map[string]any{attrName: a.Name}
}

// DessertAttributes carries the attributes specific to dessert items.
type DessertAttributes struct {
	Name string
}

func (a DessertAttributes) Validate() error {
	if a.Name == "" {
		return errs.NewValueIsRequiredError(attrName)
	}
	return nil
}

func (a DessertAttributes) Map() map[string]any {
	return map[string]any{attrName: a.Name}
}

// stringAttr extracts a required string value from the generic attribute map.
func stringAttr(attrs map[string]any, key string) (string, error) {
	raw, ok := attrs[key]
	if !ok {
		return "", errs.NewValueIsRequiredError(key)
	}

	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errs.NewValueIsInvalidErrorWithCause(
			key,
			fmt.Errorf("%v is not a non-empty string", raw),
		)
	}

	return s, nil
}

// intAttr extracts an optional integer value from the generic attribute map.
// JSON decoding yields float64 for numbers, so both forms are accepted.
func intAttr(attrs map[string]any, key string) (int, error) {
	raw, ok := attrs[key]
	if !ok {
		return 0, nil
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// fractional values are rejected rather than silently truncated
		if v != math.Trunc(v) {
			return 0, errs.NewValueIsInvalidErrorWithCause(
				key,
				fmt.Errorf("%v is not a whole number", v),
			)
		}
		return int(v), nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			key,
			fmt.Errorf("%v is not a number", raw),
		)
	}
}

// stringSliceAttr extracts an optional string-slice value from the generic
// attribute map. JSON decoding yields []any for arrays.
func stringSliceAttr(attrs map[string]any, key string) ([]string, error) {
	raw, ok := attrs[key]
	if !ok {
		return nil, nil
	}

	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, isString := e.(string)
			if !isString {
				return nil, errs.NewValueIsInvalidErrorWithCause(
					key,
					fmt.Errorf("%v is not a string", e),
				)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			key,
			fmt.Errorf("%v is not a list of strings", raw),
		)
	}
}
