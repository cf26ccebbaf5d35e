// Package item contains the line-item model of the order domain.
//
// An order line is one of a closed set of categories (pizza, drink, appetizer,
// sauce, dessert). Each category carries its own attribute record, selected
// and validated by the factory function New; the generic attribute map that
// arrives on the wire never leaks past the factory boundary.
//
// Prices are resolved at construction time from the menu base price plus
// category-specific adjustments and are immutable afterwards.
package item
