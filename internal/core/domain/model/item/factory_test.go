package item_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

// validAttrsFor returns a minimal valid attribute map for every category,
// keeping the factory totality test honest when the enumeration grows.
func validAttrsFor(c item.Category) map[string]any {
	if c == item.CategoryPizza {
		return map[string]any{"size": "MEDIUM"}
	}
	return map[string]any{"name": "house special"}
}

func TestNew_TotalOverEnumeration(t *testing.T) {
	basePrice := money(t, 5.00)

	for _, category := range item.Categories() {
		t.Run(category.String(), func(t *testing.T) {
			it, err := item.New(category, validAttrsFor(category), basePrice)

			require.NoError(t, err)
			require.NotNil(t, it)
			require.NoError(t, it.Validate())
			assert.Equal(t, category, it.Category())
			assert.NotNil(t, it.Attributes())
		})
	}
}

func TestNew_Pizza(t *testing.T) {
	basePrice := money(t, 10.00)

	t.Run("should apply size surcharge to base price", func(t *testing.T) {
		testCases := []struct {
			size          string
			expectedCents int64
		}{
			{"SMALL", 1000},
			{"MEDIUM", 1150},
			{"LARGE", 1300},
		}

		for _, tc := range testCases {
			it, err := item.New(item.CategoryPizza, map[string]any{"size": tc.size}, basePrice)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedCents, it.Price().Cents(), "size %s", tc.size)
		}
	})

	t.Run("should carry toppings when provided", func(t *testing.T) {
		attrs := map[string]any{"size": "LARGE", "toppings": []any{"olives", "basil"}}

		it, err := item.New(item.CategoryPizza, attrs, basePrice)

		require.NoError(t, err)
		pizza, ok := it.Attributes().(item.PizzaAttributes)
		require.True(t, ok)
		assert.Equal(t, item.PizzaSizeLarge, pizza.Size)
		assert.Equal(t, []string{"olives", "basil"}, pizza.Toppings)
	})

	t.Run("should fail without size, not default it", func(t *testing.T) {
		it, err := item.New(item.CategoryPizza, map[string]any{}, basePrice)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unknown size", func(t *testing.T) {
		it, err := item.New(item.CategoryPizza, map[string]any{"size": "GIGANTIC"}, basePrice)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNew_Drink(t *testing.T) {
	basePrice := money(t, 2.50)

	t.Run("should accept name with optional volume", func(t *testing.T) {
		attrs := map[string]any{"name": "lemonade", "volumeMl": float64(330)}

		it, err := item.New(item.CategoryDrink, attrs, basePrice)

		require.NoError(t, err)
		drink, ok := it.Attributes().(item.DrinkAttributes)
		require.True(t, ok)
		assert.Equal(t, "lemonade", drink.Name)
		assert.Equal(t, 330, drink.VolumeMl)
		assert.Equal(t, int64(250), it.Price().Cents())
	})

	t.Run("should fail without name", func(t *testing.T) {
		it, err := item.New(item.CategoryDrink, map[string]any{"volumeMl": 500}, basePrice)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with fractional volume", func(t *testing.T) {
		attrs := map[string]any{"name": "cola", "volumeMl": 330.5}

		it, err := item.New(item.CategoryDrink, attrs, basePrice)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with non-numeric volume", func(t *testing.T) {
		attrs := map[string]any{"name": "cola", "volumeMl": "large"}

		it, err := item.New(item.CategoryDrink, attrs, basePrice)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNew_UnsupportedCategory(t *testing.T) {
	t.Run("should fail with unsupported category error", func(t *testing.T) {
		it, err := item.New(item.Category(99), map[string]any{"name": "mystery"}, money(t, 1.00))

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, item.ErrUnsupportedCategory)

		var unsupported *item.UnsupportedCategoryError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, item.Category(99), unsupported.Category)
	})
}

func TestRestore(t *testing.T) {
	t.Run("should keep stored price without re-pricing", func(t *testing.T) {
		storedPrice := money(t, 42.00)

		it, err := item.Restore(7, item.CategoryPizza, map[string]any{"size": "LARGE"}, storedPrice)

		require.NoError(t, err)
		assert.Equal(t, int64(7), it.ID())
		assert.True(t, it.Price().IsEqual(storedPrice))
	})

	t.Run("should fail with malformed stored attributes", func(t *testing.T) {
		it, err := item.Restore(7, item.CategorySauce, map[string]any{}, money(t, 1.00))

		require.Error(t, err)
		assert.Nil(t, it)
	})
}

func TestItem_AssignID(t *testing.T) {
	basePrice := money(t, 3.00)

	t.Run("should assign id once", func(t *testing.T) {
		it, err := item.New(item.CategorySauce, map[string]any{"name": "garlic"}, basePrice)
		require.NoError(t, err)

		require.NoError(t, it.AssignID(12))
		assert.Equal(t, int64(12), it.ID())

		err = it.AssignID(13)
		require.Error(t, err)
		assert.Equal(t, item.ErrItemIDAlreadyAssigned, err)
		assert.Equal(t, int64(12), it.ID())
	})

	t.Run("should reject non-positive id", func(t *testing.T) {
		it, err := item.New(item.CategorySauce, map[string]any{"name": "garlic"}, basePrice)
		require.NoError(t, err)

		require.Error(t, it.AssignID(0))
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("should fail for directly instantiated item", func(t *testing.T) {
		var it item.Item

		err := it.Validate()

		require.Error(t, err)
		assert.Equal(t, item.ErrItemIsNotConstructed, err)
	})

	t.Run("should fail for nil item", func(t *testing.T) {
		var it *item.Item

		err := it.Validate()

		require.Error(t, err)
		assert.Equal(t, item.ErrItemIsNotConstructed, err)
	})
}
