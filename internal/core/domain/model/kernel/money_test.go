package kernel_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("should create money from non-negative cents", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(1050)

		require.NoError(t, err)
		assert.Equal(t, int64(1050), m.Cents())
		assert.InDelta(t, 10.50, m.Float64(), 0.0001)
	})

	t.Run("should allow zero", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative cents", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	t.Run("should create money from two-decimal value", func(t *testing.T) {
		m, err := kernel.NewMoneyFromFloat(10.99)

		require.NoError(t, err)
		assert.Equal(t, int64(1099), m.Cents())
	})

	t.Run("should reject negative value", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(-0.01)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject sub-cent precision", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(10.999)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Add(t *testing.T) {
	a, _ := kernel.NewMoneyFromFloat(10.00)
	b, _ := kernel.NewMoneyFromFloat(3.50)

	sum := a.Add(b)

	assert.Equal(t, int64(1350), sum.Cents())
	assert.True(t, sum.IsEqual(a.Add(b)))
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1000, "10.00"},
		{1099, "10.99"},
	}

	for _, tc := range testCases {
		m, err := kernel.NewMoneyFromCents(tc.cents)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, m.String())
	}
}
