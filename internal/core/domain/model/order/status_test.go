package order_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.OrderReceived,
		order.PaymentProcessing,
		order.PaymentSucceeded,
		order.PaymentFailed,
		order.Preparing,
		order.Prepared,
		order.OutForDelivery,
		order.Completed,
		order.Cancelled,
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow the full happy path", func(t *testing.T) {
		path := []order.Status{
			order.OrderReceived,
			order.PaymentProcessing,
			order.PaymentSucceeded,
			order.Preparing,
			order.Prepared,
			order.OutForDelivery,
			order.Completed,
		}

		current := order.Pending
		for _, next := range path {
			transitioned, err := current.TransitionTo(next)

			require.NoError(t, err, "from %s to %s", current, next)
			current = transitioned
		}
		assert.Equal(t, order.Completed, current)
	})

	t.Run("should allow payment retry loop", func(t *testing.T) {
		failed, err := order.PaymentProcessing.TransitionTo(order.PaymentFailed)
		require.NoError(t, err)

		retried, err := failed.TransitionTo(order.PaymentProcessing)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentProcessing, retried)
	})

	t.Run("should reject skipping states", func(t *testing.T) {
		testCases := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Completed},
			{order.Pending, order.PaymentProcessing},
			{order.OrderReceived, order.Preparing},
			{order.PaymentSucceeded, order.OutForDelivery},
			{order.Preparing, order.Completed},
			{order.OutForDelivery, order.Preparing},
		}

		for _, tc := range testCases {
			_, err := tc.from.TransitionTo(tc.to)

			require.Error(t, err, "from %s to %s", tc.from, tc.to)
		}
	})

	t.Run("should reject any transition from terminal states", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Completed, order.Cancelled} {
			for _, next := range allStatuses() {
				_, err := terminal.TransitionTo(next)

				require.Error(t, err, "from %s to %s", terminal, next)
			}
		}
	})

	t.Run("should reject invalid target status", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Status(42))
		require.Error(t, err)

		_, err = order.Pending.TransitionTo(order.Unknown)
		require.Error(t, err)
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should cancel from every non-terminal status", func(t *testing.T) {
		for _, s := range allStatuses() {
			if s.IsTerminal() {
				continue
			}

			cancelled, err := s.Cancel()

			require.NoError(t, err, "from %s", s)
			assert.Equal(t, order.Cancelled, cancelled)
		}
	})

	t.Run("should not cancel from terminal statuses", func(t *testing.T) {
		_, err := order.Completed.Cancel()
		require.Error(t, err)

		_, err = order.Cancelled.Cancel()
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range allStatuses() {
		if s == order.Completed || s == order.Cancelled {
			continue
		}
		assert.False(t, s.IsTerminal(), "%s", s)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PENDING", order.Pending.String())
	assert.Equal(t, "PAYMENT_PROCESSING", order.PaymentProcessing.String())
	assert.Equal(t, "OUT_FOR_DELIVERY", order.OutForDelivery.String())
	assert.Equal(t, "UNKNOWN", order.Unknown.String())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip all valid statuses", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")
		require.Error(t, err)

		_, err = order.StatusFromString("UNKNOWN")
		require.Error(t, err)
	})
}
