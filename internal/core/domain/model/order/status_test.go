package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names for valid statuses", func(t *testing.T) {
		assert.Equal(t, "pending", order.Pending.String())
		assert.Equal(t, "confirmed", order.Confirmed.String())
		assert.Equal(t, "processing", order.Processing.String())
		assert.Equal(t, "packed", order.Packed.String())
		assert.Equal(t, "dispatched", order.Dispatched.String())
		assert.Equal(t, "in_transit", order.InTransit.String())
		assert.Equal(t, "delivered", order.Delivered.String())
		assert.Equal(t, "cancelled", order.Cancelled.String())
		assert.Equal(t, "returned", order.Returned.String())
		assert.Equal(t, "refunded", order.Refunded.String())
	})

	t.Run("should return unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every valid wire name", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Processing, order.Packed,
			order.Dispatched, order.InTransit, order.Delivered,
			order.Cancelled, order.Returned, order.Refunded,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown wire name", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("terminal states", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Returned.IsTerminal())
		assert.True(t, order.Refunded.IsTerminal())
	})

	t.Run("non-terminal states", func(t *testing.T) {
		assert.False(t, order.Pending.IsTerminal())
		assert.False(t, order.Confirmed.IsTerminal())
		assert.False(t, order.Processing.IsTerminal())
		assert.False(t, order.Packed.IsTerminal())
		assert.False(t, order.Dispatched.IsTerminal())
		assert.False(t, order.InTransit.IsTerminal())
	})
}

func TestStatus_Transition(t *testing.T) {
	t.Run("should allow forward happy-path move", func(t *testing.T) {
		next, err := order.Pending.Transition(order.Confirmed)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, next)
	})

	t.Run("should allow skipping stages", func(t *testing.T) {
		next, err := order.Pending.Transition(order.Dispatched)

		require.NoError(t, err)
		assert.Equal(t, order.Dispatched, next)
	})

	t.Run("should allow side exit from any non-terminal state", func(t *testing.T) {
		for _, from := range []order.Status{
			order.Pending, order.Confirmed, order.Processing,
			order.Packed, order.Dispatched, order.InTransit,
		} {
			next, err := from.Transition(order.Cancelled)
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, next)
		}
	})

	t.Run("should reject any move out of a terminal state", func(t *testing.T) {
		for _, from := range []order.Status{
			order.Delivered, order.Cancelled, order.Returned, order.Refunded,
		} {
			_, err := from.Transition(order.Confirmed)
			require.Error(t, err)
			require.ErrorIs(t, err, order.ErrTerminalState)
		}
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		_, err := order.Pending.Transition(order.Unknown)
		require.Error(t, err)
	})
}
