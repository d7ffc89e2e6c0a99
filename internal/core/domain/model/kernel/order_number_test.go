package kernel_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber(t *testing.T) {
	t.Run("should generate number for the current year", func(t *testing.T) {
		n := kernel.NewOrderNumber()

		require.NoError(t, n.Validate())
		assert.True(t, strings.HasPrefix(n.String(), fmt.Sprintf("ORD-%d-", time.Now().Year())))
	})

	t.Run("should generate distinct numbers", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			n := kernel.NewOrderNumber()
			assert.False(t, seen[n.String()], "duplicate order number %s", n)
			seen[n.String()] = true
		}
	})

	t.Run("should round-trip through string form", func(t *testing.T) {
		n := kernel.NewOrderNumber()

		restored, err := kernel.OrderNumberFromString(n.String())

		require.NoError(t, err)
		assert.True(t, n.IsEqual(restored))
	})
}

func TestOrderNumberFromString(t *testing.T) {
	t.Run("should accept well-formed number", func(t *testing.T) {
		n, err := kernel.OrderNumberFromString("ORD-2026-9F3A01BC")

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, "ORD-2026-9F3A01BC", n.String())
	})

	t.Run("should reject malformed numbers", func(t *testing.T) {
		for _, s := range []string{"", "ORD-2026", "2026-9F3A01BC", "ORD-2026-xyz", "ORD-26-9F3A01BC"} {
			_, err := kernel.OrderNumberFromString(s)
			require.Error(t, err, "expected %q to be rejected", s)
		}
	})
}

func TestOrderNumber_Validate(t *testing.T) {
	t.Run("should fail validation for zero value", func(t *testing.T) {
		var n kernel.OrderNumber

		err := n.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrOrderNumberIsNotConstructed, err)
	})
}
