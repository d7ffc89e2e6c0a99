package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func validDelivery() commands.DeliveryInput {
	return commands.DeliveryInput{
		Street:     "12 Market Road",
		City:       "Mumbai",
		PostalCode: "400001",
		Method:     "standard",
	}
}

func validItems() []commands.OrderItemInput {
	return []commands.OrderItemInput{
		{ProductName: "Onions", Category: "vegetables", Quantity: 5, Unit: "kg", Price: 80},
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validItems(), validDelivery(), "upi", "leave at door",
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Len(t, cmd.Items(), 1)
		require.Equal(t, "upi", cmd.PaymentMethod())
		require.Equal(t, "leave at door", cmd.Instructions())
	})

	t.Run("should reject zero identifiers", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			validItems(), validDelivery(), "upi", "",
		)

		require.Error(t, err)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, validDelivery(), "upi", "",
		)

		require.Error(t, err)
	})

	t.Run("should reject missing delivery street", func(t *testing.T) {
		delivery := validDelivery()
		delivery.Street = ""

		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validItems(), delivery, "upi", "",
		)

		require.Error(t, err)
	})

	t.Run("should reject missing payment method", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validItems(), validDelivery(), "", "",
		)

		require.Error(t, err)
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.Error(t, cmd.Validate())
	})
}
