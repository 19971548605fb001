package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewAssignOrderCommand(
			orderID, "Banjara Hills", testPoint(t, 17.41, 78.43), delivery.HomeTrial)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, kernel.Zone("Banjara Hills"), cmd.UserZone())
		assert.Equal(t, delivery.HomeTrial, cmd.ServiceMode())
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		_, err := commands.NewAssignOrderCommand(
			kernel.UUID{}, "Banjara Hills", testPoint(t, 17.41, 78.43), delivery.Instant)

		require.Error(t, err)
	})

	t.Run("should reject empty zone", func(t *testing.T) {
		_, err := commands.NewAssignOrderCommand(
			kernel.NewUUID(), "", testPoint(t, 17.41, 78.43), delivery.Instant)

		require.Error(t, err)
	})

	t.Run("should reject invalid service mode", func(t *testing.T) {
		_, err := commands.NewAssignOrderCommand(
			kernel.NewUUID(), "Banjara Hills", testPoint(t, 17.41, 78.43), delivery.ServiceModeUnknown)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var cmd commands.AssignOrderCommand

		require.Error(t, cmd.Validate())
	})
}

func TestNewAdvanceDeliveryCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewAdvanceDeliveryCommand(orderID, delivery.PickedUp)

		require.NoError(t, err)
		assert.Equal(t, delivery.PickedUp, cmd.Target())
	})

	t.Run("should reject invalid target status", func(t *testing.T) {
		_, err := commands.NewAdvanceDeliveryCommand(kernel.NewUUID(), delivery.StatusUnknown)

		require.Error(t, err)
	})
}

func TestNewEndTrialCommand(t *testing.T) {
	t.Run("should reject empty order id", func(t *testing.T) {
		_, err := commands.NewEndTrialCommand(kernel.UUID{})

		require.Error(t, err)
	})
}
