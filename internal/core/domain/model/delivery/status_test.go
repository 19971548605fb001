package delivery_test

import (
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	t.Run("should return snake_case wire names", func(t *testing.T) {
		testCases := []struct {
			status   delivery.Status
			expected string
		}{
			{delivery.Assigned, "assigned"},
			{delivery.PickedUp, "picked_up"},
			{delivery.TrialWait, "trial_wait"},
			{delivery.InTransit, "in_transit"},
			{delivery.Arrived, "arrived"},
			{delivery.Delivered, "delivered"},
			{delivery.Cancelled, "cancelled"},
			{delivery.StatusUnknown, "unknown"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round trip all wire names", func(t *testing.T) {
		names := []string{
			"assigned", "picked_up", "trial_wait",
			"in_transit", "arrived", "delivered", "cancelled",
		}

		for _, name := range names {
			status, err := delivery.StatusFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("should reject unknown wire names", func(t *testing.T) {
		_, err := delivery.StatusFromString("teleported")

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark only delivered and cancelled terminal", func(t *testing.T) {
		assert.True(t, delivery.Delivered.IsTerminal())
		assert.True(t, delivery.Cancelled.IsTerminal())

		for _, status := range []delivery.Status{
			delivery.Assigned, delivery.PickedUp, delivery.TrialWait,
			delivery.InTransit, delivery.Arrived,
		} {
			assert.False(t, status.IsTerminal(), status.String())
		}
	})
}

func TestStatus_ProgressPercent(t *testing.T) {
	t.Run("should map statuses to tracking progress", func(t *testing.T) {
		testCases := []struct {
			status   delivery.Status
			expected int
		}{
			{delivery.Assigned, 20},
			{delivery.PickedUp, 40},
			{delivery.TrialWait, 55},
			{delivery.InTransit, 70},
			{delivery.Arrived, 90},
			{delivery.Delivered, 100},
			{delivery.Cancelled, 0},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.ProgressPercent(), tc.status.String())
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should follow the instant happy path", func(t *testing.T) {
		steps := []delivery.Status{
			delivery.Assigned, delivery.PickedUp, delivery.InTransit,
			delivery.Arrived, delivery.Delivered,
		}

		for i := 0; i < len(steps)-1; i++ {
			assert.True(t, steps[i].CanTransitionTo(steps[i+1], delivery.Instant),
				fmt.Sprintf("%s -> %s", steps[i], steps[i+1]))
		}
	})

	t.Run("should route instant deliveries around the trial window", func(t *testing.T) {
		assert.False(t, delivery.PickedUp.CanTransitionTo(delivery.TrialWait, delivery.Instant))
		assert.True(t, delivery.PickedUp.CanTransitionTo(delivery.InTransit, delivery.Instant))
	})

	t.Run("should route home trial deliveries through the trial window", func(t *testing.T) {
		assert.True(t, delivery.PickedUp.CanTransitionTo(delivery.TrialWait, delivery.HomeTrial))
		assert.False(t, delivery.PickedUp.CanTransitionTo(delivery.InTransit, delivery.HomeTrial))
		assert.True(t, delivery.TrialWait.CanTransitionTo(delivery.InTransit, delivery.HomeTrial))
	})

	t.Run("should reject skipping steps", func(t *testing.T) {
		assert.False(t, delivery.Assigned.CanTransitionTo(delivery.InTransit, delivery.Instant))
		assert.False(t, delivery.Assigned.CanTransitionTo(delivery.Delivered, delivery.Instant))
		assert.False(t, delivery.PickedUp.CanTransitionTo(delivery.Arrived, delivery.HomeTrial))
	})

	t.Run("should reject moving backwards", func(t *testing.T) {
		assert.False(t, delivery.InTransit.CanTransitionTo(delivery.PickedUp, delivery.Instant))
		assert.False(t, delivery.Arrived.CanTransitionTo(delivery.InTransit, delivery.Instant))
	})

	t.Run("should allow cancellation from any non-terminal status", func(t *testing.T) {
		for _, status := range []delivery.Status{
			delivery.Assigned, delivery.PickedUp, delivery.TrialWait,
			delivery.InTransit, delivery.Arrived,
		} {
			assert.True(t, status.CanTransitionTo(delivery.Cancelled, delivery.HomeTrial), status.String())
		}
	})

	t.Run("should accept nothing from terminal statuses", func(t *testing.T) {
		for _, terminal := range []delivery.Status{delivery.Delivered, delivery.Cancelled} {
			for _, target := range []delivery.Status{
				delivery.Assigned, delivery.PickedUp, delivery.TrialWait,
				delivery.InTransit, delivery.Arrived, delivery.Delivered, delivery.Cancelled,
			} {
				assert.False(t, terminal.CanTransitionTo(target, delivery.Instant),
					fmt.Sprintf("%s -> %s", terminal, target))
			}
		}
	})
}

func TestServiceMode(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		instant, err := delivery.ServiceModeFromString("instant")
		require.NoError(t, err)
		assert.Equal(t, delivery.Instant, instant)

		trial, err := delivery.ServiceModeFromString("home_trial")
		require.NoError(t, err)
		assert.Equal(t, delivery.HomeTrial, trial)
	})

	t.Run("should reject unknown wire names", func(t *testing.T) {
		_, err := delivery.ServiceModeFromString("express")

		require.Error(t, err)
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		require.Error(t, delivery.ServiceModeUnknown.Validate())
	})
}
