package delivery_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestDelivery(t *testing.T, mode delivery.ServiceMode) *delivery.DeliveryState {
	t.Helper()
	state, err := delivery.NewDeliveryState(kernel.NewUUID(), mode, testNow)
	require.NoError(t, err)
	return state
}

func TestNewDeliveryState(t *testing.T) {
	t.Run("should start in assigned status", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)

		require.NoError(t, state.Validate())
		assert.Equal(t, delivery.Assigned, state.CurrentStatus())
		assert.Equal(t, testNow, state.EnteredAt())
		assert.Len(t, state.History(), 1)
		assert.True(t, state.TrialDeadline().IsZero())
		assert.False(t, state.CourierReleased())
	})

	t.Run("should reject invalid service mode", func(t *testing.T) {
		_, err := delivery.NewDeliveryState(kernel.NewUUID(), delivery.ServiceModeUnknown, testNow)

		require.Error(t, err)
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		_, err := delivery.NewDeliveryState(kernel.UUID{}, delivery.Instant, testNow)

		require.Error(t, err)
	})
}

func TestDeliveryState_Advance(t *testing.T) {
	t.Run("should record full home trial happy path", func(t *testing.T) {
		state := newTestDelivery(t, delivery.HomeTrial)
		steps := []delivery.Status{
			delivery.PickedUp, delivery.TrialWait, delivery.InTransit,
			delivery.Arrived, delivery.Delivered,
		}

		at := testNow
		for _, step := range steps {
			at = at.Add(5 * time.Minute)
			require.NoError(t, state.Advance(step, at))
		}

		history := state.History()
		require.Len(t, history, 6)
		assert.Equal(t, delivery.Assigned, history[0].Status)
		assert.Equal(t, delivery.Delivered, history[5].Status)
		assert.Equal(t, delivery.Delivered, state.CurrentStatus())
		assert.True(t, state.IsTerminal())
		for _, entry := range history {
			assert.False(t, entry.Auto)
		}
	})

	t.Run("should reject illegal transition and keep status", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)

		err := state.Advance(delivery.Arrived, testNow)

		require.Error(t, err)
		assert.Equal(t, delivery.Assigned, state.CurrentStatus())
		assert.Len(t, state.History(), 1)
	})

	t.Run("should reject any move out of a terminal status", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)
		require.NoError(t, state.Advance(delivery.Cancelled, testNow))

		err := state.Advance(delivery.PickedUp, testNow)

		require.Error(t, err)
		assert.Equal(t, delivery.Cancelled, state.CurrentStatus())
	})

	t.Run("should start trial clock on entering trial wait", func(t *testing.T) {
		state := newTestDelivery(t, delivery.HomeTrial)
		require.NoError(t, state.Advance(delivery.PickedUp, testNow))

		enteredTrial := testNow.Add(10 * time.Minute)
		require.NoError(t, state.Advance(delivery.TrialWait, enteredTrial))

		expected := enteredTrial.Add(delivery.TrialWaitMinutes * time.Minute)
		assert.Equal(t, expected, state.TrialDeadline())
	})
}

func TestDeliveryState_EndTrial(t *testing.T) {
	t.Run("should end trial early", func(t *testing.T) {
		state := newTestDelivery(t, delivery.HomeTrial)
		require.NoError(t, state.Advance(delivery.PickedUp, testNow))
		require.NoError(t, state.Advance(delivery.TrialWait, testNow))

		err := state.EndTrial(testNow.Add(3 * time.Minute))

		require.NoError(t, err)
		assert.Equal(t, delivery.InTransit, state.CurrentStatus())
	})

	t.Run("should reject ending trial outside the trial window", func(t *testing.T) {
		state := newTestDelivery(t, delivery.HomeTrial)

		err := state.EndTrial(testNow)

		require.Error(t, err)
		require.ErrorIs(t, err, delivery.ErrDeliveryIsNotInTrial)
	})
}

func TestDeliveryState_ExpireTrial(t *testing.T) {
	inTrial := func(t *testing.T) *delivery.DeliveryState {
		t.Helper()
		state := newTestDelivery(t, delivery.HomeTrial)
		require.NoError(t, state.Advance(delivery.PickedUp, testNow))
		require.NoError(t, state.Advance(delivery.TrialWait, testNow))
		return state
	}

	t.Run("should expire trial once deadline passes", func(t *testing.T) {
		state := inTrial(t)
		past := testNow.Add((delivery.TrialWaitMinutes + 1) * time.Minute)

		expired := state.ExpireTrial(past)

		assert.True(t, expired)
		assert.Equal(t, delivery.InTransit, state.CurrentStatus())

		history := state.History()
		assert.True(t, history[len(history)-1].Auto)
	})

	t.Run("should not expire before deadline", func(t *testing.T) {
		state := inTrial(t)

		expired := state.ExpireTrial(testNow.Add(time.Minute))

		assert.False(t, expired)
		assert.Equal(t, delivery.TrialWait, state.CurrentStatus())
	})

	t.Run("should be a no-op when called twice", func(t *testing.T) {
		state := inTrial(t)
		past := testNow.Add((delivery.TrialWaitMinutes + 1) * time.Minute)

		assert.True(t, state.ExpireTrial(past))
		assert.False(t, state.ExpireTrial(past))
		assert.Len(t, state.History(), 4)
	})

	t.Run("should be a no-op outside the trial window", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)

		assert.False(t, state.ExpireTrial(testNow.Add(time.Hour)))
	})
}

func TestDeliveryState_Reassign(t *testing.T) {
	t.Run("should restart cancelled delivery", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)
		require.NoError(t, state.Advance(delivery.Cancelled, testNow))
		assert.True(t, state.MarkCourierReleased())

		err := state.Reassign(testNow.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, state.CurrentStatus())
		assert.False(t, state.CourierReleased())
		assert.Len(t, state.History(), 3)
	})

	t.Run("should reject reassigning a live delivery", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)

		err := state.Reassign(testNow)

		require.Error(t, err)
	})

	t.Run("should reject reassigning a delivered order", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)
		for _, step := range []delivery.Status{
			delivery.PickedUp, delivery.InTransit, delivery.Arrived, delivery.Delivered,
		} {
			require.NoError(t, state.Advance(step, testNow))
		}

		err := state.Reassign(testNow)

		require.Error(t, err)
	})
}

func TestDeliveryState_MarkCourierReleased(t *testing.T) {
	t.Run("should latch exactly once", func(t *testing.T) {
		state := newTestDelivery(t, delivery.Instant)

		assert.True(t, state.MarkCourierReleased())
		assert.False(t, state.MarkCourierReleased())
		assert.True(t, state.CourierReleased())
	})
}

func TestRestoreDeliveryState(t *testing.T) {
	t.Run("should restore from persisted history", func(t *testing.T) {
		orderID := kernel.NewUUID()
		history := []delivery.HistoryEntry{
			{Status: delivery.Assigned, EnteredAt: testNow},
			{Status: delivery.PickedUp, EnteredAt: testNow.Add(5 * time.Minute)},
		}

		state, err := delivery.RestoreDeliveryState(
			orderID, delivery.HomeTrial, history, time.Time{}, false)

		require.NoError(t, err)
		assert.Equal(t, delivery.PickedUp, state.CurrentStatus())
		assert.Equal(t, orderID, state.OrderID())
	})

	t.Run("should reject empty history", func(t *testing.T) {
		_, err := delivery.RestoreDeliveryState(
			kernel.NewUUID(), delivery.Instant, nil, time.Time{}, false)

		require.Error(t, err)
		require.ErrorIs(t, err, delivery.ErrHistoryIsEmpty)
	})

	t.Run("should not share history with the caller", func(t *testing.T) {
		history := []delivery.HistoryEntry{{Status: delivery.Assigned, EnteredAt: testNow}}
		state, err := delivery.RestoreDeliveryState(
			kernel.NewUUID(), delivery.Instant, history, time.Time{}, false)
		require.NoError(t, err)

		history[0].Status = delivery.Delivered

		assert.Equal(t, delivery.Assigned, state.CurrentStatus())
	})
}
