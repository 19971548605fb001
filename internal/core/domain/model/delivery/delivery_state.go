package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for the delivery lifecycle.
var (
	// ErrDeliveryStateIsNotConstructed is returned when using an improperly initialized DeliveryState.
	ErrDeliveryStateIsNotConstructed = errors.New("DeliveryState must be created via NewDeliveryState constructor")
	// ErrDeliveryIsNotInTrial is returned when ending a trial on a delivery that is not waiting in one.
	ErrDeliveryIsNotInTrial = errs.NewValueIsInvalidError("delivery is not in a trial window")
	// ErrHistoryIsEmpty is returned when restoring a delivery without any history.
	ErrHistoryIsEmpty = errs.NewValueIsRequiredError("history")
)

// HistoryEntry records one status the delivery has passed through.
type HistoryEntry struct {
	// Status is the status that was entered.
	Status Status
	// EnteredAt is when the status was entered.
	EnteredAt time.Time
	// Auto marks entries produced by the engine itself, such as a trial
	// window expiring, rather than by an operator or courier action.
	Auto bool
}

// DeliveryState is the aggregate tracking an order through the delivery
// status machine. It owns the full status history, the trial deadline for
// home trial deliveries, and the exactly-once courier release latch.
type DeliveryState struct {
	// orderID identifies the order being delivered
	orderID kernel.UUID
	// serviceMode selects which happy path the delivery follows
	serviceMode ServiceMode
	// history lists every status entered, oldest first
	history []HistoryEntry
	// trialDeadline is when the current trial window expires; zero unless
	// the delivery has entered trial_wait
	trialDeadline time.Time
	// courierReleased latches once the courier has been returned to the pool
	courierReleased bool
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryState starts the lifecycle for a freshly assigned order.
// The delivery begins in the assigned status.
func NewDeliveryState(orderID kernel.UUID, mode ServiceMode, now time.Time) (*DeliveryState, error) {
	if err := errors.Join(orderID.Validate(), mode.Validate()); err != nil {
		return nil, err
	}

	return &DeliveryState{
		orderID:     orderID,
		serviceMode: mode,
		history: []HistoryEntry{
			{Status: Assigned, EnteredAt: now},
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryState reconstructs a DeliveryState from persisted data.
func RestoreDeliveryState(
	orderID kernel.UUID,
	mode ServiceMode,
	history []HistoryEntry,
	trialDeadline time.Time,
	courierReleased bool,
) (*DeliveryState, error) {
	if err := errors.Join(orderID.Validate(), mode.Validate()); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrHistoryIsEmpty
	}
	for _, entry := range history {
		if err := entry.Status.Validate(); err != nil {
			return nil, err
		}
	}

	state := &DeliveryState{
		orderID:         orderID,
		serviceMode:     mode,
		history:         append([]HistoryEntry(nil), history...),
		trialDeadline:   trialDeadline,
		courierReleased: courierReleased,
		guard:           guard.NewConstructorGuard(),
	}
	return state, nil
}

// Validate checks that the DeliveryState was created through a constructor.
func (d *DeliveryState) Validate() error {
	if d == nil {
		return ErrDeliveryStateIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryStateIsNotConstructed)
}

// OrderID returns the order being delivered.
func (d *DeliveryState) OrderID() kernel.UUID {
	return d.orderID
}

// ServiceMode returns the delivery's service mode.
func (d *DeliveryState) ServiceMode() ServiceMode {
	return d.serviceMode
}

// CurrentStatus returns the status the delivery is in now.
func (d *DeliveryState) CurrentStatus() Status {
	return d.history[len(d.history)-1].Status
}

// EnteredAt returns when the current status was entered.
func (d *DeliveryState) EnteredAt() time.Time {
	return d.history[len(d.history)-1].EnteredAt
}

// History returns a copy of the full status history, oldest first.
func (d *DeliveryState) History() []HistoryEntry {
	return append([]HistoryEntry(nil), d.history...)
}

// TrialDeadline returns when the trial window expires, or the zero time
// if the delivery has never entered one.
func (d *DeliveryState) TrialDeadline() time.Time {
	return d.trialDeadline
}

// CourierReleased reports whether the courier has already been returned
// to the pool for this delivery.
func (d *DeliveryState) CourierReleased() bool {
	return d.courierReleased
}

// IsTerminal reports whether the delivery has finished.
func (d *DeliveryState) IsTerminal() bool {
	return d.CurrentStatus().IsTerminal()
}

// Advance moves the delivery to the target status. The move must be legal
// for the delivery's service mode: one step forward along the happy path,
// or cancellation from any non-terminal status. Entering trial_wait starts
// the trial window clock.
func (d *DeliveryState) Advance(target Status, now time.Time) error {
	return d.advance(target, now, false)
}

func (d *DeliveryState) advance(target Status, now time.Time, auto bool) error {
	if err := target.Validate(); err != nil {
		return err
	}

	current := d.CurrentStatus()
	if !current.CanTransitionTo(target, d.serviceMode) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("cannot move delivery from %s to %s", current.String(), target.String()))
	}

	if target == TrialWait {
		d.trialDeadline = now.Add(TrialWaitMinutes * time.Minute)
	}
	d.history = append(d.history, HistoryEntry{Status: target, EnteredAt: now, Auto: auto})
	return nil
}

// EndTrial finishes the trial window early on the customer's word and
// sends the courier back in transit with any returns.
func (d *DeliveryState) EndTrial(now time.Time) error {
	if d.CurrentStatus() != TrialWait {
		return ErrDeliveryIsNotInTrial
	}
	return d.advance(InTransit, now, false)
}

// ExpireTrial closes the trial window automatically once its deadline has
// passed. It reports whether the delivery was advanced; a delivery that is
// not waiting in a trial, or whose deadline has not yet passed, is left
// untouched. Safe to call repeatedly from the timeout sweeper.
func (d *DeliveryState) ExpireTrial(now time.Time) bool {
	if d.CurrentStatus() != TrialWait {
		return false
	}
	if now.Before(d.trialDeadline) {
		return false
	}
	if err := d.advance(InTransit, now, true); err != nil {
		return false
	}
	return true
}

// Reassign restarts the lifecycle of a cancelled delivery after a new
// courier has been matched. The release latch is rearmed for the new
// courier; the old history is kept.
func (d *DeliveryState) Reassign(now time.Time) error {
	if d.CurrentStatus() != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("cannot reassign delivery in %s status", d.CurrentStatus().String()))
	}

	d.history = append(d.history, HistoryEntry{Status: Assigned, EnteredAt: now})
	d.trialDeadline = time.Time{}
	d.courierReleased = false
	return nil
}

// MarkCourierReleased latches the courier release. It returns true the
// first time it is called for the current assignment and false after,
// so the courier is returned to the pool exactly once.
func (d *DeliveryState) MarkCourierReleased() bool {
	if d.courierReleased {
		return false
	}
	d.courierReleased = true
	return true
}
