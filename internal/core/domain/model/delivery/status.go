package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents a delivery's position in its lifecycle.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Assigned means a courier has been matched to the order.
	Assigned

	// PickedUp means the courier has collected the items from the store.
	PickedUp

	// TrialWait means the courier is waiting at the door during a home trial.
	TrialWait

	// InTransit means the courier is en route to the customer
	// (or, for home trials, carrying returns back after the trial).
	InTransit

	// Arrived means the courier has reached the destination.
	Arrived

	// Delivered means the delivery completed successfully. Terminal.
	Delivered

	// Cancelled means the delivery was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Assigned:      "assigned",
		PickedUp:      "picked_up",
		TrialWait:     "trial_wait",
		InTransit:     "in_transit",
		Arrived:       "arrived",
		Delivered:     "delivered",
		Cancelled:     "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		TrialWait: "trial_wait",
		InTransit: "in_transit",
		Arrived:   "arrived",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getProgressPercents maps each status to the tracking progress shown to
// the customer. Cancelled deliveries report zero progress.
func getProgressPercents() map[Status]int {
	return map[Status]int{
		Assigned:  20,
		PickedUp:  40,
		TrialWait: 55,
		InTransit: 70,
		Arrived:   90,
		Delivered: 100,
		Cancelled: 0,
	}
}

// Validate checks if the Status is one of the defined delivery states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the snake_case wire name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a delivery status from its wire name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// IsTerminal reports whether the status ends the delivery lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ProgressPercent returns the tracking progress for the status.
func (s Status) ProgressPercent() int {
	return getProgressPercents()[s]
}

// next returns the status that follows s on the happy path for the
// given service mode.
func (s Status) next(mode ServiceMode) (Status, bool) {
	switch s {
	case Assigned:
		return PickedUp, true
	case PickedUp:
		if mode == HomeTrial {
			return TrialWait, true
		}
		return InTransit, true
	case TrialWait:
		return InTransit, true
	case InTransit:
		return Arrived, true
	case Arrived:
		return Delivered, true
	default:
		return StatusUnknown, false
	}
}

// CanTransitionTo reports whether a delivery in status s under the given
// service mode may move to the target status. Forward moves follow the
// mode's happy path one step at a time; cancellation is allowed from any
// non-terminal status; terminal statuses accept nothing.
func (s Status) CanTransitionTo(target Status, mode ServiceMode) bool {
	if s.IsTerminal() {
		return false
	}
	if target == Cancelled {
		return true
	}
	next, ok := s.next(mode)
	return ok && next == target
}
