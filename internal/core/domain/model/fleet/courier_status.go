package fleet

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the availability state of a courier.
//
// State transitions:
//
//	available ──> reserved ──> busy ──> available
//	(release returns both reserved and busy couriers to available;
//	 offline is entered and left only through the fleet feed)
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available means the courier can be reserved for a new delivery.
	Available

	// Reserved means the courier is held for an assignment that has not
	// yet been confirmed by the courier.
	Reserved

	// Busy means the courier is actively carrying out a delivery.
	Busy

	// Offline means the courier is not working and must not be offered.
	Offline
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Reserved:  "reserved",
		Busy:      "busy",
		Offline:   "offline",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "available",
		Reserved:  "reserved",
		Busy:      "busy",
		Offline:   "offline",
	}
}

// Validate checks if the Status value is one of the defined courier states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

// String returns the lowercase wire name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a courier status from its wire name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid courier status", s))
}

// Reserve returns the Reserved status if reservation is allowed.
// Only an available courier can be reserved; any other state is a conflict
// the caller must treat as a recoverable condition.
func (s Status) Reserve() (Status, error) {
	if s != Available {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("cannot reserve courier in %s status", s.String()))
	}
	return Reserved, nil
}

// ConfirmBusy returns the Busy status once the courier accepts the delivery.
// Valid only from Reserved.
func (s Status) ConfirmBusy() (Status, error) {
	if s != Reserved {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("cannot confirm busy for courier in %s status", s.String()))
	}
	return Busy, nil
}

// Release returns the Available status when a delivery finishes or a
// reservation is abandoned. Valid from Reserved and Busy.
func (s Status) Release() (Status, error) {
	if s != Reserved && s != Busy {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("cannot release courier in %s status", s.String()))
	}
	return Available, nil
}

// MarkOffline takes an idle courier off shift. Valid only from Available:
// a courier holding a reservation or an active delivery must be released first.
func (s Status) MarkOffline() (Status, error) {
	if s != Available {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("cannot mark courier offline in %s status", s.String()))
	}
	return Offline, nil
}

// MarkAvailable brings an offline courier back on shift.
func (s Status) MarkAvailable() (Status, error) {
	if s != Offline {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("cannot mark courier available in %s status", s.String()))
	}
	return Available, nil
}
