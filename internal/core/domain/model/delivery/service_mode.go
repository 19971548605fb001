package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// TrialWaitMinutes is how long a courier waits at the customer's door
// during a home trial before the trial expires automatically.
const TrialWaitMinutes = 20

// ServiceMode distinguishes how an order is delivered.
//
// Instant orders go straight from pickup to the customer. Home trial
// orders include a try-at-home window: the courier waits while the
// customer tries the items and takes back anything returned.
type ServiceMode int

const (
	// ServiceModeUnknown represents an invalid or undefined mode.
	ServiceModeUnknown ServiceMode = iota

	// Instant is a plain point-to-point delivery.
	Instant

	// HomeTrial is a delivery with a try-at-home window at the door.
	HomeTrial
)

func getValidServiceModeStrings() map[ServiceMode]string {
	return map[ServiceMode]string{
		Instant:   "instant",
		HomeTrial: "home_trial",
	}
}

// Validate checks if the ServiceMode is one of the defined modes.
func (m ServiceMode) Validate() error {
	if _, ok := getValidServiceModeStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service mode is invalid",
			fmt.Errorf("%d is not a valid service mode", m))
	}
	return nil
}

// String returns the wire name of the mode, or "unknown".
func (m ServiceMode) String() string {
	if str, ok := getValidServiceModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// ServiceModeFromString parses a service mode from its wire name.
func ServiceModeFromString(s string) (ServiceMode, error) {
	for mode, name := range getValidServiceModeStrings() {
		if name == s {
			return mode, nil
		}
	}
	return ServiceModeUnknown, errs.NewValueIsInvalidErrorWithCause("service mode is invalid",
		fmt.Errorf("%q is not a valid service mode", s))
}
