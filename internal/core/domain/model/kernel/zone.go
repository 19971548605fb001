package kernel

import "dispatch/internal/pkg/errs"

// ErrZoneIsRequired is returned when an empty zone name is used where a
// valid zone is expected.
var ErrZoneIsRequired = errs.NewValueIsRequiredError("zone")

// Zone names a geographic delivery catchment (e.g. "Banjara Hills").
// Zones scope courier searches and select ETA base times. They are plain
// names rather than geometries: zone membership of stores and couriers is
// maintained by the fleet-state feed, not derived from coordinates here.
type Zone string

// Validate rejects the empty zone name.
func (z Zone) Validate() error {
	if z == "" {
		return ErrZoneIsRequired
	}
	return nil
}

// String returns the zone name.
func (z Zone) String() string {
	return string(z)
}

// IsEqual compares two zones by name.
func (z Zone) IsEqual(other Zone) bool {
	return z == other
}
