package services

import (
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

const (
	// DefaultBaseMinutes is the base travel estimate used for zones the
	// calculator has no entry for.
	DefaultBaseMinutes = 20

	// WindowSpreadMinutes is the width of every promised window: the high
	// bound sits this many minutes above the low bound.
	WindowSpreadMinutes = 10
)

// ETACalculator is a domain service producing the delivery window promised
// to the customer at assignment time.
//
// The estimate starts from a per-zone base travel time. Home trial orders
// get the trial wait added to both bounds, since the courier stays at the
// door for the whole trial window.
//
// The calculator is pure: the same zones and mode always yield the same
// window, which keeps the promise reproducible for tracking and audits.
type ETACalculator struct {
	baseMinutes map[kernel.Zone]int
}

// NewETACalculator creates an ETACalculator over the given per-zone base
// travel times. Zones missing from the map fall back to DefaultBaseMinutes.
func NewETACalculator(baseMinutes map[kernel.Zone]int) ETACalculator {
	zones := make(map[kernel.Zone]int, len(baseMinutes))
	for zone, minutes := range baseMinutes {
		zones[zone] = minutes
	}
	return ETACalculator{baseMinutes: zones}
}

// Window computes the promised delivery window for an order.
//
// The base travel time is looked up by the customer's zone. When the
// customer's zone is unknown to the calculator the store's zone is tried
// next, then DefaultBaseMinutes. Home trial mode widens both bounds by
// the trial wait.
func (e ETACalculator) Window(userZone, storeZone kernel.Zone, mode delivery.ServiceMode) (delivery.ETAWindow, error) {
	if err := mode.Validate(); err != nil {
		return delivery.ETAWindow{}, err
	}

	low := e.base(userZone, storeZone)
	high := low + WindowSpreadMinutes

	if mode == delivery.HomeTrial {
		low += delivery.TrialWaitMinutes
		high += delivery.TrialWaitMinutes
	}

	return delivery.NewETAWindow(low, high)
}

func (e ETACalculator) base(userZone, storeZone kernel.Zone) int {
	if minutes, ok := e.baseMinutes[userZone]; ok {
		return minutes
	}
	if minutes, ok := e.baseMinutes[storeZone]; ok {
		return minutes
	}
	return DefaultBaseMinutes
}
