package services

import (
	"errors"
	"sort"

	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrStoreNotFound is returned when no store can serve an order.
// This occurs when the catalog handed to the index is empty.
var ErrStoreNotFound = errors.New("store not found")

// GeoIndex is a domain service answering the two spatial questions the
// dispatch flow asks: which store is closest to the customer, and which
// couriers in a zone are free to take the job.
//
// The index is stateless; it ranks whatever slice of stores or couriers
// the caller provides. Ordering is deterministic so that repeated
// dispatch attempts over the same fleet produce the same answer.
type GeoIndex struct{}

// NewGeoIndex creates a new GeoIndex instance.
func NewGeoIndex() GeoIndex {
	return GeoIndex{}
}

// NearestStore returns the store closest to the user's location.
//
// Parameters:
//   - userLocation: The customer's position (must be constructed)
//   - stores: Candidate stores to rank
//
// Returns:
//   - *fleet.Store: The closest store; distance ties break on the lower store id
//   - error: ErrStoreNotFound if stores is empty, or validation errors
func (g GeoIndex) NearestStore(userLocation kernel.GeoPoint, stores []*fleet.Store) (*fleet.Store, error) {
	if err := userLocation.Validate(); err != nil {
		return nil, err
	}

	var (
		best         *fleet.Store
		bestDistance float64
	)

	for _, store := range stores {
		if err := store.Validate(); err != nil {
			return nil, err
		}

		distance, err := userLocation.DistanceTo(store.Location())
		if err != nil {
			return nil, err
		}

		if best == nil || distance < bestDistance ||
			(distance == bestDistance && store.ID().String() < best.ID().String()) {
			best = store
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, ErrStoreNotFound
	}

	return best, nil
}

// AvailableCouriersInZone filters the given couriers down to those that are
// available and working the zone, ordered best candidate first: highest
// rating, then lower courier id on equal rating.
func (g GeoIndex) AvailableCouriersInZone(zone kernel.Zone, couriers []*fleet.Courier) ([]*fleet.Courier, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]*fleet.Courier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if c.Status() != fleet.Available {
			continue
		}
		if !c.Zone().IsEqual(zone) {
			continue
		}

		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rating() != candidates[j].Rating() {
			return candidates[i].Rating() > candidates[j].Rating()
		}
		return candidates[i].ID().String() < candidates[j].ID().String()
	})

	return candidates, nil
}
