package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// GeoPointMinLat is the minimum valid latitude in degrees.
	GeoPointMinLat = -90.0
	// GeoPointMaxLat is the maximum valid latitude in degrees.
	GeoPointMaxLat = 90.0
	// GeoPointMinLng is the minimum valid longitude in degrees.
	GeoPointMinLng = -180.0
	// GeoPointMaxLng is the maximum valid longitude in degrees.
	GeoPointMaxLng = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a latitude/longitude pair
// in decimal degrees. The zero value is invalid and fails validation.
//
// Distances between points are planar Euclidean distances over degrees.
// Within a single city catchment this is only used to rank candidates by
// proximity, never to measure real travel distance, so the approximation
// is deliberate.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(17.4065, 78.4772)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates in decimal degrees.
// Latitude must lie within [-90..90] and longitude within [-180..180].
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer using a "GeoPoint(lat,lng)" format.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.4f,%.4f)", p.lat, p.lng)
}

// IsEqual compares two points coordinate-wise.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceTo returns the planar Euclidean distance to other, in degrees.
// The result is only meaningful for comparing relative proximity.
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := p.lat - other.lat
	dLng := p.lng - other.lng
	return math.Sqrt(dLat*dLat + dLng*dLng), nil
}

// setLat sets the latitude with range validation.
// Pointer receiver enables self-encapsulated validation during construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoPointMinLat || lat > GeoPointMaxLat {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoPointMinLat, GeoPointMaxLat)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with range validation.
// Pointer receiver enables self-encapsulated validation during construction.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoPointMinLng || lng > GeoPointMaxLng {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoPointMinLng, GeoPointMaxLng)
	}

	p.lng = lng
	return nil
}
