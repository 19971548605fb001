package fleet

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// RatingMin is the lowest courier rating the fleet feed may report.
	RatingMin = 0.0
	// RatingMax is the highest courier rating the fleet feed may report.
	RatingMax = 5.0
)

// Domain errors for courier operations.
var (
	// ErrCourierNameIsRequired is returned when creating a courier without a name.
	ErrCourierNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrVehicleTypeIsRequired is returned when creating a courier without a vehicle type.
	ErrVehicleTypeIsRequired = errs.NewValueIsRequiredError("vehicle type")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier working a zone.
//
// The status field is the concurrency-critical piece of fleet state: it is
// owned exclusively by the dispatch ledger and changes only through the
// Reserve/ConfirmBusy/Release methods, which delegate the legality check
// to the Status state machine. All other fields are descriptive data from
// the fleet feed.
//
// Business rules:
//   - A courier belongs to exactly one zone at a time
//   - Rating is bounded to [0..5] and is only an ordering hint for candidate lists
//   - New couriers start available; persisted couriers are restored with their saved status
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// phone is the courier's contact number shown to customers
	phone string
	// vehicleType describes the courier's vehicle (e.g. "bike")
	vehicleType string
	// rating is the courier's average customer rating, used to order candidates
	rating float64
	// zone is the delivery catchment the courier currently works
	zone kernel.Zone
	// location is the courier's last reported position
	location kernel.GeoPoint
	// status is the availability state owned by the dispatch ledger
	status Status
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new available Courier with the given attributes.
// All parameters are validated; errors are aggregated.
func NewCourier(
	id kernel.UUID,
	name string,
	phone string,
	vehicleType string,
	rating float64,
	zone kernel.Zone,
	location kernel.GeoPoint,
) (*Courier, error) {
	courier := &Courier{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setVehicleType(vehicleType),
		courier.setRating(rating),
		courier.setZone(zone),
		courier.setLocation(location),
	); err != nil {
		return nil, err
	}

	courier.phone = phone
	return courier, nil
}

// RestoreCourier reconstructs a Courier from persisted or fed state,
// including its saved availability status.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	vehicleType string,
	rating float64,
	zone kernel.Zone,
	location kernel.GeoPoint,
	status Status,
) (*Courier, error) {
	courier, err := NewCourier(id, name, phone, vehicleType, rating, zone, location)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	courier.status = status
	return courier, nil
}

// Validate checks that the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c *Courier) Phone() string {
	return c.phone
}

// VehicleType returns the courier's vehicle description.
func (c *Courier) VehicleType() string {
	return c.vehicleType
}

// Rating returns the courier's average rating.
func (c *Courier) Rating() float64 {
	return c.rating
}

// Zone returns the delivery catchment the courier works.
func (c *Courier) Zone() kernel.Zone {
	return c.zone
}

// Location returns the courier's last reported position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// Status returns the courier's availability state.
func (c *Courier) Status() Status {
	return c.status
}

// Reserve transitions the courier from available to reserved.
// Any other starting state fails and leaves the courier untouched.
func (c *Courier) Reserve() error {
	next, err := c.status.Reserve()
	if err != nil {
		return err
	}
	c.status = next
	return nil
}

// ConfirmBusy transitions a reserved courier to busy once the delivery starts.
func (c *Courier) ConfirmBusy() error {
	next, err := c.status.ConfirmBusy()
	if err != nil {
		return err
	}
	c.status = next
	return nil
}

// Release returns a reserved or busy courier to the available pool.
func (c *Courier) Release() error {
	next, err := c.status.Release()
	if err != nil {
		return err
	}
	c.status = next
	return nil
}

// MarkOffline takes an idle courier off shift.
func (c *Courier) MarkOffline() error {
	next, err := c.status.MarkOffline()
	if err != nil {
		return err
	}
	c.status = next
	return nil
}

// MarkAvailable brings an offline courier back on shift.
func (c *Courier) MarkAvailable() error {
	next, err := c.status.MarkAvailable()
	if err != nil {
		return err
	}
	c.status = next
	return nil
}

// MoveTo updates the courier's reported position from the fleet feed.
func (c *Courier) MoveTo(location kernel.GeoPoint) error {
	return c.setLocation(location)
}

// ChangeZone moves the courier to another delivery catchment.
// Used when the fleet feed reports a courier crossing zone boundaries.
func (c *Courier) ChangeZone(zone kernel.Zone) error {
	return c.setZone(zone)
}

// Clone returns an independent copy of the courier. Snapshots handed out
// by the ledger are clones so readers never observe in-flight mutation.
func (c *Courier) Clone() *Courier {
	cp := *c
	return &cp
}

// setID sets the courier's unique identifier with validation.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

// setName sets the courier's name with validation.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrCourierNameIsRequired
	}

	c.name = name
	return nil
}

// setVehicleType sets the courier's vehicle description with validation.
func (c *Courier) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return ErrVehicleTypeIsRequired
	}

	c.vehicleType = vehicleType
	return nil
}

// setRating sets the courier's rating with range validation.
func (c *Courier) setRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	c.rating = rating
	return nil
}

// setZone sets the courier's zone with validation.
func (c *Courier) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	c.zone = zone
	return nil
}

// setLocation sets the courier's position with validation.
func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
