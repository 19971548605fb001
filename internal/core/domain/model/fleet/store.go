package fleet

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for store construction.
var (
	// ErrStoreNameIsRequired is returned when creating a store without a name.
	ErrStoreNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrBrandIsRequired is returned when creating a store without a brand.
	ErrBrandIsRequired = errs.NewValueIsRequiredError("brand")
	// ErrStoreIsNotConstructed is returned when using an improperly initialized Store.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// Store is a partner fulfillment store. Stores are immutable reference data:
// they are loaded at startup through the store catalog and never mutated by
// the dispatch engine.
type Store struct {
	// id uniquely identifies the store
	id kernel.UUID
	// name is the customer-facing store name
	name string
	// brand is the retail brand operating the store
	brand string
	// address is the street address shown on assignments
	address string
	// phone is the store's contact number
	phone string
	// operatingHours is the display string for opening times
	operatingHours string
	// zone is the delivery catchment the store serves
	zone kernel.Zone
	// location is the store's position
	location kernel.GeoPoint
	// guard ensures the store was properly constructed
	guard guard.ConstructorGuard
}

// NewStore creates a Store with the given attributes. ID, name, brand, zone
// and location are validated; address, phone and operating hours are stored
// verbatim as display metadata.
func NewStore(
	id kernel.UUID,
	name string,
	brand string,
	address string,
	phone string,
	operatingHours string,
	zone kernel.Zone,
	location kernel.GeoPoint,
) (*Store, error) {
	store := &Store{
		address:        address,
		phone:          phone,
		operatingHours: operatingHours,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		store.setID(id),
		store.setName(name),
		store.setBrand(brand),
		store.setZone(zone),
		store.setLocation(location),
	); err != nil {
		return nil, err
	}

	return store, nil
}

// Validate checks that the Store was created through NewStore.
func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

// IsEqual compares stores by identity.
func (s *Store) IsEqual(other *Store) bool {
	if other == nil {
		return false
	}
	return s.id.IsEqual(other.id)
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Name returns the customer-facing store name.
func (s *Store) Name() string {
	return s.name
}

// Brand returns the retail brand operating the store.
func (s *Store) Brand() string {
	return s.brand
}

// Address returns the store's street address.
func (s *Store) Address() string {
	return s.address
}

// Phone returns the store's contact number.
func (s *Store) Phone() string {
	return s.phone
}

// OperatingHours returns the display string for opening times.
func (s *Store) OperatingHours() string {
	return s.operatingHours
}

// Zone returns the delivery catchment the store serves.
func (s *Store) Zone() kernel.Zone {
	return s.zone
}

// Location returns the store's position.
func (s *Store) Location() kernel.GeoPoint {
	return s.location
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return ErrStoreNameIsRequired
	}

	s.name = name
	return nil
}

func (s *Store) setBrand(brand string) error {
	if brand == "" {
		return ErrBrandIsRequired
	}

	s.brand = brand
	return nil
}

func (s *Store) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	s.zone = zone
	return nil
}

func (s *Store) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	s.location = location
	return nil
}
