package services

import (
	"errors"
	"sync"

	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
)

// Ledger errors.
var (
	// ErrCourierNotRegistered is returned when operating on a courier the ledger has never seen.
	ErrCourierNotRegistered = errors.New("courier is not registered in the ledger")
	// ErrCourierNotAvailable is returned when a reservation loses the race for a courier.
	// Callers treat it as a recoverable conflict and try the next candidate.
	ErrCourierNotAvailable = errors.New("courier is not available")
	// ErrNoCouriersAvailable is returned when every candidate courier is taken.
	ErrNoCouriersAvailable = errors.New("no couriers available")
)

// DispatchLedger is the authoritative in-memory record of courier
// availability. All reservation traffic flows through it: concurrent
// assignment attempts for the same courier are serialized here, so at
// most one caller wins a reservation and everyone else gets
// ErrCourierNotAvailable.
//
// The ledger owns its courier records. Couriers are registered as copies,
// and every read hands out a clone, so callers can never mutate ledger
// state behind its back.
//
// Locking is per courier: a reservation on one courier never blocks
// traffic on another. The outer lock only guards the registry map.
type DispatchLedger struct {
	mu       sync.RWMutex
	couriers map[kernel.UUID]*courierEntry
}

type courierEntry struct {
	mu      sync.Mutex
	courier *fleet.Courier
}

// NewDispatchLedger creates an empty DispatchLedger.
func NewDispatchLedger() *DispatchLedger {
	return &DispatchLedger{
		couriers: make(map[kernel.UUID]*courierEntry),
	}
}

// Register adds a courier to the ledger or replaces its record when the
// fleet feed re-announces it. The ledger stores its own copy.
func (l *DispatchLedger) Register(courier *fleet.Courier) error {
	if err := courier.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.couriers[courier.ID()] = &courierEntry{courier: courier.Clone()}
	return nil
}

// Get returns a snapshot of a single courier's record.
func (l *DispatchLedger) Get(courierID kernel.UUID) (*fleet.Courier, error) {
	entry, err := l.entry(courierID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.courier.Clone(), nil
}

// Snapshot returns a point-in-time copy of every courier in the ledger.
// The copies are independent; mutating them does not touch ledger state.
func (l *DispatchLedger) Snapshot() []*fleet.Courier {
	l.mu.RLock()
	entries := make([]*courierEntry, 0, len(l.couriers))
	for _, entry := range l.couriers {
		entries = append(entries, entry)
	}
	l.mu.RUnlock()

	snapshot := make([]*fleet.Courier, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		snapshot = append(snapshot, entry.courier.Clone())
		entry.mu.Unlock()
	}
	return snapshot
}

// Reserve holds a courier for an assignment. Exactly one of any number of
// concurrent Reserve calls for the same courier succeeds; the rest get
// ErrCourierNotAvailable.
func (l *DispatchLedger) Reserve(courierID kernel.UUID) error {
	entry, err := l.entry(courierID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err = entry.courier.Reserve(); err != nil {
		return ErrCourierNotAvailable
	}
	return nil
}

// ReserveAny walks the candidate couriers in order and reserves the first
// one still available. Candidates that lost a race in the meantime are
// skipped. Returns the reserved courier's snapshot, or
// ErrNoCouriersAvailable when every candidate is taken.
func (l *DispatchLedger) ReserveAny(candidateIDs []kernel.UUID) (*fleet.Courier, error) {
	for _, id := range candidateIDs {
		entry, err := l.entry(id)
		if err != nil {
			return nil, err
		}

		entry.mu.Lock()
		if err = entry.courier.Reserve(); err == nil {
			snapshot := entry.courier.Clone()
			entry.mu.Unlock()
			return snapshot, nil
		}
		entry.mu.Unlock()
	}

	return nil, ErrNoCouriersAvailable
}

// ConfirmBusy moves a reserved courier to busy once the delivery starts.
func (l *DispatchLedger) ConfirmBusy(courierID kernel.UUID) error {
	entry, err := l.entry(courierID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.courier.ConfirmBusy()
}

// Release returns a courier to the available pool. Releasing a courier
// that is already available is a no-op, so release paths do not have to
// coordinate about who freed the courier first.
func (l *DispatchLedger) Release(courierID kernel.UUID) error {
	entry, err := l.entry(courierID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.courier.Status() == fleet.Available {
		return nil
	}
	return entry.courier.Release()
}

// UpdateLocation records a courier position report from the fleet feed.
func (l *DispatchLedger) UpdateLocation(courierID kernel.UUID, location kernel.GeoPoint) error {
	entry, err := l.entry(courierID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.courier.MoveTo(location)
}

// SetOffline takes an idle courier off shift.
func (l *DispatchLedger) SetOffline(courierID kernel.UUID) error {
	entry, err := l.entry(courierID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.courier.MarkOffline()
}

// SetAvailable brings an offline courier back on shift.
func (l *DispatchLedger) SetAvailable(courierID kernel.UUID) error {
	entry, err := l.entry(courierID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.courier.MarkAvailable()
}

func (l *DispatchLedger) entry(courierID kernel.UUID) (*courierEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.couriers[courierID]
	if !ok {
		return nil, ErrCourierNotRegistered
	}
	return entry, nil
}
