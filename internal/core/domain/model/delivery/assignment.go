package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for assignments.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrAssignmentAlreadySuperseded is returned when superseding an assignment twice.
	ErrAssignmentAlreadySuperseded = errs.NewValueIsInvalidError("assignment is already superseded")
)

// ETAWindow is the delivery time promise shown to the customer,
// expressed as a low and high bound in minutes from assignment.
type ETAWindow struct {
	lowMinutes  int
	highMinutes int
}

// NewETAWindow creates an ETAWindow. Bounds must be positive and ordered.
func NewETAWindow(lowMinutes, highMinutes int) (ETAWindow, error) {
	if lowMinutes <= 0 {
		return ETAWindow{}, errs.NewValueIsOutOfRangeError("lowMinutes", lowMinutes, 1, highMinutes)
	}
	if highMinutes < lowMinutes {
		return ETAWindow{}, errs.NewValueIsOutOfRangeError("highMinutes", highMinutes, lowMinutes, highMinutes)
	}
	return ETAWindow{lowMinutes: lowMinutes, highMinutes: highMinutes}, nil
}

// LowMinutes returns the window's lower bound in minutes.
func (w ETAWindow) LowMinutes() int {
	return w.lowMinutes
}

// HighMinutes returns the window's upper bound in minutes.
func (w ETAWindow) HighMinutes() int {
	return w.highMinutes
}

// String renders the window the way it is shown to customers.
func (w ETAWindow) String() string {
	return fmt.Sprintf("%d-%d mins", w.lowMinutes, w.highMinutes)
}

// IsEqual compares two windows by value.
func (w ETAWindow) IsEqual(other ETAWindow) bool {
	return w.lowMinutes == other.lowMinutes && w.highMinutes == other.highMinutes
}

// Assignment binds an order to the courier and store serving it.
//
// At most one live assignment exists per order. When a cancelled order
// is re-dispatched the old assignment is superseded by the new one
// rather than overwritten, preserving the dispatch audit trail.
type Assignment struct {
	// id uniquely identifies the assignment
	id kernel.UUID
	// orderID is the order being served
	orderID kernel.UUID
	// courierID is the courier matched to the order
	courierID kernel.UUID
	// storeID is the store the courier picks up from
	storeID kernel.UUID
	// serviceMode is the delivery mode the window was computed for
	serviceMode ServiceMode
	// etaWindow is the promised delivery window
	etaWindow ETAWindow
	// createdAt is when the assignment was made
	createdAt time.Time
	// supersededBy points at the replacing assignment, nil while live
	supersededBy *kernel.UUID
	// guard ensures the assignment was properly constructed
	guard guard.ConstructorGuard
}

// NewAssignment creates a live Assignment.
func NewAssignment(
	orderID kernel.UUID,
	courierID kernel.UUID,
	storeID kernel.UUID,
	mode ServiceMode,
	etaWindow ETAWindow,
	createdAt time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		storeID.Validate(),
		mode.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		courierID:   courierID,
		storeID:     storeID,
		serviceMode: mode,
		etaWindow:   etaWindow,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs an Assignment from persisted data.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	storeID kernel.UUID,
	mode ServiceMode,
	etaWindow ETAWindow,
	createdAt time.Time,
	supersededBy *kernel.UUID,
) (*Assignment, error) {
	assignment, err := NewAssignment(orderID, courierID, storeID, mode, etaWindow, createdAt)
	if err != nil {
		return nil, err
	}

	if err = id.Validate(); err != nil {
		return nil, err
	}
	assignment.id = id
	assignment.supersededBy = supersededBy
	return assignment, nil
}

// Validate checks that the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// IsEqual compares assignments by identity.
func (a *Assignment) IsEqual(other *Assignment) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order being served.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// CourierID returns the courier matched to the order.
func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

// StoreID returns the store the courier picks up from.
func (a *Assignment) StoreID() kernel.UUID {
	return a.storeID
}

// ServiceMode returns the delivery mode the window was computed for.
func (a *Assignment) ServiceMode() ServiceMode {
	return a.serviceMode
}

// ETAWindow returns the promised delivery window.
func (a *Assignment) ETAWindow() ETAWindow {
	return a.etaWindow
}

// CreatedAt returns when the assignment was made.
func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// SupersededBy returns the id of the replacing assignment, or nil while live.
func (a *Assignment) SupersededBy() *kernel.UUID {
	return a.supersededBy
}

// IsLive reports whether the assignment is the order's current one.
func (a *Assignment) IsLive() bool {
	return a.supersededBy == nil
}

// Supersede marks the assignment as replaced by a newer one. An assignment
// can be superseded at most once.
func (a *Assignment) Supersede(by kernel.UUID) error {
	if a.supersededBy != nil {
		return ErrAssignmentAlreadySuperseded
	}
	if err := by.Validate(); err != nil {
		return err
	}

	a.supersededBy = &by
	return nil
}
