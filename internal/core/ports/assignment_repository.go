package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignments.
// An order has at most one live assignment at a time; superseded
// assignments are kept as the dispatch audit trail.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *delivery.Assignment) error

	// Update persists changes to an existing assignment, typically the
	// superseded-by pointer set during re-dispatch.
	Update(ctx context.Context, aggregate *delivery.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error)

	// GetLiveByOrderID retrieves the order's current assignment.
	// Returns an ObjectNotFoundError when the order has no live assignment.
	GetLiveByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error)

	// GetAllLive retrieves every live assignment, newest first.
	// Used by the dispatch board.
	GetAllLive(ctx context.Context) ([]*delivery.Assignment, error)
}
