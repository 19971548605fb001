package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// lifecycle aggregates, including their full status history.
type DeliveryRepository interface {
	// Add persists a new delivery state.
	Add(ctx context.Context, aggregate *delivery.DeliveryState) error

	// Update persists changes to an existing delivery state.
	Update(ctx context.Context, aggregate *delivery.DeliveryState) error

	// Get retrieves a delivery state by order identifier.
	Get(ctx context.Context, orderID kernel.UUID) (*delivery.DeliveryState, error)

	// GetAllInTrialWait retrieves every delivery currently waiting in a
	// trial window. Used by the trial timeout sweeper.
	GetAllInTrialWait(ctx context.Context) ([]*delivery.DeliveryState, error)
}
