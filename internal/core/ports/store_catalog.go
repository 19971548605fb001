package ports

import (
	"context"

	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
)

// StoreCatalog provides read access to the partner store directory.
// Stores are reference data: the catalog is loaded once at startup and
// queried on every dispatch.
type StoreCatalog interface {
	// GetAll returns every store in the catalog.
	GetAll(ctx context.Context) ([]*fleet.Store, error)

	// Get retrieves a store by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*fleet.Store, error)
}
