// Package fleetstore provides the in-memory store catalog adapter.
// Stores are reference data loaded once at startup; the catalog serves
// reads without touching the database.
package fleetstore

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// InMemoryCatalog implements ports.StoreCatalog over a map.
// Safe for concurrent use.
type InMemoryCatalog struct {
	mu     sync.RWMutex
	stores map[kernel.UUID]*fleet.Store
}

// NewInMemoryCatalog creates a catalog holding the given stores.
func NewInMemoryCatalog(stores []*fleet.Store) (*InMemoryCatalog, error) {
	catalog := &InMemoryCatalog{
		stores: make(map[kernel.UUID]*fleet.Store, len(stores)),
	}

	for _, store := range stores {
		if err := store.Validate(); err != nil {
			return nil, err
		}
		catalog.stores[store.ID()] = store
	}

	return catalog, nil
}

// GetAll returns every store in the catalog.
func (c *InMemoryCatalog) GetAll(_ context.Context) ([]*fleet.Store, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stores := make([]*fleet.Store, 0, len(c.stores))
	for _, store := range c.stores {
		stores = append(stores, store)
	}
	return stores, nil
}

// Get retrieves a store by its unique identifier.
func (c *InMemoryCatalog) Get(_ context.Context, id kernel.UUID) (*fleet.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	store, ok := c.stores[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("store", id.String())
	}
	return store, nil
}
