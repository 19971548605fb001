// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetTrackingQueryIsNotConstructed = errors.New(
		"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
	)
)

// GetTrackingQuery retrieves the customer-facing tracking view of an
// order: current status with progress, the promised window, the serving
// courier and store ids, and the full status history.
//
// Example:
//
//	query, err := NewGetTrackingQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	tracking, err := handler.Handle(ctx, query)
type GetTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for an order's tracking view.
func NewGetTrackingQuery(orderID kernel.UUID) (GetTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being tracked.
func (q GetTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingQueryIsNotConstructed if validation fails.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// TrackingHistoryItem is one entry of the status history in the read model.
type TrackingHistoryItem struct {
	Status    string
	EnteredAt time.Time
	Auto      bool
}

// GetTrackingQueryResponse is the tracking read model for one order.
type GetTrackingQueryResponse struct {
	OrderID         kernel.UUID
	ServiceMode     string
	Status          string
	ProgressPercent int
	ETALowMinutes   int
	ETAHighMinutes  int
	CourierID       kernel.UUID
	StoreID         kernel.UUID
	TrialDeadline   *time.Time
	History         []TrackingHistoryItem
}
