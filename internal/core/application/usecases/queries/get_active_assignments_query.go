package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetActiveAssignmentsQueryIsNotConstructed = errors.New(
		"GetActiveAssignmentsQuery must be created via NewGetActiveAssignmentsQuery constructor",
	)
)

// GetActiveAssignmentsQuery retrieves every live assignment with the
// current status of its delivery. Feeds the dispatch board.
//
// Example:
//
//	query := NewGetActiveAssignmentsQuery()
//	board, err := handler.Handle(ctx, query)
type GetActiveAssignmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveAssignmentsQuery creates a query for the dispatch board.
// This is a parameterless query that fetches all live assignments.
func NewGetActiveAssignmentsQuery() GetActiveAssignmentsQuery {
	return GetActiveAssignmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveAssignmentsQueryIsNotConstructed if validation fails.
func (q GetActiveAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveAssignmentsQueryIsNotConstructed)
}

// GetActiveAssignmentsQueryResponse is one dispatch board row.
type GetActiveAssignmentsQueryResponse struct {
	AssignmentID   kernel.UUID
	OrderID        kernel.UUID
	CourierID      kernel.UUID
	StoreID        kernel.UUID
	ServiceMode    string
	Status         string
	ETALowMinutes  int
	ETAHighMinutes int
	CreatedAt      time.Time
}
