package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveAssignmentsQueryHandler reads the dispatch board from the
// database: every live assignment joined with its delivery's latest
// status, newest assignment first.
type GetActiveAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveAssignmentsQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetActiveAssignmentsQueryHandler(db *gorm.DB) GetActiveAssignmentsQueryHandler {
	return GetActiveAssignmentsQueryHandler{db: db}
}

// Handle executes the board query.
func (h GetActiveAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveAssignmentsQuery,
) ([]GetActiveAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			a.courier_id,
			a.store_id,
			a.service_mode,
			a.eta_low_minutes,
			a.eta_high_minutes,
			a.created_at,
			(
				SELECT h.status
				FROM delivery_history h
				WHERE h.order_id = a.order_id
				ORDER BY h.id DESC
				LIMIT 1
			) AS status
		FROM assignments a
		WHERE a.superseded_by IS NULL
		ORDER BY a.created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	board := make([]GetActiveAssignmentsQueryResponse, 0)
	for rows.Next() {
		var (
			row          GetActiveAssignmentsQueryResponse
			assignmentID uuid.UUID
			orderID      uuid.UUID
			courierID    uuid.UUID
			storeID      uuid.UUID
			createdAt    time.Time
		)

		err = rows.Scan(
			&assignmentID,
			&orderID,
			&courierID,
			&storeID,
			&row.ServiceMode,
			&row.ETALowMinutes,
			&row.ETAHighMinutes,
			&createdAt,
			&row.Status,
		)
		if err != nil {
			return nil, err
		}

		if row.AssignmentID, err = kernel.UUIDFromBytes(assignmentID[:]); err != nil {
			return nil, err
		}
		if row.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if row.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
			return nil, err
		}
		if row.StoreID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
			return nil, err
		}
		row.CreatedAt = createdAt

		board = append(board, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
