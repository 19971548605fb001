package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler builds the tracking read model straight from
// the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern: the delivery row, its live assignment and the status
// history are read without going through the aggregates.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle executes the tracking query.
// Returns an ObjectNotFoundError when the order has never been dispatched.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	response, err := h.loadDelivery(ctx, query.OrderID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	history, err := h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	response.History = history

	if len(history) > 0 {
		current := history[len(history)-1].Status
		status, statusErr := delivery.StatusFromString(current)
		if statusErr != nil {
			return GetTrackingQueryResponse{}, statusErr
		}
		response.Status = current
		response.ProgressPercent = status.ProgressPercent()
	}

	return response, nil
}

func (h GetTrackingQueryHandler) loadDelivery(
	ctx context.Context, orderID kernel.UUID,
) (GetTrackingQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.order_id,
			d.service_mode,
			d.trial_deadline,
			a.courier_id,
			a.store_id,
			a.eta_low_minutes,
			a.eta_high_minutes
		FROM deliveries d
		JOIN assignments a ON a.order_id = d.order_id AND a.superseded_by IS NULL
		WHERE d.order_id = ?
	`, orderID.Bytes()).Row()

	var (
		response      GetTrackingQueryResponse
		rawOrderID    uuid.UUID
		rawCourierID  uuid.UUID
		rawStoreID    uuid.UUID
		trialDeadline sql.NullTime
	)

	err := row.Scan(
		&rawOrderID,
		&response.ServiceMode,
		&trialDeadline,
		&rawCourierID,
		&rawStoreID,
		&response.ETALowMinutes,
		&response.ETAHighMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	if response.OrderID, err = kernel.UUIDFromBytes(rawOrderID[:]); err != nil {
		return GetTrackingQueryResponse{}, err
	}
	if response.CourierID, err = kernel.UUIDFromBytes(rawCourierID[:]); err != nil {
		return GetTrackingQueryResponse{}, err
	}
	if response.StoreID, err = kernel.UUIDFromBytes(rawStoreID[:]); err != nil {
		return GetTrackingQueryResponse{}, err
	}
	if trialDeadline.Valid {
		deadline := trialDeadline.Time
		response.TrialDeadline = &deadline
	}

	return response, nil
}

func (h GetTrackingQueryHandler) loadHistory(
	ctx context.Context, orderID kernel.UUID,
) ([]TrackingHistoryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			entered_at,
			auto
		FROM delivery_history
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackingHistoryItem, 0)
	for rows.Next() {
		var (
			item      TrackingHistoryItem
			enteredAt time.Time
		)
		if err = rows.Scan(&item.Status, &enteredAt, &item.Auto); err != nil {
			return nil, err
		}
		item.EnteredAt = enteredAt
		history = append(history, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
