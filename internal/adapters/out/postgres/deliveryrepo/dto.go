// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery lifecycle persistence. The delivery row carries the scalar
// state; the full status history lives in its own table, one row per status
// entered, so the tracking timeline survives restarts intact.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery state.
type DeliveryDTO struct {
	OrderID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ServiceMode     string     `gorm:"type:varchar(20)"`
	TrialDeadline   *time.Time `gorm:""`
	CourierReleased bool
}

// TableName specifies the database table name for delivery state.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryHistoryDTO is one persisted status history entry. The
// autoincrement id preserves the order statuses were entered in.
type DeliveryHistoryDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"type:varchar(20)"`
	EnteredAt time.Time
	Auto      bool
}

// TableName specifies the database table name for history entries.
func (DeliveryHistoryDTO) TableName() string {
	return "delivery_history"
}

// fromDomain converts a delivery state aggregate to its database
// representation: the delivery row plus its history rows in order.
func fromDomain(state *delivery.DeliveryState) (DeliveryDTO, []DeliveryHistoryDTO) {
	var trialDeadline *time.Time
	if deadline := state.TrialDeadline(); !deadline.IsZero() {
		trialDeadline = &deadline
	}

	dto := DeliveryDTO{
		OrderID:         state.OrderID().Bytes(),
		ServiceMode:     state.ServiceMode().String(),
		TrialDeadline:   trialDeadline,
		CourierReleased: state.CourierReleased(),
	}

	entries := state.History()
	history := make([]DeliveryHistoryDTO, 0, len(entries))
	for _, entry := range entries {
		history = append(history, DeliveryHistoryDTO{
			OrderID:   dto.OrderID,
			Status:    entry.Status.String(),
			EnteredAt: entry.EnteredAt,
			Auto:      entry.Auto,
		})
	}

	return dto, history
}

// toDomain converts database rows to a delivery state aggregate using
// RestoreDeliveryState. History rows must be ordered oldest first.
func toDomain(dto DeliveryDTO, historyDTOs []DeliveryHistoryDTO) (*delivery.DeliveryState, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	mode, err := delivery.ServiceModeFromString(dto.ServiceMode)
	if err != nil {
		return nil, err
	}

	history := make([]delivery.HistoryEntry, 0, len(historyDTOs))
	for _, row := range historyDTOs {
		status, statusErr := delivery.StatusFromString(row.Status)
		if statusErr != nil {
			return nil, statusErr
		}

		history = append(history, delivery.HistoryEntry{
			Status:    status,
			EnteredAt: row.EnteredAt,
			Auto:      row.Auto,
		})
	}

	var trialDeadline time.Time
	if dto.TrialDeadline != nil {
		trialDeadline = *dto.TrialDeadline
	}

	return delivery.RestoreDeliveryState(orderID, mode, history, trialDeadline, dto.CourierReleased)
}
