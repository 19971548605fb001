// Package assignmentrepo provides data transfer objects and mapping functions
// for assignment persistence. This package implements the repository pattern
// for the assignment aggregate, handling the conversion between domain
// entities and database representations.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
// The partial unique index on order_id enforces the one-live-assignment rule
// at the storage level: superseded rows stay behind as the audit trail while
// at most one row per order has superseded_by unset.
type AssignmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_assignments_live_order,where:superseded_by IS NULL"`
	CourierID      uuid.UUID  `gorm:"type:uuid;index"`
	StoreID        uuid.UUID  `gorm:"type:uuid"`
	ServiceMode    string     `gorm:"type:varchar(20)"`
	ETALowMinutes  int        `gorm:"column:eta_low_minutes"`
	ETAHighMinutes int        `gorm:"column:eta_high_minutes"`
	CreatedAt      time.Time  `gorm:"index"`
	SupersededBy   *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for assignments.
// Overrides GORM's default naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment aggregate to its database representation.
func fromDomain(assignment *delivery.Assignment) AssignmentDTO {
	var supersededBy *uuid.UUID
	if id := assignment.SupersededBy(); id != nil {
		raw := id.Bytes()
		supersededBy = &raw
	}

	return AssignmentDTO{
		ID:             assignment.ID().Bytes(),
		OrderID:        assignment.OrderID().Bytes(),
		CourierID:      assignment.CourierID().Bytes(),
		StoreID:        assignment.StoreID().Bytes(),
		ServiceMode:    assignment.ServiceMode().String(),
		ETALowMinutes:  assignment.ETAWindow().LowMinutes(),
		ETAHighMinutes: assignment.ETAWindow().HighMinutes(),
		CreatedAt:      assignment.CreatedAt(),
		SupersededBy:   supersededBy,
	}
}

// toDomain converts a database DTO to an assignment aggregate using
// RestoreAssignment.
func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	mode, err := delivery.ServiceModeFromString(dto.ServiceMode)
	if err != nil {
		return nil, err
	}

	window, err := delivery.NewETAWindow(dto.ETALowMinutes, dto.ETAHighMinutes)
	if err != nil {
		return nil, err
	}

	var supersededBy *kernel.UUID
	if dto.SupersededBy != nil {
		sID, supersededErr := kernel.UUIDFromBytes((*dto.SupersededBy)[:])
		if supersededErr != nil {
			return nil, supersededErr
		}

		supersededBy = &sID
	}

	return delivery.RestoreAssignment(
		id, orderID, courierID, storeID, mode, window, dto.CreatedAt, supersededBy)
}
