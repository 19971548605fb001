package deliveryrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery state with its history to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.DeliveryState) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, history := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update saves an existing delivery state to the database. The history is
// rewritten from the aggregate so the persisted timeline always matches
// it; within the unit of work transaction the swap is atomic.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.DeliveryState) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, history := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.OrderID).
		Delete(&DeliveryHistoryDTO{}).Error
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&history).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Get retrieves a delivery state by order ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, orderID kernel.UUID) (*delivery.DeliveryState, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	history, err := r.loadHistory(ctx, dto)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, history)
}

// GetAllInTrialWait retrieves every delivery whose latest status is
// trial_wait. Used by the trial timeout sweeper.
func (r *GormDeliveryRepository) GetAllInTrialWait(ctx context.Context) ([]*delivery.DeliveryState, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where(`(
			SELECT h.status
			FROM delivery_history h
			WHERE h.order_id = deliveries.order_id
			ORDER BY h.id DESC
			LIMIT 1
		) = ?`, delivery.TrialWait.String()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	states := make([]*delivery.DeliveryState, 0, len(dtos))
	for _, dto := range dtos {
		history, historyErr := r.loadHistory(ctx, dto)
		if historyErr != nil {
			return nil, historyErr
		}

		state, stateErr := toDomain(dto, history)
		if stateErr != nil {
			return nil, stateErr
		}
		states = append(states, state)
	}

	return states, nil
}

func (r *GormDeliveryRepository) loadHistory(ctx context.Context, dto DeliveryDTO) ([]DeliveryHistoryDTO, error) {
	var history []DeliveryHistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.OrderID).
		Order("id").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
