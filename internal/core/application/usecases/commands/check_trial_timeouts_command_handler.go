package commands

import (
	"context"
	"time"
)

// CheckTrialTimeoutsCommandHandler expires overdue home trial windows.
// Each run loads every delivery in trial_wait and advances the expired
// ones to in_transit as an automatic transition. Deliveries whose window
// is still open are left untouched, so the sweep is safe to run as often
// as the job schedule fires.
type CheckTrialTimeoutsCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCheckTrialTimeoutsCommandHandler creates a handler for the trial sweep.
func NewCheckTrialTimeoutsCommandHandler(uowFactory DeliveryUoWFactory) CheckTrialTimeoutsCommandHandler {
	return CheckTrialTimeoutsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep and returns how many trials were expired.
func (h CheckTrialTimeoutsCommandHandler) Handle(
	ctx context.Context, command CheckTrialTimeoutsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	states, err := deliveryRepo.GetAllInTrialWait(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	expired := 0
	for _, state := range states {
		if !state.ExpireTrial(now) {
			continue
		}

		if err = deliveryRepo.Update(ctx, state); err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
