package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
)

// EndTrialCommandHandler ends home trial windows on customer request.
// Only a delivery currently waiting in a trial can be ended this way;
// anything else fails with delivery.ErrDeliveryIsNotInTrial.
type EndTrialCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewEndTrialCommandHandler creates a handler for early trial endings.
func NewEndTrialCommandHandler(uowFactory DeliveryUoWFactory) EndTrialCommandHandler {
	return EndTrialCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the end trial command and returns the updated state.
func (h EndTrialCommandHandler) Handle(
	ctx context.Context, command EndTrialCommand,
) (*delivery.DeliveryState, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	state, err := deliveryRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = state.EndTrial(time.Now().UTC()); err != nil {
		return state, err
	}

	if err = deliveryRepo.Update(ctx, state); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return state, nil
}
