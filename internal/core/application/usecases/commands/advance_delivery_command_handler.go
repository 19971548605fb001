package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
)

// ErrStatusTransitionNotAllowed is returned when the requested move is not
// legal from the delivery's current status. The handler still returns the
// delivery state so callers can report the authoritative current status.
var ErrStatusTransitionNotAllowed = errors.New("status transition not allowed")

// AdvanceDeliveryCommandHandler moves deliveries through their lifecycle
// and keeps the dispatch ledger in step:
//
//   - advancing to picked_up confirms the reserved courier as busy
//   - reaching a terminal status releases the courier back to the pool,
//     exactly once per assignment
//
// Ledger updates happen after the transaction commits, so a failed commit
// never leaves the in-memory courier state ahead of the database.
type AdvanceDeliveryCommandHandler struct {
	uowFactory UoWFactory
	ledger     CourierLedger
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery progression.
func NewAdvanceDeliveryCommandHandler(uowFactory UoWFactory, ledger CourierLedger) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle processes the advance command.
// On ErrStatusTransitionNotAllowed the returned state is still valid and
// carries the delivery's authoritative current status.
func (h AdvanceDeliveryCommandHandler) Handle(
	ctx context.Context, command AdvanceDeliveryCommand,
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

	assignment, err := uow.AssignmentRepository().GetLiveByOrderID(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = state.Advance(command.Target(), now); err != nil {
		return state, errors.Join(ErrStatusTransitionNotAllowed, err)
	}

	releaseCourier := false
	if command.Target().IsTerminal() {
		releaseCourier = state.MarkCourierReleased()
	}

	if err = deliveryRepo.Update(ctx, state); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if command.Target() == delivery.PickedUp {
		if err = h.ledger.ConfirmBusy(assignment.CourierID()); err != nil {
			return state, err
		}
	}

	if releaseCourier {
		if err = h.ledger.Release(assignment.CourierID()); err != nil {
			return state, err
		}
	}

	return state, nil
}
