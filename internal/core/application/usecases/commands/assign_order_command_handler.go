package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderAlreadyAssigned is returned when the order already has a live
	// assignment that has not been cancelled.
	ErrOrderAlreadyAssigned = errors.New("order already assigned")
	// ErrNoStoreAvailable is returned when no store can serve the order.
	ErrNoStoreAvailable = errors.New("no store available")
	// ErrNoCourierAvailable is returned when every courier in the store's
	// zone is taken or off shift.
	ErrNoCourierAvailable = errors.New("no courier available")
)

// AssignOrderResult describes a successful dispatch: the assignment made,
// the reserved courier and the store the courier picks up from.
type AssignOrderResult struct {
	Assignment *delivery.Assignment
	Courier    *fleet.Courier
	Store      *fleet.Store
}

// AssignOrderCommandHandler orchestrates the dispatch of a single order.
//
// The flow: find the nearest store to the customer, reserve the best
// available courier in the store's zone through the dispatch ledger,
// compute the promised delivery window and persist the assignment with
// the new delivery lifecycle in one transaction.
//
// Repeated requests for the same order are idempotent conflicts: as long
// as the order's assignment is live and not cancelled, the handler
// returns ErrOrderAlreadyAssigned instead of double-booking a second
// courier. A cancelled order may be re-dispatched; its old assignment is
// superseded by the new one.
//
// The courier reservation happens in memory before the transaction
// commits. If anything after the reservation fails, the reservation is
// released so the courier is not leaked.
type AssignOrderCommandHandler struct {
	uowFactory    UoWFactory
	storeCatalog  ports.StoreCatalog
	ledger        CourierLedger
	geoIndex      services.GeoIndex
	etaCalculator services.ETACalculator
}

// NewAssignOrderCommandHandler creates a handler for order dispatch.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	storeCatalog ports.StoreCatalog,
	ledger CourierLedger,
	geoIndex services.GeoIndex,
	etaCalculator services.ETACalculator,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory:    uowFactory,
		storeCatalog:  storeCatalog,
		ledger:        ledger,
		geoIndex:      geoIndex,
		etaCalculator: etaCalculator,
	}
}

// Handle processes the dispatch command.
// Returns ErrOrderAlreadyAssigned, ErrNoStoreAvailable or
// ErrNoCourierAvailable for the recoverable outcomes; any other error is
// a validation or infrastructure failure.
func (h AssignOrderCommandHandler) Handle(
	ctx context.Context, command AssignOrderCommand,
) (AssignOrderResult, error) {
	if err := command.Validate(); err != nil {
		return AssignOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	deliveryRepo := uow.DeliveryRepository()

	prior, state, err := h.checkExisting(ctx, assignmentRepo, deliveryRepo, command.OrderID())
	if err != nil {
		return AssignOrderResult{}, err
	}

	store, err := h.findStore(ctx, command.UserLocation())
	if err != nil {
		return AssignOrderResult{}, err
	}

	courier, err := h.reserveCourier(store.Zone())
	if err != nil {
		return AssignOrderResult{}, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = h.ledger.Release(courier.ID())
		}
	}()

	window, err := h.etaCalculator.Window(command.UserZone(), store.Zone(), command.ServiceMode())
	if err != nil {
		return AssignOrderResult{}, err
	}

	now := time.Now().UTC()
	assignment, err := delivery.NewAssignment(
		command.OrderID(), courier.ID(), store.ID(), command.ServiceMode(), window, now)
	if err != nil {
		return AssignOrderResult{}, err
	}

	if prior != nil {
		err = h.reassign(ctx, assignmentRepo, deliveryRepo, prior, state, assignment, now)
	} else {
		err = h.assign(ctx, assignmentRepo, deliveryRepo, command, assignment, now)
	}
	if err != nil {
		return AssignOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrderResult{}, err
	}

	committed = true
	return AssignOrderResult{Assignment: assignment, Courier: courier, Store: store}, nil
}

// checkExisting enforces the one-live-assignment rule. An order with a
// live assignment can only be re-dispatched once its delivery was
// cancelled; in that case the old assignment and the delivery state are
// returned so the caller can supersede them.
func (h AssignOrderCommandHandler) checkExisting(
	ctx context.Context,
	assignmentRepo ports.AssignmentRepository,
	deliveryRepo ports.DeliveryRepository,
	orderID kernel.UUID,
) (*delivery.Assignment, *delivery.DeliveryState, error) {
	prior, err := assignmentRepo.GetLiveByOrderID(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	state, err := deliveryRepo.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if state.CurrentStatus() != delivery.Cancelled {
		return nil, nil, ErrOrderAlreadyAssigned
	}

	return prior, state, nil
}

func (h AssignOrderCommandHandler) findStore(
	ctx context.Context, userLocation kernel.GeoPoint,
) (*fleet.Store, error) {
	stores, err := h.storeCatalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	store, err := h.geoIndex.NearestStore(userLocation, stores)
	if errors.Is(err, services.ErrStoreNotFound) {
		return nil, ErrNoStoreAvailable
	}
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (h AssignOrderCommandHandler) reserveCourier(zone kernel.Zone) (*fleet.Courier, error) {
	candidates, err := h.geoIndex.AvailableCouriersInZone(zone, h.ledger.Snapshot())
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]kernel.UUID, 0, len(candidates))
	for _, c := range candidates {
		candidateIDs = append(candidateIDs, c.ID())
	}

	courier, err := h.ledger.ReserveAny(candidateIDs)
	if errors.Is(err, services.ErrNoCouriersAvailable) {
		return nil, ErrNoCourierAvailable
	}
	if err != nil {
		return nil, err
	}

	return courier, nil
}

func (h AssignOrderCommandHandler) assign(
	ctx context.Context,
	assignmentRepo ports.AssignmentRepository,
	deliveryRepo ports.DeliveryRepository,
	command AssignOrderCommand,
	assignment *delivery.Assignment,
	now time.Time,
) error {
	if err := assignmentRepo.Add(ctx, assignment); err != nil {
		return err
	}

	state, err := delivery.NewDeliveryState(command.OrderID(), command.ServiceMode(), now)
	if err != nil {
		return err
	}

	return deliveryRepo.Add(ctx, state)
}

func (h AssignOrderCommandHandler) reassign(
	ctx context.Context,
	assignmentRepo ports.AssignmentRepository,
	deliveryRepo ports.DeliveryRepository,
	prior *delivery.Assignment,
	state *delivery.DeliveryState,
	assignment *delivery.Assignment,
	now time.Time,
) error {
	if err := prior.Supersede(assignment.ID()); err != nil {
		return err
	}

	if err := assignmentRepo.Update(ctx, prior); err != nil {
		return err
	}

	if err := assignmentRepo.Add(ctx, assignment); err != nil {
		return err
	}

	if err := state.Reassign(now); err != nil {
		return err
	}

	return deliveryRepo.Update(ctx, state)
}
