package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests dispatch for an order: pick the nearest
// store, reserve the best available courier and promise a delivery window.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, userZone, userLocation, delivery.HomeTrial)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AssignOrderCommand struct {
	orderID      kernel.UUID
	userZone     kernel.Zone
	userLocation kernel.GeoPoint
	serviceMode  delivery.ServiceMode

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a validated command to dispatch an order.
func NewAssignOrderCommand(
	orderID kernel.UUID,
	userZone kernel.Zone,
	userLocation kernel.GeoPoint,
	serviceMode delivery.ServiceMode,
) (AssignOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userZone.Validate(),
		userLocation.Validate(),
		serviceMode.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:      orderID,
		userZone:     userZone,
		userLocation: userLocation,
		serviceMode:  serviceMode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to dispatch.
func (c *AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserZone returns the customer's delivery zone.
func (c *AssignOrderCommand) UserZone() kernel.Zone {
	return c.userZone
}

// UserLocation returns the customer's position.
func (c *AssignOrderCommand) UserLocation() kernel.GeoPoint {
	return c.userLocation
}

// ServiceMode returns the requested delivery mode.
func (c *AssignOrderCommand) ServiceMode() delivery.ServiceMode {
	return c.serviceMode
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c *AssignOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignOrderCommandIsNotConstructed,
	)
}
