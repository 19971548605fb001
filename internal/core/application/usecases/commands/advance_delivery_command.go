package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand moves an order's delivery to the target status.
// Legal moves are one step forward along the order's happy path, or
// cancellation from any non-terminal status.
type AdvanceDeliveryCommand struct {
	orderID kernel.UUID
	target  delivery.Status

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a validated command to advance a delivery.
func NewAdvanceDeliveryCommand(orderID kernel.UUID, target delivery.Status) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return AdvanceDeliveryCommand{
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose delivery advances.
func (c *AdvanceDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the delivery should move to.
func (c *AdvanceDeliveryCommand) Target() delivery.Status {
	return c.target
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceDeliveryCommandIsNotConstructed if validation fails.
func (c *AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(
		ErrAdvanceDeliveryCommandIsNotConstructed,
	)
}
