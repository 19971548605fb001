package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrEndTrialCommandIsNotConstructed = errors.New(
	"EndTrialCommand must be created via NewEndTrialCommand constructor",
)

// EndTrialCommand closes a home trial window early, before its deadline,
// on the customer's word. The courier heads back in transit with any
// returned items.
type EndTrialCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEndTrialCommand creates a validated command to end a trial early.
func NewEndTrialCommand(orderID kernel.UUID) (EndTrialCommand, error) {
	if err := orderID.Validate(); err != nil {
		return EndTrialCommand{}, err
	}

	return EndTrialCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose trial ends.
func (c *EndTrialCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
// Returns ErrEndTrialCommandIsNotConstructed if validation fails.
func (c *EndTrialCommand) Validate() error {
	return c.guard.Validate(
		ErrEndTrialCommandIsNotConstructed,
	)
}
