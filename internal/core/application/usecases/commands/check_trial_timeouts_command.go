package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrCheckTrialTimeoutsCommandIsNotConstructed = errors.New(
	"CheckTrialTimeoutsCommand must be created via NewCheckTrialTimeoutsCommand constructor",
)

// CheckTrialTimeoutsCommand sweeps every delivery waiting in a home trial
// and expires the ones whose window has run out. Triggered periodically
// by the trial timeout job.
type CheckTrialTimeoutsCommand struct {
	guard guard.ConstructorGuard
}

// NewCheckTrialTimeoutsCommand creates a command to sweep expired trials.
// This is a parameterless command that initiates the sweep.
func NewCheckTrialTimeoutsCommand() CheckTrialTimeoutsCommand {
	return CheckTrialTimeoutsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckTrialTimeoutsCommandIsNotConstructed if validation fails.
func (c *CheckTrialTimeoutsCommand) Validate() error {
	return c.guard.Validate(
		ErrCheckTrialTimeoutsCommandIsNotConstructed,
	)
}
