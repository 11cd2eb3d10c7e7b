package commands

import (
	"errors"

	"mealroute/internal/pkg/guard"
)

var ErrCompleteAllDishesCommandIsNotConstructed = errors.New(
	"CompleteAllDishesCommand must be created via NewCompleteAllDishesCommand constructor",
)

// CompleteAllDishesCommand closes the current production cycle: every
// pending dish is flagged cooked, every MenuApproved order transitions to
// ReadyForDelivery, and the cycle's completion list resets.
type CompleteAllDishesCommand struct {
	guard guard.ConstructorGuard
}

// NewCompleteAllDishesCommand creates a command to close the production
// cycle.
func NewCompleteAllDishesCommand() (CompleteAllDishesCommand, error) {
	return CompleteAllDishesCommand{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteAllDishesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteAllDishesCommandIsNotConstructed)
}
