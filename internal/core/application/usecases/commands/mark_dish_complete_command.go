package commands

import (
	"errors"

	"mealroute/internal/pkg/guard"
)

var (
	ErrMarkDishCompleteCommandIsNotConstructed = errors.New(
		"MarkDishCompleteCommand must be created via NewMarkDishCompleteCommand constructor",
	)
	ErrDishNameIsRequired = errors.New("dish name is required")
)

// MarkDishCompleteCommand flags one dish name as cooked for the current
// production cycle. Completion is shared: every approved order referencing
// the name advances at once.
type MarkDishCompleteCommand struct {
	dishName string

	guard guard.ConstructorGuard
}

// NewMarkDishCompleteCommand creates a command to mark a dish complete.
func NewMarkDishCompleteCommand(dishName string) (MarkDishCompleteCommand, error) {
	if dishName == "" {
		return MarkDishCompleteCommand{}, ErrDishNameIsRequired
	}
	return MarkDishCompleteCommand{
		dishName: dishName,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDishCompleteCommand) Validate() error {
	return c.guard.Validate(ErrMarkDishCompleteCommandIsNotConstructed)
}

// DishName returns the dish being marked complete.
func (c MarkDishCompleteCommand) DishName() string {
	return c.dishName
}
