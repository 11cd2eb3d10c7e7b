package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/guard"
)

var (
	ErrPlanMenuCommandIsNotConstructed = errors.New(
		"PlanMenuCommand must be created via NewPlanMenuCommand constructor",
	)
	ErrClientNameIsRequired = errors.New("client name is required")
	ErrDateIsRequired       = errors.New("delivery date is required")
	ErrDishesAreRequired    = errors.New("at least one dish is required")
	ErrPortionsAreInvalid   = errors.New("portions must not be negative")
)

// PlanMenuCommand represents a request to plan a menu for one client and
// delivery date, creating the order that will move through the lifecycle.
// Zero portions means the client's default portion count applies.
//
// Example:
//
//	dish, _ := order.NewDish("Chicken", order.Protein)
//	cmd, err := NewPlanMenuCommand("Alice", date, []order.Dish{dish}, 0)
//	if err != nil {
//	    return fmt.Errorf("invalid menu plan: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type PlanMenuCommand struct {
	clientName string
	date       time.Time
	dishes     []order.Dish
	portions   int

	guard guard.ConstructorGuard
}

// NewPlanMenuCommand creates a command to plan a client's menu for a date.
func NewPlanMenuCommand(clientName string, date time.Time, dishes []order.Dish, portions int) (PlanMenuCommand, error) {
	cmd := PlanMenuCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientName(clientName),
		cmd.setDate(date),
		cmd.setDishes(dishes),
		cmd.setPortions(portions),
	); err != nil {
		return PlanMenuCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanMenuCommand) Validate() error {
	return c.guard.Validate(ErrPlanMenuCommandIsNotConstructed)
}

// ClientName returns the client the menu is planned for.
func (c PlanMenuCommand) ClientName() string {
	return c.clientName
}

// Date returns the target delivery date.
func (c PlanMenuCommand) Date() time.Time {
	return c.date
}

// Dishes returns the planned dishes.
func (c PlanMenuCommand) Dishes() []order.Dish {
	return c.dishes
}

// Portions returns the requested portion count, zero for the client default.
func (c PlanMenuCommand) Portions() int {
	return c.portions
}

func (c *PlanMenuCommand) setClientName(clientName string) error {
	if clientName == "" {
		return ErrClientNameIsRequired
	}
	c.clientName = clientName
	return nil
}

func (c *PlanMenuCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	c.date = date
	return nil
}

func (c *PlanMenuCommand) setDishes(dishes []order.Dish) error {
	if len(dishes) == 0 {
		return ErrDishesAreRequired
	}
	for _, d := range dishes {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	c.dishes = dishes
	return nil
}

func (c *PlanMenuCommand) setPortions(portions int) error {
	if portions < 0 {
		return ErrPortionsAreInvalid
	}
	c.portions = portions
	return nil
}
