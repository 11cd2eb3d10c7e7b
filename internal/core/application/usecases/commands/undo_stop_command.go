package commands

import (
	"errors"
	"time"

	"mealroute/internal/pkg/guard"
)

var ErrUndoStopCommandIsNotConstructed = errors.New(
	"UndoStopCommand must be created via NewUndoStopCommand constructor",
)

// UndoStopCommand reverses the most recently completed stop of one order.
// Undo is strictly last-in-first-out; the matching delivery-log entry is
// removed rather than amended.
type UndoStopCommand struct {
	clientName string
	date       time.Time

	guard guard.ConstructorGuard
}

// NewUndoStopCommand creates a command to undo an order's latest stop.
func NewUndoStopCommand(clientName string, date time.Time) (UndoStopCommand, error) {
	cmd := UndoStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientName(clientName),
		cmd.setDate(date),
	); err != nil {
		return UndoStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UndoStopCommand) Validate() error {
	return c.guard.Validate(ErrUndoStopCommandIsNotConstructed)
}

// ClientName returns the client whose stop is being undone.
func (c UndoStopCommand) ClientName() string {
	return c.clientName
}

// Date returns the delivery date of the order.
func (c UndoStopCommand) Date() time.Time {
	return c.date
}

func (c *UndoStopCommand) setClientName(clientName string) error {
	if clientName == "" {
		return ErrClientNameIsRequired
	}
	c.clientName = clientName
	return nil
}

func (c *UndoStopCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	c.date = date
	return nil
}
