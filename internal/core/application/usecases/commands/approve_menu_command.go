package commands

import (
	"errors"
	"time"

	"mealroute/internal/pkg/guard"
)

var ErrApproveMenuCommandIsNotConstructed = errors.New(
	"ApproveMenuCommand must be created via NewApproveMenuCommand constructor",
)

// ApproveMenuCommand approves a planned menu, moving the order into the
// production cycle.
type ApproveMenuCommand struct {
	clientName string
	date       time.Time

	guard guard.ConstructorGuard
}

// NewApproveMenuCommand creates a command to approve one client's menu for
// a date.
func NewApproveMenuCommand(clientName string, date time.Time) (ApproveMenuCommand, error) {
	cmd := ApproveMenuCommand{
		guard: guard.NewConstructorGuard(),
	}

	if clientName == "" {
		return ApproveMenuCommand{}, ErrClientNameIsRequired
	}
	if date.IsZero() {
		return ApproveMenuCommand{}, ErrDateIsRequired
	}
	cmd.clientName = clientName
	cmd.date = date

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveMenuCommand) Validate() error {
	return c.guard.Validate(ErrApproveMenuCommandIsNotConstructed)
}

// ClientName returns the client whose menu is approved.
func (c ApproveMenuCommand) ClientName() string {
	return c.clientName
}

// Date returns the delivery date of the approved menu.
func (c ApproveMenuCommand) Date() time.Time {
	return c.date
}
