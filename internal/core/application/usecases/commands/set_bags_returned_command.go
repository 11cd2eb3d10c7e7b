package commands

import (
	"errors"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var ErrSetBagsReturnedCommandIsNotConstructed = errors.New(
	"SetBagsReturnedCommand must be created via NewSetBagsReturnedCommand constructor",
)

// SetBagsReturnedCommand toggles the bags-returned flag on one delivery-log
// entry, post hoc. Clients settle bag deposits after the fact, so this is
// the one mutation a log entry allows besides the reminder acknowledgement.
type SetBagsReturnedCommand struct {
	logEntryID kernel.UUID
	returned   bool

	guard guard.ConstructorGuard
}

// NewSetBagsReturnedCommand creates a command to toggle a log entry's
// bags-returned flag.
func NewSetBagsReturnedCommand(logEntryID kernel.UUID, returned bool) (SetBagsReturnedCommand, error) {
	if err := logEntryID.Validate(); err != nil {
		return SetBagsReturnedCommand{}, err
	}
	return SetBagsReturnedCommand{
		logEntryID: logEntryID,
		returned:   returned,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetBagsReturnedCommand) Validate() error {
	return c.guard.Validate(ErrSetBagsReturnedCommandIsNotConstructed)
}

// LogEntryID identifies the entry being toggled.
func (c SetBagsReturnedCommand) LogEntryID() kernel.UUID {
	return c.logEntryID
}

// Returned is the new flag value.
func (c SetBagsReturnedCommand) Returned() bool {
	return c.returned
}
