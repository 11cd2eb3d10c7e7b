package commands

import (
	"errors"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var ErrMarkReminderSentCommandIsNotConstructed = errors.New(
	"MarkReminderSentCommand must be created via NewMarkReminderSentCommand constructor",
)

// MarkReminderSentCommand records that a bag-return reminder was manually
// sent for one delivery-log entry. Nothing is dispatched by this system; the
// flag keeps the outstanding-bags view honest.
type MarkReminderSentCommand struct {
	logEntryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReminderSentCommand creates a command to acknowledge a reminder.
func NewMarkReminderSentCommand(logEntryID kernel.UUID) (MarkReminderSentCommand, error) {
	if err := logEntryID.Validate(); err != nil {
		return MarkReminderSentCommand{}, err
	}
	return MarkReminderSentCommand{
		logEntryID: logEntryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReminderSentCommand) Validate() error {
	return c.guard.Validate(ErrMarkReminderSentCommandIsNotConstructed)
}

// LogEntryID identifies the entry being acknowledged.
func (c MarkReminderSentCommand) LogEntryID() kernel.UUID {
	return c.logEntryID
}
