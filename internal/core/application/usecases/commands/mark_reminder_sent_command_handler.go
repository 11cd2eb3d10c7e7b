package commands

import (
	"context"
)

// MarkReminderSentCommandHandler acknowledges a manual bag reminder.
type MarkReminderSentCommandHandler struct {
	uowFactory LogUoWFactory
}

// NewMarkReminderSentCommandHandler creates a handler for reminder
// acknowledgement.
func NewMarkReminderSentCommandHandler(uowFactory LogUoWFactory) MarkReminderSentCommandHandler {
	return MarkReminderSentCommandHandler{uowFactory: uowFactory}
}

// Handle marks the entry's reminder as sent.
func (h MarkReminderSentCommandHandler) Handle(ctx context.Context, command MarkReminderSentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	logRepo := uow.DeliveryLogRepository()
	entry, err := logRepo.Get(ctx, command.LogEntryID())
	if err != nil {
		return err
	}

	entry.SetReminderSent(true)
	if err = logRepo.Update(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
