package commands

import (
	"context"
)

// SetBagsReturnedCommandHandler toggles a log entry's bags-returned flag.
type SetBagsReturnedCommandHandler struct {
	uowFactory LogUoWFactory
}

// NewSetBagsReturnedCommandHandler creates a handler for bag settlement.
func NewSetBagsReturnedCommandHandler(uowFactory LogUoWFactory) SetBagsReturnedCommandHandler {
	return SetBagsReturnedCommandHandler{uowFactory: uowFactory}
}

// Handle sets the flag on the entry.
func (h SetBagsReturnedCommandHandler) Handle(ctx context.Context, command SetBagsReturnedCommand) error {
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

	entry.SetBagsReturned(command.Returned())
	if err = logRepo.Update(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
