package commands

import (
	"context"
	"errors"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

// UndoStopCommandHandler reverses an order's most recent stop completion.
// If the order had already moved to history it is pulled back first, so a
// fully delivered order can still be corrected.
type UndoStopCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUndoStopCommandHandler creates a handler for stop undo.
func NewUndoStopCommandHandler(uowFactory DeliveryUoWFactory) UndoStopCommandHandler {
	return UndoStopCommandHandler{uowFactory: uowFactory}
}

// Handle undoes the latest stop: the order drops its last completion (and
// reopens if it was Delivered) and the matching log entry is removed.
func (h UndoStopCommandHandler) Handle(ctx context.Context, command UndoStopCommand) error {
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

	orderRepo := uow.OrderRepository()
	key := order.Key(command.ClientName(), command.Date())

	aggregate, err := orderRepo.Get(ctx, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// Delivered orders live in history; pull the order back before
		// touching it.
		if err = orderRepo.Unarchive(ctx, key); err != nil {
			return err
		}
		aggregate, err = orderRepo.Get(ctx, key)
	}
	if err != nil {
		return err
	}

	last, ok := aggregate.LastCompletion()
	if !ok {
		return order.ErrNoCompletedStops
	}

	if err = aggregate.UndoStop(last.LogEntryID); err != nil {
		return err
	}
	if err = uow.DeliveryLogRepository().Remove(ctx, last.LogEntryID); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
