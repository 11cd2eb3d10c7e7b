package commands

import (
	"context"
	"errors"
	"time"

	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

// CompleteStopCommandHandler records one completed stop in a single
// workspace: the log entry append, the order's stop completion, and - when
// this was the final stop - the move to history land or fail together.
type CompleteStopCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      func() time.Time
}

// NewCompleteStopCommandHandler creates a handler for stop completion.
func NewCompleteStopCommandHandler(uowFactory DeliveryUoWFactory) CompleteStopCommandHandler {
	return CompleteStopCommandHandler{uowFactory: uowFactory, clock: time.Now}
}

// Handle completes the stop. The log entry is constructed first so its
// guards (porch photo evidence, problem notes) reject before anything
// mutates. Completion is idempotent per (client, date): repeating a stop
// that is already recorded, or re-invoking completion after the order was
// delivered and archived, succeeds without mutating anything.
func (h CompleteStopCommandHandler) Handle(ctx context.Context, command CompleteStopCommand) error {
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

	key := order.Key(command.ClientName(), command.Date())
	aggregate, err := uow.OrderRepository().Get(ctx, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		delivered, historyErr := h.deliveredInHistory(ctx, uow, command.ClientName(), key)
		if historyErr != nil {
			return historyErr
		}
		if delivered {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}
	c, err := uow.ClientRepository().GetByName(ctx, command.ClientName())
	if err != nil {
		return err
	}

	now := h.clock()
	entry, err := delivery.NewLogEntry(
		kernel.NewUUID(),
		command.Date(),
		aggregate.ClientName(),
		command.ContactLabel(),
		c.Zone(),
		command.DriverName(),
		now,
		command.HandoffType(),
		command.PhotoRef(),
		command.BagsReturned(),
		command.ProblemCode(),
		command.Note(),
	)
	if err != nil {
		return err
	}

	delivered, err := aggregate.CompleteStop(command.ContactLabel(), entry.ID(), now)
	if errors.Is(err, order.ErrStopAlreadyCompleted) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = uow.DeliveryLogRepository().Append(ctx, entry); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if delivered {
		if err = uow.OrderRepository().Archive(ctx, aggregate.Key()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// deliveredInHistory reports whether the key identifies an order that was
// already delivered and moved to the history pool.
func (h CompleteStopCommandHandler) deliveredInHistory(ctx context.Context, uow DeliveryUoW, clientName, key string) (bool, error) {
	past, err := uow.OrderRepository().GetHistoryForClient(ctx, clientName)
	if err != nil {
		return false, err
	}
	for _, o := range past {
		if o.Key() == key && o.IsDelivered() {
			return true, nil
		}
	}
	return false, nil
}
