package commands

import (
	"context"
)

// CompleteAllDishesCommandHandler closes the production cycle wholesale.
type CompleteAllDishesCommandHandler struct {
	uowFactory KitchenUoWFactory
}

// NewCompleteAllDishesCommandHandler creates a handler for closing the
// production cycle.
func NewCompleteAllDishesCommandHandler(uowFactory KitchenUoWFactory) CompleteAllDishesCommandHandler {
	return CompleteAllDishesCommandHandler{uowFactory: uowFactory}
}

// Handle flags every pending dish, transitions the satisfied orders, and
// resets the completion list so the next cycle starts clean.
func (h CompleteAllDishesCommandHandler) Handle(ctx context.Context, command CompleteAllDishesCommand) error {
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

	board, readyKeys, _, err := rebuildBoard(ctx, uow)
	if err != nil {
		return err
	}
	readyKeys = append(readyKeys, board.CompleteAll()...)

	if err = transitionReady(ctx, uow, readyKeys); err != nil {
		return err
	}

	if err = uow.ProductionRepository().SaveCompletedDishes(ctx, nil); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
