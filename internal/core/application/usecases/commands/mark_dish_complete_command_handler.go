package commands

import (
	"context"
	"strings"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
)

// MarkDishCompleteCommandHandler flags one dish as cooked and transitions
// every MenuApproved order whose dishes are now all complete to
// ReadyForDelivery.
//
// The completion board is rebuilt inside the workspace on every call: the
// MenuApproved orders are registered, the cycle's saved completions are
// replayed, then the new dish is applied. Replay also transitions any order
// a previous flag already satisfied, so an order approved after its dishes
// were cooked catches up on the next completion.
type MarkDishCompleteCommandHandler struct {
	uowFactory KitchenUoWFactory
}

// NewMarkDishCompleteCommandHandler creates a handler for dish completion.
func NewMarkDishCompleteCommandHandler(uowFactory KitchenUoWFactory) MarkDishCompleteCommandHandler {
	return MarkDishCompleteCommandHandler{uowFactory: uowFactory}
}

// Handle marks the dish complete. Unknown dish names are rejected without
// touching the cycle state.
func (h MarkDishCompleteCommandHandler) Handle(ctx context.Context, command MarkDishCompleteCommand) error {
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

	board, readyKeys, completed, err := rebuildBoard(ctx, uow)
	if err != nil {
		return err
	}

	newlyReady, err := board.MarkComplete(command.DishName())
	if err != nil {
		return err
	}
	readyKeys = append(readyKeys, newlyReady...)

	if err = transitionReady(ctx, uow, readyKeys); err != nil {
		return err
	}

	if !containsFold(completed, command.DishName()) {
		completed = append(completed, command.DishName())
	}
	if err = uow.ProductionRepository().SaveCompletedDishes(ctx, completed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// rebuildBoard reconstructs the production board from the MenuApproved
// orders and replays the cycle's saved completions. It returns the board,
// the keys of orders the replay already satisfied, and the saved completion
// list.
func rebuildBoard(ctx context.Context, uow KitchenUoW) (*services.DishCompletionBoard, []string, []string, error) {
	approved, err := uow.OrderRepository().GetAllInStatus(ctx, order.MenuApproved)
	if err != nil {
		return nil, nil, nil, err
	}

	board := services.NewDishCompletionBoard()
	for _, o := range approved {
		if err = board.Register(o); err != nil {
			return nil, nil, nil, err
		}
	}

	completed, err := uow.ProductionRepository().GetCompletedDishes(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	readyKeys := make([]string, 0)
	for _, name := range completed {
		// A saved completion may reference a dish no current order uses;
		// that is normal once its orders moved on, so skip quietly.
		ready, markErr := board.MarkComplete(name)
		if markErr != nil {
			continue
		}
		readyKeys = append(readyKeys, ready...)
	}
	return board, readyKeys, completed, nil
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// transitionReady moves each listed order to ReadyForDelivery.
func transitionReady(ctx context.Context, uow OrderRepoFactory, readyKeys []string) error {
	orderRepo := uow.OrderRepository()
	for _, key := range readyKeys {
		aggregate, err := orderRepo.Get(ctx, key)
		if err != nil {
			return err
		}
		if err = aggregate.MarkReady(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}
	return nil
}
