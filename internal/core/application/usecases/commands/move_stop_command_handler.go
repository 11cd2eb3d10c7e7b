package commands

import (
	"context"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
	"mealroute/internal/core/domain/services"
)

// MoveStopCommandHandler applies one drag-reorder step to a zone's stop
// order. The saved order is merged with the currently discovered stops
// first, so the first move and moves of stops added after a save both work
// the same as any later one.
type MoveStopCommandHandler struct {
	uowFactory RouteUoWFactory
	planner    services.StopPlanner
}

// NewMoveStopCommandHandler creates a handler for stop reordering.
func NewMoveStopCommandHandler(uowFactory RouteUoWFactory) MoveStopCommandHandler {
	return MoveStopCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewStopPlanner(),
	}
}

// Handle moves the stop and persists the full new key order wholesale.
func (h MoveStopCommandHandler) Handle(ctx context.Context, command MoveStopCommand) error {
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

	key := route.SnapshotKey(command.Date(), command.Zone())
	savedOrder, err := uow.RouteRepository().GetStopOrder(ctx, key)
	if err != nil {
		return err
	}

	discovered, err := h.discoverOrder(ctx, uow, command)
	if err != nil {
		return err
	}

	// Merge the way the display does, so stops that appeared after the
	// order was saved are movable too.
	currentOrder := h.planner.MergeKeyOrder(savedOrder, discovered)

	newOrder, err := h.planner.MoveStop(currentOrder, command.FromKey(), command.ToKey())
	if err != nil {
		return err
	}
	if err = uow.RouteRepository().SaveStopOrder(ctx, key, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// discoverOrder derives the zone's current stop-key order from scratch when
// no explicit order was persisted yet.
func (h MoveStopCommandHandler) discoverOrder(ctx context.Context, uow RouteUoW, command MoveStopCommand) ([]string, error) {
	clients, err := uow.ClientRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := uow.OrderRepository().GetAllForDate(ctx, command.Date())
	if err != nil {
		return nil, err
	}
	ordersByKey := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		ordersByKey[o.Key()] = o
	}

	stops, err := h.planner.BuildStops(command.Zone(), command.Date(), clients, ordersByKey)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(stops))
	for _, s := range stops {
		keys = append(keys, s.Key())
	}
	return keys, nil
}
