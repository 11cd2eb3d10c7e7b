package commands

import (
	"context"
	"errors"
	"time"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
	"mealroute/internal/core/domain/services"
)

// ErrNoRoutableStops is returned when saving a route whose zone has no stop
// with an order in a routable status for the date.
var ErrNoRoutableStops = errors.New("no routable stops to save for this zone and date")

// SaveRouteCommandHandler freezes a zone's current routable stop sequence
// into a snapshot.
type SaveRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	planner    services.StopPlanner
	clock      func() time.Time
}

// NewSaveRouteCommandHandler creates a handler for route saving.
func NewSaveRouteCommandHandler(uowFactory RouteUoWFactory) SaveRouteCommandHandler {
	return SaveRouteCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewStopPlanner(),
		clock:      time.Now,
	}
}

// Handle rebuilds the zone's stops, applies the saved manual order, filters
// to routable stops, and persists the frozen snapshot. A zone with nothing
// routable refuses without mutating anything.
func (h SaveRouteCommandHandler) Handle(ctx context.Context, command SaveRouteCommand) error {
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

	clients, err := uow.ClientRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	orders, err := uow.OrderRepository().GetAllForDate(ctx, command.Date())
	if err != nil {
		return err
	}
	ordersByKey := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		ordersByKey[o.Key()] = o
	}

	stops, err := h.planner.BuildStops(command.Zone(), command.Date(), clients, ordersByKey)
	if err != nil {
		return err
	}

	key := route.SnapshotKey(command.Date(), command.Zone())
	savedOrder, err := uow.RouteRepository().GetStopOrder(ctx, key)
	if err != nil {
		return err
	}

	ordered := h.planner.OrderedStops(stops, savedOrder)
	routable := h.planner.FilterRoutable(ordered, command.Date(), ordersByKey)
	if len(routable) == 0 {
		return ErrNoRoutableStops
	}

	snapshot, err := route.NewSnapshot(command.Date(), command.Zone(), routable, h.clock())
	if err != nil {
		return err
	}
	if err = uow.RouteRepository().SaveSnapshot(ctx, snapshot); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
