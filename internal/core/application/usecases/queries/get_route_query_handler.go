package queries

import (
	"context"
	"errors"
	"strings"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
	"mealroute/internal/core/domain/services"
)

// GetRouteQueryHandler serves the route read model from the coordinator's
// live dataset. Reads take a consistent clone, so a command committing
// concurrently never tears the response.
type GetRouteQueryHandler struct {
	coord   *sync.Coordinator
	planner services.StopPlanner
}

// NewGetRouteQueryHandler creates a handler for route retrieval.
func NewGetRouteQueryHandler(coord *sync.Coordinator) GetRouteQueryHandler {
	return GetRouteQueryHandler{
		coord:   coord,
		planner: services.NewStopPlanner(),
	}
}

// Handle builds the route: the frozen snapshot when one was saved for the
// (date, zone) key, the live plan otherwise. Stop completion flags always
// reflect the live orders, including delivered ones in history.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (GetRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteQueryResponse{}, err
	}

	ds, err := h.coord.View()
	if err != nil {
		return GetRouteQueryResponse{}, err
	}

	ordersByKey := ds.OrdersByKey()
	for _, o := range ds.History {
		if _, ok := ordersByKey[o.Key()]; !ok {
			ordersByKey[o.Key()] = o
		}
	}

	response := GetRouteQueryResponse{
		Date: query.Date(),
		Zone: query.Zone().Name(),
	}

	key := route.SnapshotKey(query.Date(), query.Zone())
	if snapshot, ok := ds.Snapshots[key]; ok {
		response.FromSnapshot = true
		response.Stops = snapshotStops(snapshot, query, ordersByKey)
	} else {
		response.Stops, err = h.liveStops(ds, query, ordersByKey)
		if err != nil {
			return GetRouteQueryResponse{}, err
		}
	}

	link, err := navigationLink(response.Stops, ds.Settings.DepotAddress)
	if err != nil {
		return GetRouteQueryResponse{}, err
	}
	response.NavigationLink = link
	return response, nil
}

func (h GetRouteQueryHandler) liveStops(
	ds *sync.Dataset,
	query GetRouteQuery,
	ordersByKey map[string]*order.Order,
) ([]RouteStopResponse, error) {
	stops, err := h.planner.BuildStops(query.Zone(), query.Date(), ds.Clients, ordersByKey)
	if err != nil {
		return nil, err
	}

	key := route.SnapshotKey(query.Date(), query.Zone())
	ordered := h.planner.OrderedStops(stops, ds.StopOrders[key])
	routable := h.planner.FilterRoutable(ordered, query.Date(), ordersByKey)

	responses := make([]RouteStopResponse, 0, len(routable))
	for i, s := range routable {
		responses = append(responses, RouteStopResponse{
			Sequence:    i + 1,
			StopKey:     s.Key(),
			DisplayName: s.DisplayName(),
			Address:     s.Address(),
			DishSummary: s.DishSummary(),
			Portions:    s.Portions(),
			Completed:   stopCompleted(s.Key(), query, ordersByKey),
		})
	}
	return responses, nil
}

func snapshotStops(
	snapshot *route.Snapshot,
	query GetRouteQuery,
	ordersByKey map[string]*order.Order,
) []RouteStopResponse {
	responses := make([]RouteStopResponse, 0, len(snapshot.Stops()))
	for _, s := range snapshot.Stops() {
		responses = append(responses, RouteStopResponse{
			Sequence:    s.Sequence,
			StopKey:     s.StopKey,
			DisplayName: s.DisplayName,
			Address:     s.Address,
			DishSummary: s.DishSummary,
			Portions:    s.Portions,
			Completed:   stopCompleted(s.StopKey, query, ordersByKey),
		})
	}
	return responses
}

// stopCompleted resolves a stop key back to its order and completion state.
// Stop keys are "client|label" with the client part matching the order key's
// client part.
func stopCompleted(stopKey string, query GetRouteQuery, ordersByKey map[string]*order.Order) bool {
	clientPart, label, ok := strings.Cut(stopKey, "|")
	if !ok {
		return false
	}
	o := ordersByKey[order.Key(clientPart, query.Date())]
	return o != nil && o.IsStopCompleted(label)
}

func navigationLink(stops []RouteStopResponse, depotAddress string) (string, error) {
	addresses := make([]string, 0, len(stops))
	for _, s := range stops {
		if s.Address != "" {
			addresses = append(addresses, s.Address)
		}
	}
	link, err := services.MapsLink(addresses, depotAddress)
	if errors.Is(err, services.ErrNoAddresses) {
		return "", nil
	}
	return link, err
}
