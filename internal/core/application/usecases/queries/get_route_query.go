// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the coordinator's live dataset directly and return optimized
// read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var (
	ErrGetRouteQueryIsNotConstructed = errors.New(
		"GetRouteQuery must be created via NewGetRouteQuery constructor",
	)
	ErrDateIsRequired = errors.New("delivery date is required")
)

// GetRouteQuery retrieves one zone's route for a delivery date: the ordered
// routable stops plus an external-maps navigation link. When a frozen
// snapshot exists for the (date, zone) key it is served as-is; otherwise the
// route is planned live from the current roster and orders.
//
// Example:
//
//	query, err := NewGetRouteQuery(date, kernel.NewZone("North"))
//	if err != nil {
//	    return err
//	}
//	route, err := handler.Handle(ctx, query)
type GetRouteQuery struct {
	date time.Time
	zone kernel.Zone

	guard guard.ConstructorGuard
}

// NewGetRouteQuery creates a query for one zone's route on one date.
func NewGetRouteQuery(date time.Time, zone kernel.Zone) (GetRouteQuery, error) {
	if date.IsZero() {
		return GetRouteQuery{}, ErrDateIsRequired
	}
	if err := zone.ValidateRoutable(); err != nil {
		return GetRouteQuery{}, err
	}
	return GetRouteQuery{
		date:  date,
		zone:  zone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// Date returns the delivery date.
func (q GetRouteQuery) Date() time.Time {
	return q.date
}

// Zone returns the zone being routed.
func (q GetRouteQuery) Zone() kernel.Zone {
	return q.zone
}

// RouteStopResponse is one stop in the route read model.
type RouteStopResponse struct {
	Sequence    int
	StopKey     string
	DisplayName string
	Address     string
	DishSummary string
	Portions    int
	Completed   bool
}

// GetRouteQueryResponse is the route read model served to drivers.
type GetRouteQueryResponse struct {
	Date           time.Time
	Zone           string
	FromSnapshot   bool
	Stops          []RouteStopResponse
	NavigationLink string
}
