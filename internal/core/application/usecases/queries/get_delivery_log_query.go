package queries

import (
	"errors"
	"time"

	"mealroute/internal/pkg/guard"
)

var ErrGetDeliveryLogQueryIsNotConstructed = errors.New(
	"GetDeliveryLogQuery must be created via NewGetDeliveryLogQuery constructor",
)

// GetDeliveryLogQuery retrieves completed-delivery records, optionally
// filtered to one date. Pass the zero time for the full log.
type GetDeliveryLogQuery struct {
	date time.Time

	guard guard.ConstructorGuard
}

// NewGetDeliveryLogQuery creates a query over the delivery log.
func NewGetDeliveryLogQuery(date time.Time) GetDeliveryLogQuery {
	return GetDeliveryLogQuery{
		date:  date,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryLogQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLogQueryIsNotConstructed)
}

// Date returns the filter date, zero for no filter.
func (q GetDeliveryLogQuery) Date() time.Time {
	return q.date
}

// GetDeliveryLogQueryResponse is one completed stop in the log read model.
type GetDeliveryLogQueryResponse struct {
	ID           string
	Date         time.Time
	ClientName   string
	ContactLabel string
	Zone         string
	DriverName   string
	CompletedAt  time.Time
	Handoff      string
	PhotoRef     string
	BagsReturned bool
	ReminderSent bool
	Problem      string
	Note         string
}
