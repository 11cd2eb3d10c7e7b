package queries

import (
	"errors"
	"time"

	"mealroute/internal/pkg/guard"
)

var ErrGetOutstandingBagsQueryIsNotConstructed = errors.New(
	"GetOutstandingBagsQuery must be created via NewGetOutstandingBagsQuery constructor",
)

// GetOutstandingBagsQuery lists the clients whose most recent delivery still
// has the deposit bags out. Only the latest entry per client counts; an
// older unreturned delivery is superseded by a newer one either way.
type GetOutstandingBagsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOutstandingBagsQuery creates a query for outstanding bag deposits.
// This is a parameterless query over the whole delivery log.
func NewGetOutstandingBagsQuery() GetOutstandingBagsQuery {
	return GetOutstandingBagsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOutstandingBagsQuery) Validate() error {
	return q.guard.Validate(ErrGetOutstandingBagsQueryIsNotConstructed)
}

// GetOutstandingBagsQueryResponse is one client with bags out.
type GetOutstandingBagsQueryResponse struct {
	ClientName   string
	LogEntryID   string
	LastDelivery time.Time
	DriverName   string
	ReminderSent bool
}
