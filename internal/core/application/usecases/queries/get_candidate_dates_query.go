package queries

import (
	"errors"
	"time"

	"mealroute/internal/pkg/guard"
)

var (
	ErrGetCandidateDatesQueryIsNotConstructed = errors.New(
		"GetCandidateDatesQuery must be created via NewGetCandidateDatesQuery constructor",
	)
	ErrClientSlugIsRequired = errors.New("client slug is required")
	ErrCountIsInvalid       = errors.New("count must be positive")
)

// GetCandidateDatesQuery lists the delivery dates a portal client may still
// pick: dates on the client's delivery day, not already scheduled, and whose
// week's edit deadline has not passed.
type GetCandidateDatesQuery struct {
	clientSlug string
	count      int

	guard guard.ConstructorGuard
}

// NewGetCandidateDatesQuery creates a query for a client's selectable dates.
func NewGetCandidateDatesQuery(clientSlug string, count int) (GetCandidateDatesQuery, error) {
	if clientSlug == "" {
		return GetCandidateDatesQuery{}, ErrClientSlugIsRequired
	}
	if count <= 0 {
		return GetCandidateDatesQuery{}, ErrCountIsInvalid
	}
	return GetCandidateDatesQuery{
		clientSlug: clientSlug,
		count:      count,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCandidateDatesQuery) Validate() error {
	return q.guard.Validate(ErrGetCandidateDatesQueryIsNotConstructed)
}

// ClientSlug identifies the portal client.
func (q GetCandidateDatesQuery) ClientSlug() string {
	return q.clientSlug
}

// Count bounds the number of candidates returned.
func (q GetCandidateDatesQuery) Count() int {
	return q.count
}

// GetCandidateDatesQueryResponse is the portal's date-picker read model.
type GetCandidateDatesQueryResponse struct {
	ClientName string
	Candidates []time.Time

	// Scheduled lists the dates already on the client's calendar, for
	// display alongside the picker.
	Scheduled []time.Time
}
