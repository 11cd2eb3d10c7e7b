package queries

import (
	"context"
	"time"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/pkg/errs"
)

// GetCandidateDatesQueryHandler enumerates the dates a portal client can
// still select.
type GetCandidateDatesQueryHandler struct {
	coord  *sync.Coordinator
	policy services.DeadlinePolicy
	clock  func() time.Time
}

// NewGetCandidateDatesQueryHandler creates a handler for the portal date
// picker.
func NewGetCandidateDatesQueryHandler(coord *sync.Coordinator) GetCandidateDatesQueryHandler {
	return GetCandidateDatesQueryHandler{
		coord:  coord,
		policy: services.NewDeadlinePolicy(),
		clock:  time.Now,
	}
}

// Handle resolves the client by slug and enumerates candidates starting at
// the first still-editable day, skipping dates already scheduled from either
// source.
func (h GetCandidateDatesQueryHandler) Handle(
	ctx context.Context,
	query GetCandidateDatesQuery,
) (GetCandidateDatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCandidateDatesQueryResponse{}, err
	}

	ds, err := h.coord.View()
	if err != nil {
		return GetCandidateDatesQueryResponse{}, err
	}

	var target *client.Client
	for _, c := range ds.Clients {
		if c.MatchesSlug(query.ClientSlug()) {
			target = c
			break
		}
	}
	if target == nil {
		return GetCandidateDatesQueryResponse{}, errs.NewObjectNotFoundError("client", query.ClientSlug())
	}

	exclude := make(map[string]bool)
	scheduled := make([]time.Time, 0, len(target.ScheduledDates()))
	for _, d := range target.ScheduledDates() {
		exclude[d.Date().Format(kernel.DateLayout)] = true
		scheduled = append(scheduled, d.Date())
	}

	now := h.clock()
	start := firstEditableDay(h.policy, now)
	candidates := h.policy.EnumerateCandidates(start, target.DeliveryDay(), exclude, query.Count(), 0)

	return GetCandidateDatesQueryResponse{
		ClientName: target.Name(),
		Candidates: candidates,
		Scheduled:  scheduled,
	}, nil
}

// firstEditableDay advances from now to the first calendar day whose week is
// still open for edits. The current week's deadline was last Saturday, so
// this lands on the coming Sunday at the latest.
func firstEditableDay(policy services.DeadlinePolicy, now time.Time) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for i := 0; i < 8; i++ {
		if policy.IsEditable(day, now) {
			return day
		}
		day = day.AddDate(0, 0, 1)
	}
	return day
}
