package queries

import (
	"context"
	"sort"
	"time"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/model/delivery"
)

// GetDeliveryLogQueryHandler serves the delivery-log read model.
type GetDeliveryLogQueryHandler struct {
	coord *sync.Coordinator
}

// NewGetDeliveryLogQueryHandler creates a handler for log retrieval.
func NewGetDeliveryLogQueryHandler(coord *sync.Coordinator) GetDeliveryLogQueryHandler {
	return GetDeliveryLogQueryHandler{coord: coord}
}

// Handle returns log entries, most recent completion first.
func (h GetDeliveryLogQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLogQuery,
) ([]GetDeliveryLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ds, err := h.coord.View()
	if err != nil {
		return nil, err
	}

	responses := make([]GetDeliveryLogQueryResponse, 0, len(ds.DeliveryLog))
	for _, e := range ds.DeliveryLog {
		if !query.Date().IsZero() && !sameCalendarDay(e.Date(), query.Date()) {
			continue
		}
		responses = append(responses, toLogResponse(e))
	}

	sort.Slice(responses, func(i, j int) bool {
		return responses[i].CompletedAt.After(responses[j].CompletedAt)
	})
	return responses, nil
}

func toLogResponse(e *delivery.LogEntry) GetDeliveryLogQueryResponse {
	return GetDeliveryLogQueryResponse{
		ID:           e.ID().String(),
		Date:         e.Date(),
		ClientName:   e.ClientName(),
		ContactLabel: e.ContactLabel(),
		Zone:         e.Zone().Name(),
		DriverName:   e.DriverName(),
		CompletedAt:  e.CompletedAt(),
		Handoff:      e.HandoffType().String(),
		PhotoRef:     e.PhotoRef(),
		BagsReturned: e.BagsReturned(),
		ReminderSent: e.ReminderSent(),
		Problem:      e.ProblemCode().String(),
		Note:         e.Note(),
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
