package queries

import (
	"context"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/services"
)

// GetOutstandingBagsQueryHandler derives the outstanding-bags read model
// from the delivery log.
type GetOutstandingBagsQueryHandler struct {
	coord   *sync.Coordinator
	tracker services.BagDepositTracker
}

// NewGetOutstandingBagsQueryHandler creates a handler for bag tracking.
func NewGetOutstandingBagsQueryHandler(coord *sync.Coordinator) GetOutstandingBagsQueryHandler {
	return GetOutstandingBagsQueryHandler{
		coord:   coord,
		tracker: services.NewBagDepositTracker(),
	}
}

// Handle returns the clients with bags out, sorted by name.
func (h GetOutstandingBagsQueryHandler) Handle(
	ctx context.Context,
	query GetOutstandingBagsQuery,
) ([]GetOutstandingBagsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ds, err := h.coord.View()
	if err != nil {
		return nil, err
	}

	outstanding := h.tracker.Outstanding(ds.DeliveryLog)
	responses := make([]GetOutstandingBagsQueryResponse, 0, len(outstanding))
	for _, bag := range outstanding {
		responses = append(responses, GetOutstandingBagsQueryResponse{
			ClientName:   bag.ClientName,
			LogEntryID:   bag.LastEntry.ID().String(),
			LastDelivery: bag.LastEntry.CompletedAt(),
			DriverName:   bag.LastEntry.DriverName(),
			ReminderSent: bag.ReminderSent,
		})
	}
	return responses, nil
}
