package commands

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
)

// PlanMenuCommandHandler creates the order implied by a menu plan. The edit
// deadline for the target date is checked before anything is touched: once
// the preceding Saturday has passed, the week is locked.
type PlanMenuCommandHandler struct {
	uowFactory PlanningUoWFactory
	policy     services.DeadlinePolicy
	clock      func() time.Time
}

// NewPlanMenuCommandHandler creates a handler for menu planning.
func NewPlanMenuCommandHandler(uowFactory PlanningUoWFactory) PlanMenuCommandHandler {
	return PlanMenuCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewDeadlinePolicy(),
		clock:      time.Now,
	}
}

// Handle plans the menu: it resolves the client, applies portion and stop
// defaults from the roster, and adds the order in MenuPending status.
// Fails with a DeadlinePassedError when the target week is locked, and with
// a duplicate error when the (client, date) order already exists.
func (h PlanMenuCommandHandler) Handle(ctx context.Context, command PlanMenuCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if err := h.policy.ValidateEditable(command.Date(), h.clock()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	client, err := uow.ClientRepository().GetByName(ctx, command.ClientName())
	if err != nil {
		return err
	}

	portions := command.Portions()
	if portions == 0 {
		portions = client.Portions()
	}
	totalStops := client.AddressCount()
	if totalStops == 0 {
		totalStops = 1
	}

	aggregate, err := order.NewOrder(client.Name(), command.Date(), command.Dishes(), portions, totalStops)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
