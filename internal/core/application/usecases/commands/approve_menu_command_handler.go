package commands

import (
	"context"

	"mealroute/internal/core/domain/model/order"
)

// ApproveMenuCommandHandler transitions an order from MenuPending to
// MenuApproved.
type ApproveMenuCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApproveMenuCommandHandler creates a handler for menu approval.
func NewApproveMenuCommandHandler(uowFactory OrderUoWFactory) ApproveMenuCommandHandler {
	return ApproveMenuCommandHandler{uowFactory: uowFactory}
}

// Handle approves the menu. The status machine rejects anything but a
// MenuPending order.
func (h ApproveMenuCommandHandler) Handle(ctx context.Context, command ApproveMenuCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, order.Key(command.ClientName(), command.Date()))
	if err != nil {
		return err
	}

	if err = aggregate.Approve(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
