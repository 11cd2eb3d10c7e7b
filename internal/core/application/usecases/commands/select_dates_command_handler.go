package commands

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/services"
)

// SelectDatesCommandHandler replaces a client's scheduled dates from one
// source, enforcing the weekly edit lock and, for biweekly clients, the
// minimum spacing between adjacent dates.
//
// The lock applies to the difference, not the whole list: a date present
// both before and after the change is untouched and may sit past its
// deadline, but adding or dropping a date whose week is already locked is
// rejected.
type SelectDatesCommandHandler struct {
	uowFactory     ClientUoWFactory
	policy         services.DeadlinePolicy
	minSpacingDays int
	clock          func() time.Time
}

// NewSelectDatesCommandHandler creates a handler for date selection. Pass
// minSpacingDays <= 0 for the default biweekly spacing.
func NewSelectDatesCommandHandler(uowFactory ClientUoWFactory, minSpacingDays int) SelectDatesCommandHandler {
	return SelectDatesCommandHandler{
		uowFactory:     uowFactory,
		policy:         services.NewDeadlinePolicy(),
		minSpacingDays: minSpacingDays,
		clock:          time.Now,
	}
}

// Handle replaces the source's dates on the client.
func (h SelectDatesCommandHandler) Handle(ctx context.Context, command SelectDatesCommand) error {
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

	clientRepo := uow.ClientRepository()
	aggregate, err := clientRepo.GetByName(ctx, command.ClientName())
	if err != nil {
		return err
	}

	newDates := make([]client.ScheduledDate, 0, len(command.Dates()))
	newKeys := make(map[string]bool, len(command.Dates()))
	for _, d := range command.Dates() {
		scheduled, err := client.NewScheduledDate(d, command.Source())
		if err != nil {
			return err
		}
		newDates = append(newDates, scheduled)
		newKeys[scheduled.Date().Format(kernel.DateLayout)] = true
	}

	now := h.clock()
	existingKeys := make(map[string]bool)
	for _, existing := range aggregate.ScheduledDates() {
		if existing.Source() != command.Source() {
			continue
		}
		key := existing.Date().Format(kernel.DateLayout)
		existingKeys[key] = true
		if !newKeys[key] {
			// Dropping a date is an edit to its week too.
			if err = h.policy.ValidateEditable(existing.Date(), now); err != nil {
				return err
			}
		}
	}
	for _, scheduled := range newDates {
		if existingKeys[scheduled.Date().Format(kernel.DateLayout)] {
			continue
		}
		if err = h.policy.ValidateEditable(scheduled.Date(), now); err != nil {
			return err
		}
	}

	if err = h.validateSpacing(aggregate, command, newDates); err != nil {
		return err
	}

	aggregate.ReplaceScheduledDates(command.Source(), newDates)
	if err = clientRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// validateSpacing checks biweekly spacing over the client's full resulting
// date set, both sources combined.
func (h SelectDatesCommandHandler) validateSpacing(
	aggregate *client.Client,
	command SelectDatesCommand,
	newDates []client.ScheduledDate,
) error {
	resulting := make([]time.Time, 0, len(newDates))
	for _, scheduled := range newDates {
		resulting = append(resulting, scheduled.Date())
	}
	for _, existing := range aggregate.ScheduledDates() {
		if existing.Source() != command.Source() {
			resulting = append(resulting, existing.Date())
		}
	}
	return h.policy.ValidateSpacing(aggregate.Frequency(), resulting, h.minSpacingDays)
}
