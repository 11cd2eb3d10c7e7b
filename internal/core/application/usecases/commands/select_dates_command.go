package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/pkg/guard"
)

var ErrSelectDatesCommandIsNotConstructed = errors.New(
	"SelectDatesCommand must be created via NewSelectDatesCommand constructor",
)

// SelectDatesCommand replaces one client's explicit delivery dates from one
// source: either an administrator reassigning dates or the client choosing
// through the portal. Dates from the other source are untouched. An empty
// date list clears the source's dates.
type SelectDatesCommand struct {
	clientName string
	source     client.DateSource
	dates      []time.Time

	guard guard.ConstructorGuard
}

// NewSelectDatesCommand creates a command to replace a client's scheduled
// dates.
func NewSelectDatesCommand(clientName string, source client.DateSource, dates []time.Time) (SelectDatesCommand, error) {
	cmd := SelectDatesCommand{
		dates: dates,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientName(clientName),
		cmd.setSource(source),
	); err != nil {
		return SelectDatesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectDatesCommand) Validate() error {
	return c.guard.Validate(ErrSelectDatesCommandIsNotConstructed)
}

// ClientName returns the client whose dates change.
func (c SelectDatesCommand) ClientName() string {
	return c.clientName
}

// Source returns who is selecting the dates.
func (c SelectDatesCommand) Source() client.DateSource {
	return c.source
}

// Dates returns the replacement date list.
func (c SelectDatesCommand) Dates() []time.Time {
	return c.dates
}

func (c *SelectDatesCommand) setClientName(clientName string) error {
	if clientName == "" {
		return ErrClientNameIsRequired
	}
	c.clientName = clientName
	return nil
}

func (c *SelectDatesCommand) setSource(source client.DateSource) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
