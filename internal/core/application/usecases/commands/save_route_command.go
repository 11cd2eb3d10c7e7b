package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var ErrSaveRouteCommandIsNotConstructed = errors.New(
	"SaveRouteCommand must be created via NewSaveRouteCommand constructor",
)

// SaveRouteCommand freezes one zone's route for a date into an immutable
// snapshot. Only routable stops - those whose order reached at least
// MenuApproved - are frozen; the snapshot deliberately never refreshes when
// the underlying orders change afterwards.
type SaveRouteCommand struct {
	date time.Time
	zone kernel.Zone

	guard guard.ConstructorGuard
}

// NewSaveRouteCommand creates a command to save a zone's route for a date.
func NewSaveRouteCommand(date time.Time, zone kernel.Zone) (SaveRouteCommand, error) {
	cmd := SaveRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDate(date),
		cmd.setZone(zone),
	); err != nil {
		return SaveRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveRouteCommand) Validate() error {
	return c.guard.Validate(ErrSaveRouteCommandIsNotConstructed)
}

// Date returns the route's delivery date.
func (c SaveRouteCommand) Date() time.Time {
	return c.date
}

// Zone returns the zone being frozen.
func (c SaveRouteCommand) Zone() kernel.Zone {
	return c.zone
}

func (c *SaveRouteCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	c.date = date
	return nil
}

func (c *SaveRouteCommand) setZone(zone kernel.Zone) error {
	if err := zone.ValidateRoutable(); err != nil {
		return err
	}
	c.zone = zone
	return nil
}
