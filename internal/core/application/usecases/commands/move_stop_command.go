package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var (
	ErrMoveStopCommandIsNotConstructed = errors.New(
		"MoveStopCommand must be created via NewMoveStopCommand constructor",
	)
	ErrStopKeyIsRequired = errors.New("stop key is required")
)

// MoveStopCommand reorders one zone's stops for a date: the stop identified
// by FromKey is reinserted at ToKey's position and the resulting key order is
// persisted wholesale.
type MoveStopCommand struct {
	date    time.Time
	zone    kernel.Zone
	fromKey string
	toKey   string

	guard guard.ConstructorGuard
}

// NewMoveStopCommand creates a command to move a stop within a zone's order.
func NewMoveStopCommand(date time.Time, zone kernel.Zone, fromKey, toKey string) (MoveStopCommand, error) {
	cmd := MoveStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDate(date),
		cmd.setZone(zone),
		cmd.setFromKey(fromKey),
		cmd.setToKey(toKey),
	); err != nil {
		return MoveStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveStopCommand) Validate() error {
	return c.guard.Validate(ErrMoveStopCommandIsNotConstructed)
}

// Date returns the route's delivery date.
func (c MoveStopCommand) Date() time.Time {
	return c.date
}

// Zone returns the zone whose order changes.
func (c MoveStopCommand) Zone() kernel.Zone {
	return c.zone
}

// FromKey identifies the stop being moved.
func (c MoveStopCommand) FromKey() string {
	return c.fromKey
}

// ToKey identifies the position the stop moves to.
func (c MoveStopCommand) ToKey() string {
	return c.toKey
}

func (c *MoveStopCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	c.date = date
	return nil
}

func (c *MoveStopCommand) setZone(zone kernel.Zone) error {
	if err := zone.ValidateRoutable(); err != nil {
		return err
	}
	c.zone = zone
	return nil
}

func (c *MoveStopCommand) setFromKey(key string) error {
	if key == "" {
		return ErrStopKeyIsRequired
	}
	c.fromKey = key
	return nil
}

func (c *MoveStopCommand) setToKey(key string) error {
	if key == "" {
		return ErrStopKeyIsRequired
	}
	c.toKey = key
	return nil
}
