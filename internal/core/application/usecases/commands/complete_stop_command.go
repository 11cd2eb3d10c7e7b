package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/pkg/guard"
)

var (
	ErrCompleteStopCommandIsNotConstructed = errors.New(
		"CompleteStopCommand must be created via NewCompleteStopCommand constructor",
	)
	ErrContactLabelIsRequired = errors.New("contact label is required")
	ErrDriverNameIsRequired   = errors.New("driver name is required")
)

// CompleteStopCommand records one completed delivery stop: which of the
// client's addresses was served, by whom, and how the handoff went. The
// handler appends the delivery-log entry and advances the order, archiving
// it when this was the final stop.
type CompleteStopCommand struct {
	clientName   string
	date         time.Time
	contactLabel string
	driverName   string
	handoff      delivery.Handoff
	photoRef     string
	bagsReturned bool
	problem      delivery.Problem
	note         string

	guard guard.ConstructorGuard
}

// NewCompleteStopCommand creates a command to complete a delivery stop.
// Handoff guards (porch photo evidence, problem notes) are enforced by the
// log entry itself, before anything mutates.
func NewCompleteStopCommand(
	clientName string,
	date time.Time,
	contactLabel, driverName string,
	handoff delivery.Handoff,
	photoRef string,
	bagsReturned bool,
	problem delivery.Problem,
	note string,
) (CompleteStopCommand, error) {
	cmd := CompleteStopCommand{
		photoRef:     photoRef,
		bagsReturned: bagsReturned,
		note:         note,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientName(clientName),
		cmd.setDate(date),
		cmd.setContactLabel(contactLabel),
		cmd.setDriverName(driverName),
		cmd.setHandoff(handoff),
		cmd.setProblem(problem),
	); err != nil {
		return CompleteStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStopCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStopCommandIsNotConstructed)
}

// ClientName returns the client whose stop was completed.
func (c CompleteStopCommand) ClientName() string {
	return c.clientName
}

// Date returns the delivery date of the stop.
func (c CompleteStopCommand) Date() time.Time {
	return c.date
}

// ContactLabel identifies which of the client's addresses was served.
func (c CompleteStopCommand) ContactLabel() string {
	return c.contactLabel
}

// DriverName returns the driver completing the stop.
func (c CompleteStopCommand) DriverName() string {
	return c.driverName
}

// HandoffType returns how the delivery was handed over.
func (c CompleteStopCommand) HandoffType() delivery.Handoff {
	return c.handoff
}

// PhotoRef returns the opaque photo reference, empty when none was taken.
func (c CompleteStopCommand) PhotoRef() string {
	return c.photoRef
}

// BagsReturned reports whether the client returned deposit bags at this
// stop.
func (c CompleteStopCommand) BagsReturned() bool {
	return c.bagsReturned
}

// ProblemCode returns the reported problem, ProblemNone for a clean stop.
func (c CompleteStopCommand) ProblemCode() delivery.Problem {
	return c.problem
}

// Note returns the free-form problem note.
func (c CompleteStopCommand) Note() string {
	return c.note
}

func (c *CompleteStopCommand) setClientName(clientName string) error {
	if clientName == "" {
		return ErrClientNameIsRequired
	}
	c.clientName = clientName
	return nil
}

func (c *CompleteStopCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	c.date = date
	return nil
}

func (c *CompleteStopCommand) setContactLabel(label string) error {
	if label == "" {
		return ErrContactLabelIsRequired
	}
	c.contactLabel = label
	return nil
}

func (c *CompleteStopCommand) setDriverName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}
	c.driverName = name
	return nil
}

func (c *CompleteStopCommand) setHandoff(handoff delivery.Handoff) error {
	if err := handoff.Validate(); err != nil {
		return err
	}
	c.handoff = handoff
	return nil
}

func (c *CompleteStopCommand) setProblem(problem delivery.Problem) error {
	if err := problem.Validate(); err != nil {
		return err
	}
	c.problem = problem
	return nil
}
