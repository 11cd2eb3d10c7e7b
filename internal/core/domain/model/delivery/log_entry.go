package delivery

import (
	"errors"
	"strings"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

var (
	// ErrLogEntryIsNotConstructed is returned when a LogEntry was not created
	// through NewLogEntry or RestoreLogEntry.
	ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry constructor")

	// ErrPhotoRequired is returned when a porch handoff carries neither a
	// photo reference nor a problem report.
	ErrPhotoRequired = errors.New("porch handoff requires a photo unless a problem is reported")

	// ErrProblemNoteRequired is returned when a problem reported as Other
	// has no explanatory note.
	ErrProblemNoteRequired = errors.New("problem note is required when the problem is other")
)

// LogEntry is the immutable record of one completed delivery stop. Entries
// are append-only: undoing a stop removes its entry rather than amending it.
// The only mutable flags are the bags-returned toggle, which customers settle
// after the fact, and the reminder-sent acknowledgement.
type LogEntry struct {
	id           kernel.UUID
	date         time.Time
	clientName   string
	contactLabel string
	zone         kernel.Zone
	driverName   string
	completedAt  time.Time
	handoff      Handoff
	photoRef     string
	bagsReturned bool
	reminderSent bool
	problem      Problem
	note         string

	isConstructed bool
}

// NewLogEntry creates a validated log entry for a completed stop.
//
// Guards, all checked before any caller-visible effect:
//   - handoff must be hand or porch
//   - porch handoffs require a photo reference unless a problem is reported
//   - a problem reported as Other requires a note
func NewLogEntry(
	id kernel.UUID,
	date time.Time,
	clientName, contactLabel string,
	zone kernel.Zone,
	driverName string,
	completedAt time.Time,
	handoff Handoff,
	photoRef string,
	bagsReturned bool,
	problem Problem,
	note string,
) (*LogEntry, error) {
	e := &LogEntry{
		zone:          zone,
		photoRef:      strings.TrimSpace(photoRef),
		bagsReturned:  bagsReturned,
		note:          strings.TrimSpace(note),
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setDate(date),
		e.setClientName(clientName),
		e.setContactLabel(contactLabel),
		e.setDriverName(driverName),
		e.setCompletedAt(completedAt),
		e.setHandoff(handoff),
		e.setProblem(problem),
	); err != nil {
		return nil, err
	}

	if e.handoff == Porch && !e.problem.IsReported() && e.photoRef == "" {
		return nil, ErrPhotoRequired
	}
	if e.problem.RequiresNote() && e.note == "" {
		return nil, ErrProblemNoteRequired
	}

	return e, nil
}

// RestoreLogEntry reconstructs a log entry from persistence, including the
// post-hoc flags.
func RestoreLogEntry(
	id kernel.UUID,
	date time.Time,
	clientName, contactLabel string,
	zone kernel.Zone,
	driverName string,
	completedAt time.Time,
	handoff Handoff,
	photoRef string,
	bagsReturned, reminderSent bool,
	problem Problem,
	note string,
) (*LogEntry, error) {
	e, err := NewLogEntry(id, date, clientName, contactLabel, zone, driverName,
		completedAt, handoff, photoRef, bagsReturned, problem, note)
	if err != nil {
		return nil, err
	}
	e.reminderSent = reminderSent
	return e, nil
}

// Validate ensures the LogEntry was properly constructed.
func (e *LogEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *LogEntry) ID() kernel.UUID {
	return e.id
}

// Date returns the delivery date of the completed stop.
func (e *LogEntry) Date() time.Time {
	return e.date
}

// ClientName returns the client the stop belonged to.
func (e *LogEntry) ClientName() string {
	return e.clientName
}

// ContactLabel identifies which of the client's addresses was served.
func (e *LogEntry) ContactLabel() string {
	return e.contactLabel
}

// Zone returns the zone the stop was routed in.
func (e *LogEntry) Zone() kernel.Zone {
	return e.zone
}

// DriverName returns the driver who completed the stop.
func (e *LogEntry) DriverName() string {
	return e.driverName
}

// CompletedAt returns the completion timestamp.
func (e *LogEntry) CompletedAt() time.Time {
	return e.completedAt
}

// HandoffType returns how the delivery was handed over.
func (e *LogEntry) HandoffType() Handoff {
	return e.handoff
}

// PhotoRef returns the opaque photo reference, empty when none was taken.
func (e *LogEntry) PhotoRef() string {
	return e.photoRef
}

// BagsReturned reports whether the client returned the deposit bags at this
// stop.
func (e *LogEntry) BagsReturned() bool {
	return e.bagsReturned
}

// SetBagsReturned toggles the bags-returned flag post-hoc.
func (e *LogEntry) SetBagsReturned(returned bool) {
	e.bagsReturned = returned
}

// ReminderSent reports whether a bag reminder was manually acknowledged for
// this entry. Nothing is dispatched by this system; the flag is bookkeeping.
func (e *LogEntry) ReminderSent() bool {
	return e.reminderSent
}

// SetReminderSent records the manual reminder acknowledgement.
func (e *LogEntry) SetReminderSent(sent bool) {
	e.reminderSent = sent
}

// ProblemCode returns the reported problem, ProblemNone when the stop was
// uneventful.
func (e *LogEntry) ProblemCode() Problem {
	return e.problem
}

// Note returns the free-form problem note.
func (e *LogEntry) Note() string {
	return e.note
}

func (e *LogEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *LogEntry) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	y, m, d := date.Date()
	e.date = time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return nil
}

func (e *LogEntry) setClientName(clientName string) error {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	e.clientName = clientName
	return nil
}

func (e *LogEntry) setContactLabel(contactLabel string) error {
	contactLabel = strings.TrimSpace(contactLabel)
	if contactLabel == "" {
		return errs.NewValueIsRequiredError("contact label")
	}
	e.contactLabel = contactLabel
	return nil
}

func (e *LogEntry) setDriverName(driverName string) error {
	driverName = strings.TrimSpace(driverName)
	if driverName == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	e.driverName = driverName
	return nil
}

func (e *LogEntry) setCompletedAt(completedAt time.Time) error {
	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completion timestamp")
	}
	e.completedAt = completedAt
	return nil
}

func (e *LogEntry) setHandoff(handoff Handoff) error {
	if err := handoff.Validate(); err != nil {
		return err
	}
	e.handoff = handoff
	return nil
}

func (e *LogEntry) setProblem(problem Problem) error {
	if err := problem.Validate(); err != nil {
		return err
	}
	e.problem = problem
	return nil
}
