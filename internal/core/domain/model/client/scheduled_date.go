package client

import (
	"time"

	"mealroute/internal/pkg/errs"
)

// DateSource tags who selected an explicit delivery date for a client.
type DateSource int

const (
	// DateSourceUnknown represents an invalid or undefined source.
	DateSourceUnknown DateSource = iota

	// AdminSet dates were assigned by an administrator.
	AdminSet

	// SelfSelected dates were chosen by the client through the portal.
	SelfSelected
)

// Validate checks if the DateSource value is valid.
func (s DateSource) Validate() error {
	if s != AdminSet && s != SelfSelected {
		return errs.NewValueIsInvalidError("date source")
	}
	return nil
}

// DateSourceFromString parses the persisted form of a date source.
func DateSourceFromString(s string) (DateSource, error) {
	switch s {
	case "admin":
		return AdminSet, nil
	case "self":
		return SelfSelected, nil
	default:
		return DateSourceUnknown, errs.NewValueIsInvalidError("date source")
	}
}

// String returns the persisted form of the source.
func (s DateSource) String() string {
	switch s {
	case AdminSet:
		return "admin"
	case SelfSelected:
		return "self"
	default:
		return "unknown"
	}
}

// ScheduledDate is one explicit delivery date of a client, tagged with its
// source. Legacy records keep admin-set and self-selected dates in separate
// lists; they are folded into this single representation at the ingestion
// boundary so scheduling logic never branches on where a date came from.
type ScheduledDate struct {
	date   time.Time
	source DateSource
}

// NewScheduledDate creates a scheduled date truncated to midnight in the
// date's location.
func NewScheduledDate(date time.Time, source DateSource) (ScheduledDate, error) {
	if date.IsZero() {
		return ScheduledDate{}, errs.NewValueIsRequiredError("scheduled date")
	}
	if err := source.Validate(); err != nil {
		return ScheduledDate{}, err
	}

	y, m, d := date.Date()
	return ScheduledDate{
		date:   time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		source: source,
	}, nil
}

// Date returns the delivery date at midnight.
func (s ScheduledDate) Date() time.Time {
	return s.date
}

// Source returns who selected the date.
func (s ScheduledDate) Source() DateSource {
	return s.source
}

// SameDay reports whether the scheduled date falls on the given calendar day.
func (s ScheduledDate) SameDay(other time.Time) bool {
	y1, m1, d1 := s.date.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
