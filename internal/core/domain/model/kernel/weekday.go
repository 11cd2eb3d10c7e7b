package kernel

import (
	"fmt"
	"strings"
	"time"

	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// DateLayout is the canonical wire and key format for delivery dates.
// All (clientName, date) keys and persisted route keys use this layout.
const DateLayout = "2006-01-02"

// ErrWeekdayIsNotConstructed is returned when attempting to use an improperly
// initialized Weekday. Weekdays must be created via NewWeekday or
// WeekdayFromTime to ensure validity.
var ErrWeekdayIsNotConstructed = errs.NewValueIsRequiredError(
	"weekday must be created via NewWeekday or WeekdayFromTime constructors")

// Weekday represents a client's preferred delivery day of the week.
// It is an immutable value object; the zero value is invalid and will fail
// validation - use the constructors to create instances.
//
// Example:
//
//	day, err := kernel.NewWeekday("monday")
//	if err != nil {
//	    // Handle validation error
//	}
//	day.Matches(someDate) // true if someDate falls on a Monday
type Weekday struct {
	day time.Weekday

	guard guard.ConstructorGuard
}

// NewWeekday parses a weekday from its English name, case-insensitively.
// Accepts "Monday", "monday", "MONDAY" and so on.
func NewWeekday(name string) (Weekday, error) {
	if name == "" {
		return Weekday{}, errs.NewValueIsRequiredError("weekday name")
	}

	normalized := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == normalized {
			return Weekday{day: d, guard: guard.NewConstructorGuard()}, nil
		}
	}

	return Weekday{}, errs.NewValueIsInvalidErrorWithCause(
		"weekday name", fmt.Errorf("%q is not a day of the week", name))
}

// WeekdayFromTime creates a Weekday from the day a timestamp falls on.
func WeekdayFromTime(t time.Time) Weekday {
	return Weekday{day: t.Weekday(), guard: guard.NewConstructorGuard()}
}

// Day returns the underlying time.Weekday.
func (w Weekday) Day() time.Weekday {
	return w.day
}

// Matches reports whether the given date falls on this weekday.
func (w Weekday) Matches(date time.Time) bool {
	return date.Weekday() == w.day
}

// String returns the English weekday name, e.g. "Monday".
func (w Weekday) String() string {
	return w.day.String()
}

// IsEqual compares two weekdays by their underlying day.
func (w Weekday) IsEqual(other Weekday) bool {
	return w.day == other.day
}

// Validate ensures the Weekday was created through a constructor.
func (w Weekday) Validate() error {
	return w.guard.Validate(ErrWeekdayIsNotConstructed)
}
