package services

import (
	"sort"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

const (
	// MinSpacingDays is the minimum gap between adjacent delivery dates of a
	// biweekly client.
	MinSpacingDays = 14

	// DefaultHorizonDays bounds candidate-date enumeration.
	DefaultHorizonDays = 120
)

// DeadlinePolicy is a pure domain service for everything date-related: the
// weekly edit lock, biweekly spacing validation, and candidate-date
// enumeration for the client portal. It holds no state and is safe for
// concurrent use.
//
// The edit lock works on calendar weeks starting Sunday: a delivery date is
// editable until 23:59:59 on the Saturday immediately preceding its week.
type DeadlinePolicy struct{}

// NewDeadlinePolicy creates a new DeadlinePolicy instance.
func NewDeadlinePolicy() DeadlinePolicy {
	return DeadlinePolicy{}
}

// ComputeDeadline returns the edit deadline for a target delivery date: the
// Saturday at 23:59:59, in the target's location, immediately preceding the
// calendar week containing the target.
func (DeadlinePolicy) ComputeDeadline(target time.Time) time.Time {
	y, m, d := target.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, target.Location())
	// Weekday() is 0 for Sunday, so weekday+1 days back is the preceding Saturday.
	saturday := midnight.AddDate(0, 0, -int(midnight.Weekday())-1)
	return saturday.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// UpcomingDeadline returns the deadline used when no target date is given:
// the Saturday of the week containing now, at 23:59:59.
func (DeadlinePolicy) UpcomingDeadline(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	saturday := midnight.AddDate(0, 0, int(time.Saturday)-int(midnight.Weekday()))
	return saturday.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// IsEditable reports whether a date-related mutation targeting target is
// still allowed at now. Editing closes exactly at the deadline: any now on or
// after ComputeDeadline(target) is rejected.
func (p DeadlinePolicy) IsEditable(target, now time.Time) bool {
	return now.Before(p.ComputeDeadline(target))
}

// ValidateEditable returns a DeadlinePassedError when the target date can no
// longer be edited.
func (p DeadlinePolicy) ValidateEditable(target, now time.Time) error {
	if p.IsEditable(target, now) {
		return nil
	}
	return errs.NewDeadlinePassedError(
		target.Format(kernel.DateLayout),
		p.ComputeDeadline(target).Format("2006-01-02 15:04:05"))
}

// ValidateSpacing checks that every adjacent pair of a biweekly client's
// dates, in sorted order, is at least minDays apart. Single-date and
// non-biweekly inputs always pass. Pass minDays <= 0 for the default.
func (DeadlinePolicy) ValidateSpacing(frequency client.Frequency, dates []time.Time, minDays int) error {
	if !frequency.IsBiweekly() || len(dates) < 2 {
		return nil
	}
	if minDays <= 0 {
		minDays = MinSpacingDays
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		gap := calendarDays(prev, next)
		if gap < minDays {
			return errs.NewSpacingError(
				prev.Format(kernel.DateLayout),
				next.Format(kernel.DateLayout),
				gap, minDays)
		}
	}
	return nil
}

// EnumerateCandidates produces up to count dates falling on the target
// weekday, starting at start, skipping any date in exclude (keyed by
// kernel.DateLayout), within horizonDays of start. It returns fewer than
// count when the horizon is exhausted; it never errors. Pass horizonDays <= 0
// for the default.
func (DeadlinePolicy) EnumerateCandidates(
	start time.Time,
	target kernel.Weekday,
	exclude map[string]bool,
	count, horizonDays int,
) []time.Time {
	if count <= 0 {
		return nil
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	candidates := make([]time.Time, 0, count)
	day := dateOnly(start)
	for offset := 0; offset <= horizonDays && len(candidates) < count; offset++ {
		if target.Matches(day) && !exclude[day.Format(kernel.DateLayout)] {
			candidates = append(candidates, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return candidates
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDays counts whole calendar days between two dates. Both are
// rebuilt at UTC midnight first so DST transitions in the input location
// cannot shift the count.
func calendarDays(prev, next time.Time) int {
	py, pm, pd := prev.Date()
	ny, nm, nd := next.Date()
	p := time.Date(py, pm, pd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(n.Sub(p) / (24 * time.Hour))
}
