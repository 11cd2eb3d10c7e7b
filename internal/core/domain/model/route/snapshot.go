package route

import (
	"errors"
	"fmt"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

var (
	// ErrSnapshotIsNotConstructed is returned when a Snapshot instance was
	// not created through NewSnapshot or RestoreSnapshot.
	ErrSnapshotIsNotConstructed = errors.New("Snapshot must be created via NewSnapshot constructor")

	// ErrNoStops is returned when saving a route with no stops.
	ErrNoStops = errors.New("route snapshot requires at least one stop")
)

// SnapshotStop is the frozen form of one stop inside a saved route.
type SnapshotStop struct {
	Sequence    int
	StopKey     string
	DisplayName string
	Address     string
	DishSummary string
	Portions    int
}

// Snapshot is the immutable persisted form of a route, keyed by (date, zone).
// It freezes the stop sequence, display names, addresses, and dish summaries
// at save time and deliberately never refreshes when the underlying orders
// change afterwards.
type Snapshot struct {
	date    time.Time
	zone    kernel.Zone
	stops   []SnapshotStop
	savedAt time.Time

	isConstructed bool
}

// SnapshotKey builds the canonical (date, zone) route key.
func SnapshotKey(date time.Time, zone kernel.Zone) string {
	return fmt.Sprintf("%s|%s", date.Format(kernel.DateLayout), zone.Name())
}

// NewSnapshot freezes an ordered stop list into a route snapshot. Sequence
// numbers are assigned from the given order, starting at 1.
func NewSnapshot(date time.Time, zone kernel.Zone, stops []Stop, savedAt time.Time) (*Snapshot, error) {
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("route date")
	}
	if err := zone.ValidateRoutable(); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, ErrNoStops
	}

	frozen := make([]SnapshotStop, 0, len(stops))
	for i, s := range stops {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		frozen = append(frozen, SnapshotStop{
			Sequence:    i + 1,
			StopKey:     s.Key(),
			DisplayName: s.DisplayName(),
			Address:     s.Address(),
			DishSummary: s.DishSummary(),
			Portions:    s.Portions(),
		})
	}

	y, m, d := date.Date()
	return &Snapshot{
		date:          time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		zone:          zone,
		stops:         frozen,
		savedAt:       savedAt,
		isConstructed: true,
	}, nil
}

// RestoreSnapshot reconstructs a saved route from persistence.
func RestoreSnapshot(date time.Time, zone kernel.Zone, stops []SnapshotStop, savedAt time.Time) (*Snapshot, error) {
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("route date")
	}
	if len(stops) == 0 {
		return nil, ErrNoStops
	}

	y, m, d := date.Date()
	return &Snapshot{
		date:          time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		zone:          zone,
		stops:         stops,
		savedAt:       savedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Snapshot was properly constructed.
func (s *Snapshot) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSnapshotIsNotConstructed
	}
	return nil
}

// Key returns the canonical (date, zone) key of this route.
func (s *Snapshot) Key() string {
	return SnapshotKey(s.date, s.zone)
}

// Date returns the route date at midnight.
func (s *Snapshot) Date() time.Time {
	return s.date
}

// Zone returns the route's zone.
func (s *Snapshot) Zone() kernel.Zone {
	return s.zone
}

// Stops returns the frozen stop sequence.
func (s *Snapshot) Stops() []SnapshotStop {
	return s.stops
}

// SavedAt returns the save timestamp.
func (s *Snapshot) SavedAt() time.Time {
	return s.savedAt
}
