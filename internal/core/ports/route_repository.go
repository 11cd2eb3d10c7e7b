package ports

import (
	"context"

	"mealroute/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route state: explicit
// per-zone stop orders and immutable route snapshots. Both are keyed by the
// canonical (date, zone) key built by route.SnapshotKey.
type RouteRepository interface {
	// SaveStopOrder persists the explicit stop-key order for one zone and
	// date, replacing any earlier order wholesale.
	SaveStopOrder(ctx context.Context, key string, stopKeys []string) error

	// GetStopOrder retrieves the persisted stop-key order, or an empty
	// slice when none was saved yet.
	GetStopOrder(ctx context.Context, key string) ([]string, error)

	// SaveSnapshot persists a frozen route snapshot. Saving under an
	// existing key replaces the earlier snapshot; a snapshot is otherwise
	// never modified in place.
	SaveSnapshot(ctx context.Context, snapshot *route.Snapshot) error

	// GetSnapshot retrieves a snapshot by its key.
	GetSnapshot(ctx context.Context, key string) (*route.Snapshot, error)

	// GetAllSnapshots retrieves every saved snapshot.
	GetAllSnapshots(ctx context.Context) ([]*route.Snapshot, error)
}
