package ports

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders live in one of two pools: the current pool holds orders still moving
// through the lifecycle, the history pool holds delivered orders. Keys are
// the canonical (clientName, date) keys built by order.Key.
type OrderRepository interface {
	// Add persists a new order aggregate into the current pool.
	// The order must be valid and its key must not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order in the current pool.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order from the current pool by its key.
	Get(ctx context.Context, key string) (*order.Order, error)

	// GetAllForDate retrieves every current order for the given delivery
	// date, regardless of status.
	GetAllForDate(ctx context.Context, date time.Time) ([]*order.Order, error)

	// GetAllInStatus retrieves every current order in the given status.
	// Production cycles rebuild the kitchen board from the MenuApproved
	// set returned here.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// Archive moves a delivered order from the current pool into the
	// history pool. The order must exist and be Delivered.
	Archive(ctx context.Context, key string) error

	// Unarchive moves an order from the history pool back into the
	// current pool, reversing Archive when a stop completion is undone.
	Unarchive(ctx context.Context, key string) error

	// GetHistoryForClient retrieves a client's delivered orders from the
	// history pool, most recent first.
	GetHistoryForClient(ctx context.Context, clientName string) ([]*order.Order, error)
}
