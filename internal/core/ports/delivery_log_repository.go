package ports

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/kernel"
)

// DeliveryLogRepository defines the persistence contract for delivery log
// entries. The log is append-mostly: entries are added when a stop completes,
// removed when the completion is undone, and updated only for the bag-return
// and reminder flags.
type DeliveryLogRepository interface {
	// Append persists a new log entry.
	Append(ctx context.Context, entry *delivery.LogEntry) error

	// Update persists flag changes to an existing entry.
	Update(ctx context.Context, entry *delivery.LogEntry) error

	// Remove deletes an entry by its identifier, used when undoing the
	// stop completion that produced it.
	Remove(ctx context.Context, id kernel.UUID) error

	// Get retrieves an entry by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.LogEntry, error)

	// GetAll retrieves the whole log, oldest first.
	GetAll(ctx context.Context) ([]*delivery.LogEntry, error)

	// GetAllForDate retrieves the entries for one delivery date,
	// completion order preserved.
	GetAllForDate(ctx context.Context, date time.Time) ([]*delivery.LogEntry, error)
}
