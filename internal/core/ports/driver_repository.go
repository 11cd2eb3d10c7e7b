package ports

import (
	"context"

	"mealroute/internal/core/domain/model/driver"
	"mealroute/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByName retrieves a driver by its name, case-insensitively.
	// Driver login matches the submitted access code against the driver
	// found here.
	GetByName(ctx context.Context, name string) (*driver.Driver, error)

	// GetAll retrieves every driver.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
