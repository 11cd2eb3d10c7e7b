// Package ports defines repository and store interfaces for the meal-delivery
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"mealroute/internal/core/domain/model/client"
)

// ClientRepository defines the persistence contract for client aggregates.
// Clients are keyed by their canonical name; the portal additionally looks
// them up by display-name slug.
type ClientRepository interface {
	// Add persists a new client aggregate to storage.
	// The client must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *client.Client) error

	// Update persists changes to an existing client aggregate.
	// The client must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *client.Client) error

	// GetByName retrieves a client aggregate by its canonical name.
	// The lookup is case-insensitive.
	GetByName(ctx context.Context, name string) (*client.Client, error)

	// GetBySlug retrieves a client by the URL slug of its display name,
	// falling back to the slug of the canonical name. Used by the client
	// portal, whose links must survive display-name edits.
	GetBySlug(ctx context.Context, slug string) (*client.Client, error)

	// GetAll retrieves every client, active or not.
	GetAll(ctx context.Context) ([]*client.Client, error)
}
