package ports

import "context"

// ProductionRepository defines the persistence contract for the kitchen's
// per-cycle production state: which dish names have already been cooked in
// the current cycle. The list is cleared when a production cycle closes.
type ProductionRepository interface {
	// GetCompletedDishes retrieves the dish names marked complete in the
	// current production cycle. Returns an empty slice when none are.
	GetCompletedDishes(ctx context.Context) ([]string, error)

	// SaveCompletedDishes replaces the completed-dish list wholesale.
	// Passing nil or an empty slice resets the cycle.
	SaveCompletedDishes(ctx context.Context, dishes []string) error
}
