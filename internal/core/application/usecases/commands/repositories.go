// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// workspace management, and persistence.
package commands

import (
	"context"

	"mealroute/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler names only the repositories it needs; the sync
// workspace satisfies all of them.
type (
	// TxManager handles the workspace transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ClientRepoFactory provides access to the client repository within a
	// workspace.
	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	// OrderRepoFactory provides access to the order repository within a
	// workspace.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryLogRepoFactory provides access to the delivery log within a
	// workspace.
	DeliveryLogRepoFactory interface {
		DeliveryLogRepository() ports.DeliveryLogRepository
	}

	// RouteRepoFactory provides access to route state within a workspace.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// ProductionRepoFactory provides access to the kitchen's per-cycle
	// production state within a workspace.
	ProductionRepoFactory interface {
		ProductionRepository() ports.ProductionRepository
	}

	// OrderUoW manages workspaces for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order workspaces.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ClientUoW manages workspaces for client-only operations.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
	}

	// ClientUoWFactory creates client workspaces.
	ClientUoWFactory interface {
		Create() ClientUoW
	}

	// PlanningUoW manages workspaces for menu planning, which reads the
	// client roster and writes orders.
	PlanningUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
	}

	// PlanningUoWFactory creates planning workspaces.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}

	// DeliveryUoW manages workspaces for stop completion and undo, which
	// move orders and the delivery log together. The client roster is read
	// to resolve the zone a stop was served in.
	DeliveryUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		DeliveryLogRepoFactory
	}

	// DeliveryUoWFactory creates delivery workspaces.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// LogUoW manages workspaces for delivery-log flag updates.
	LogUoW interface {
		TxManager
		DeliveryLogRepoFactory
	}

	// LogUoWFactory creates log workspaces.
	LogUoWFactory interface {
		Create() LogUoW
	}

	// RouteUoW manages workspaces for route planning: it reads clients and
	// orders and writes stop orders and snapshots.
	RouteUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		RouteRepoFactory
	}

	// RouteUoWFactory creates route workspaces.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// KitchenUoW manages workspaces for dish completion, which replays the
	// production cycle over approved orders and transitions the ready ones.
	KitchenUoW interface {
		TxManager
		OrderRepoFactory
		ProductionRepoFactory
	}

	// KitchenUoWFactory creates kitchen workspaces.
	KitchenUoWFactory interface {
		Create() KitchenUoW
	}
)
