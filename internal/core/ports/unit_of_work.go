package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or
// command. This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and tracks aggregate changes. Client code must
// explicitly manage the transaction lifecycle:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil { ... }
//	defer uow.Rollback(ctx)
//	// ... operate on uow repositories
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it after a
	// successful Commit is a no-op, which makes it safe to defer.
	Rollback(ctx context.Context) error

	// ClientRepository returns a ClientRepository bound to the current
	// transaction.
	ClientRepository() ClientRepository

	// DriverRepository returns a DriverRepository bound to the current
	// transaction.
	DriverRepository() DriverRepository

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// DeliveryLogRepository returns a DeliveryLogRepository bound to the
	// current transaction.
	DeliveryLogRepository() DeliveryLogRepository

	// RouteRepository returns a RouteRepository bound to the current
	// transaction.
	RouteRepository() RouteRepository

	// ProductionRepository returns a ProductionRepository bound to the
	// current transaction.
	ProductionRepository() ProductionRepository
}
