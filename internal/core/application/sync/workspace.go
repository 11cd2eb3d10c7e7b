package sync

import (
	"context"

	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"
)

// WorkspaceFactory creates workspaces bound to one coordinator. It is the
// ports.UnitOfWorkFactory every command handler receives.
type WorkspaceFactory struct {
	coord *Coordinator
}

// NewWorkspaceFactory creates a workspace factory.
func NewWorkspaceFactory(coord *Coordinator) (*WorkspaceFactory, error) {
	if coord == nil {
		return nil, errs.NewValueIsRequiredError("coordinator")
	}
	return &WorkspaceFactory{coord: coord}, nil
}

// Create returns a fresh workspace. One workspace serves one command.
func (f *WorkspaceFactory) Create() ports.UnitOfWork {
	return &Workspace{coord: f.coord}
}

// Workspace is the unit of work over the coordinator's dataset. Begin clones
// the live dataset; the repositories mutate the clone; Commit swaps the
// clone in, persists it locally, and pushes the touched operational kinds.
// A failed command simply abandons the clone, so every guard failure leaves
// the live state untouched.
//
// Master-kind changes made through a workspace (clients, drivers) persist
// locally on commit but are never pushed by it; the coordinator's dedicated
// SaveClients/SaveDrivers/SaveMenuItems writes own the remote master path.
type Workspace struct {
	coord   *Coordinator
	ds      *Dataset
	touched map[ports.RecordKind]bool
	active  bool
}

// Begin clones the live dataset. It fails with ErrReadOnly while the
// coordinator is in read-only fallback, so commands reject up front instead
// of at commit.
func (w *Workspace) Begin(_ context.Context) error {
	if w.active {
		return errs.NewValueIsInvalidError("workspace already begun")
	}
	if !w.coord.Status().Writable {
		return ErrReadOnly
	}

	ds, err := w.coord.View()
	if err != nil {
		return err
	}
	w.ds = ds
	w.touched = make(map[ports.RecordKind]bool)
	w.active = true
	return nil
}

// Commit swaps the workspace clone in as the live dataset and persists it.
func (w *Workspace) Commit(ctx context.Context) error {
	if !w.active {
		return errs.NewValueIsInvalidError("no active workspace")
	}

	touched := make([]ports.RecordKind, 0, len(w.touched))
	for kind := range w.touched {
		touched = append(touched, kind)
	}

	if err := w.coord.commit(ctx, w.ds, touched); err != nil {
		return err
	}
	w.active = false
	w.ds = nil
	return nil
}

// Rollback abandons the clone. After a successful Commit it is a no-op,
// which makes it safe to defer.
func (w *Workspace) Rollback(_ context.Context) error {
	w.active = false
	w.ds = nil
	return nil
}

// ClientRepository returns the client repository over the workspace clone.
func (w *Workspace) ClientRepository() ports.ClientRepository {
	return &clientRepository{ds: w.ds, touch: w.touch, now: w.coord.clock}
}

// DriverRepository returns the driver repository over the workspace clone.
func (w *Workspace) DriverRepository() ports.DriverRepository {
	return &driverRepository{ds: w.ds, touch: w.touch}
}

// OrderRepository returns the order repository over the workspace clone.
func (w *Workspace) OrderRepository() ports.OrderRepository {
	return &orderRepository{ds: w.ds, touch: w.touch}
}

// DeliveryLogRepository returns the delivery-log repository over the
// workspace clone.
func (w *Workspace) DeliveryLogRepository() ports.DeliveryLogRepository {
	return &deliveryLogRepository{ds: w.ds, touch: w.touch}
}

// RouteRepository returns the route repository over the workspace clone.
func (w *Workspace) RouteRepository() ports.RouteRepository {
	return &routeRepository{ds: w.ds, touch: w.touch}
}

// ProductionRepository returns the kitchen production repository over the
// workspace clone.
func (w *Workspace) ProductionRepository() ports.ProductionRepository {
	return &productionRepository{ds: w.ds, touch: w.touch}
}

// Dataset exposes the workspace clone for read paths that need the whole
// working set at once, like stop planning.
func (w *Workspace) Dataset() *Dataset {
	return w.ds
}

func (w *Workspace) touch(kind ports.RecordKind) {
	if w.touched != nil {
		w.touched[kind] = true
	}
}
