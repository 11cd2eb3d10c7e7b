package sync_test

import (
	"context"
	"testing"
	"time"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, clientName string) *order.Order {
	t.Helper()

	dish, err := order.NewDish("Chicken", order.Protein)
	require.NoError(t, err)
	o, err := order.NewOrder(clientName, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		[]order.Dish{dish}, 2, 1)
	require.NoError(t, err)
	return o
}

func TestWorkspace_CommitSwapsDataset(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
	require.NoError(t, err)
	require.NoError(t, coord.Load(ctx))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback(ctx)

	require.NoError(t, uow.OrderRepository().Add(ctx, newTestOrder(t, "Alice")))

	live, err := coord.View()
	require.NoError(t, err)
	assert.Empty(t, live.Current, "the live dataset is untouched before commit")

	require.NoError(t, uow.Commit(ctx))

	live, err = coord.View()
	require.NoError(t, err)
	require.Len(t, live.Current, 1)
	assert.Contains(t, remote.saves, ports.KindReadyForDelivery,
		"commit pushes the touched operational kinds")
}

func TestWorkspace_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &fakeLocal{})
	require.NoError(t, err)
	require.NoError(t, coord.Load(ctx))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newTestOrder(t, "Alice")))
	require.NoError(t, uow.Rollback(ctx))

	live, err := coord.View()
	require.NoError(t, err)
	assert.Empty(t, live.Current)
}

func TestWorkspace_RollbackAfterCommitIsNoop(t *testing.T) {
	ctx := context.Background()
	coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &fakeLocal{})
	require.NoError(t, err)
	require.NoError(t, coord.Load(ctx))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newTestOrder(t, "Alice")))
	require.NoError(t, uow.Commit(ctx))
	require.NoError(t, uow.Rollback(ctx))

	live, err := coord.View()
	require.NoError(t, err)
	assert.Len(t, live.Current, 1, "deferred rollback must not undo a commit")
}

func TestWorkspace_BeginRejectsReadOnly(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.online = false
	coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
	require.NoError(t, err)
	require.NoError(t, coord.Load(ctx))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	err = factory.Create().Begin(ctx)

	assert.ErrorIs(t, err, sync.ErrReadOnly)
}

func TestWorkspace_CommitSurfacesPersistenceError(t *testing.T) {
	ctx := context.Background()
	local := &fakeLocal{}
	coord, err := sync.NewCoordinator(sync.LocalOnly, nil, local)
	require.NoError(t, err)
	require.NoError(t, coord.Load(ctx))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newTestOrder(t, "Alice")))

	local.failSave = true
	err = uow.Commit(ctx)

	assert.ErrorIs(t, err, errs.ErrPersistence)
}

func TestWorkspace_CommitWithoutBeginFails(t *testing.T) {
	coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &fakeLocal{})
	require.NoError(t, err)
	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	assert.Error(t, factory.Create().Commit(context.Background()))
}
