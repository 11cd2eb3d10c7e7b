package queries_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

type memLocal struct {
	snapshot json.RawMessage
	pending  json.RawMessage
}

func (s *memLocal) LoadSnapshot() (json.RawMessage, error)     { return s.snapshot, nil }
func (s *memLocal) SaveSnapshot(payload json.RawMessage) error { s.snapshot = payload; return nil }
func (s *memLocal) LoadPending() (json.RawMessage, error)      { return s.pending, nil }
func (s *memLocal) SavePending(payload json.RawMessage) error  { s.pending = payload; return nil }

// monday is a fixed delivery date all query tests share.
var monday = time.Date(2124, 6, 5, 0, 0, 0, 0, time.UTC)

func newCoordinator(t *testing.T) (*sync.Coordinator, *sync.WorkspaceFactory) {
	t.Helper()

	coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &memLocal{})
	require.NoError(t, err)
	require.NoError(t, coord.Load(context.Background()))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)
	return coord, factory
}

// seed applies mutations to the live dataset through one workspace commit.
func seed(t *testing.T, factory *sync.WorkspaceFactory, mutate func(ctx context.Context, ws *sync.Workspace)) {
	t.Helper()

	ws, ok := factory.Create().(*sync.Workspace)
	require.True(t, ok)

	ctx := context.Background()
	require.NoError(t, ws.Begin(ctx))
	mutate(ctx, ws)
	require.NoError(t, ws.Commit(ctx))
}

func mustClient(t *testing.T, name, zoneName, address string) *client.Client {
	t.Helper()

	contact, err := client.NewContact("home", address, "")
	require.NoError(t, err)
	day, err := kernel.NewWeekday("Monday")
	require.NoError(t, err)

	c, err := client.NewClient(name, "", day, kernel.NewZone(zoneName),
		client.Weekly, 2, 3, []client.Contact{contact}, false)
	require.NoError(t, err)
	return c
}

func mustOrder(t *testing.T, clientName string, status order.Status, dishNames ...string) *order.Order {
	t.Helper()

	dishes := make([]order.Dish, 0, len(dishNames))
	for _, name := range dishNames {
		dish, err := order.NewDish(name, order.Protein)
		require.NoError(t, err)
		dishes = append(dishes, dish)
	}
	o, err := order.NewOrder(clientName, monday, dishes, 2, 1)
	require.NoError(t, err)

	if status >= order.MenuApproved {
		require.NoError(t, o.Approve())
	}
	if status >= order.ReadyForDelivery {
		require.NoError(t, o.MarkReady())
	}
	return o
}

func mustLogEntry(t *testing.T, clientName string, completedAt time.Time, bagsReturned bool) *delivery.LogEntry {
	t.Helper()

	e, err := delivery.NewLogEntry(kernel.NewUUID(), monday, clientName, "home",
		kernel.NewZone("North"), "Dave", completedAt, delivery.Hand, "", bagsReturned,
		delivery.ProblemNone, "")
	require.NoError(t, err)
	return e
}
