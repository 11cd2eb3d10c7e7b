package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// memLocal is an in-memory ports.LocalStore for wiring a real local-only
// coordinator under the handlers.
type memLocal struct {
	snapshot json.RawMessage
	pending  json.RawMessage
}

func (s *memLocal) LoadSnapshot() (json.RawMessage, error)     { return s.snapshot, nil }
func (s *memLocal) SaveSnapshot(payload json.RawMessage) error { s.snapshot = payload; return nil }
func (s *memLocal) LoadPending() (json.RawMessage, error)      { return s.pending, nil }
func (s *memLocal) SavePending(payload json.RawMessage) error  { s.pending = payload; return nil }

// fixture carries a loaded local-only coordinator and its workspace factory.
// Handlers exercised through it run against the real workspace commit path.
type fixture struct {
	coord   *sync.Coordinator
	factory *sync.WorkspaceFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &memLocal{})
	require.NoError(t, err)
	require.NoError(t, coord.Load(context.Background()))

	factory, err := sync.NewWorkspaceFactory(coord)
	require.NoError(t, err)

	return &fixture{coord: coord, factory: factory}
}

// The handlers each name a narrow workspace interface; the sync workspace
// satisfies all of them, so the adapters below only narrow the return type.

type planningUoWFactory struct{ f *sync.WorkspaceFactory }

func (a planningUoWFactory) Create() commands.PlanningUoW { return a.f.Create() }

type orderUoWFactory struct{ f *sync.WorkspaceFactory }

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

type clientUoWFactory struct{ f *sync.WorkspaceFactory }

func (a clientUoWFactory) Create() commands.ClientUoW { return a.f.Create() }

type kitchenUoWFactory struct{ f *sync.WorkspaceFactory }

func (a kitchenUoWFactory) Create() commands.KitchenUoW { return a.f.Create() }

type deliveryUoWFactory struct{ f *sync.WorkspaceFactory }

func (a deliveryUoWFactory) Create() commands.DeliveryUoW { return a.f.Create() }

type logUoWFactory struct{ f *sync.WorkspaceFactory }

func (a logUoWFactory) Create() commands.LogUoW { return a.f.Create() }

type routeUoWFactory struct{ f *sync.WorkspaceFactory }

func (a routeUoWFactory) Create() commands.RouteUoW { return a.f.Create() }

// futureMonday is far enough out that its edit deadline can never have
// passed while the tests run.
var futureMonday = time.Date(2123, 6, 7, 0, 0, 0, 0, time.UTC)

// pastMonday sits in a week whose deadline passed long ago.
var pastMonday = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

func mustWeekday(t *testing.T, name string) kernel.Weekday {
	t.Helper()
	day, err := kernel.NewWeekday(name)
	require.NoError(t, err)
	return day
}

func mustContact(t *testing.T, label, address string) client.Contact {
	t.Helper()
	contact, err := client.NewContact(label, address, "")
	require.NoError(t, err)
	return contact
}

func seedClient(t *testing.T, fx *fixture, name, zoneName string, contacts ...client.Contact) *client.Client {
	t.Helper()

	c, err := client.NewClient(name, "", mustWeekday(t, "Monday"), kernel.NewZone(zoneName),
		client.Weekly, 2, 3, contacts, len(contacts) == 0)
	require.NoError(t, err)

	ws := fx.factory.Create()
	ctx := context.Background()
	require.NoError(t, ws.Begin(ctx))
	require.NoError(t, ws.ClientRepository().Add(ctx, c))
	require.NoError(t, ws.Commit(ctx))
	return c
}

func mustDish(t *testing.T, name string) order.Dish {
	t.Helper()
	dish, err := order.NewDish(name, order.Protein)
	require.NoError(t, err)
	return dish
}

func seedOrder(t *testing.T, fx *fixture, clientName string, date time.Time, dishNames ...string) *order.Order {
	t.Helper()

	dishes := make([]order.Dish, 0, len(dishNames))
	for _, name := range dishNames {
		dishes = append(dishes, mustDish(t, name))
	}
	o, err := order.NewOrder(clientName, date, dishes, 2, 1)
	require.NoError(t, err)

	ws := fx.factory.Create()
	ctx := context.Background()
	require.NoError(t, ws.Begin(ctx))
	require.NoError(t, ws.OrderRepository().Add(ctx, o))
	require.NoError(t, ws.Commit(ctx))
	return o
}

// advanceOrder walks an order's status forward through the lifecycle inside
// one workspace commit.
func advanceOrder(t *testing.T, fx *fixture, key string, steps ...func(*order.Order) error) {
	t.Helper()

	ws := fx.factory.Create()
	ctx := context.Background()
	require.NoError(t, ws.Begin(ctx))

	o, err := ws.OrderRepository().Get(ctx, key)
	require.NoError(t, err)
	for _, step := range steps {
		require.NoError(t, step(o))
	}
	require.NoError(t, ws.OrderRepository().Update(ctx, o))
	require.NoError(t, ws.Commit(ctx))
}

func approve(o *order.Order) error   { return o.Approve() }
func markReady(o *order.Order) error { return o.MarkReady() }

// getOrder reads an order from the live dataset outside any workspace.
func getOrder(t *testing.T, fx *fixture, key string) *order.Order {
	t.Helper()
	ds, err := fx.coord.View()
	require.NoError(t, err)
	o, ok := ds.OrdersByKey()[key]
	require.True(t, ok, "order %s not found", key)
	return o
}
