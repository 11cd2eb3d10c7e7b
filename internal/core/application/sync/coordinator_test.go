package sync_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory record store whose reachability the test
// controls.
type fakeRemote struct {
	online    bool
	docs      map[ports.RecordKind]json.RawMessage
	saves     []ports.RecordKind
	failSaves map[ports.RecordKind]error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		online: true,
		docs:   make(map[ports.RecordKind]json.RawMessage),
	}
}

func (f *fakeRemote) Probe(context.Context) error {
	if !f.online {
		return errs.NewConnectivityError("probe", nil)
	}
	return nil
}

func (f *fakeRemote) Fetch(_ context.Context, kind ports.RecordKind) (json.RawMessage, error) {
	if !f.online {
		return nil, errs.NewConnectivityError("fetch", nil)
	}
	return f.docs[kind], nil
}

func (f *fakeRemote) Save(_ context.Context, kind ports.RecordKind, payload json.RawMessage) error {
	if !f.online {
		return errs.NewConnectivityError("save", nil)
	}
	if err := f.failSaves[kind]; err != nil {
		return err
	}
	f.docs[kind] = payload
	f.saves = append(f.saves, kind)
	return nil
}

// fakeLocal is an in-memory local store.
type fakeLocal struct {
	snapshot json.RawMessage
	pending  json.RawMessage
	failSave bool
}

func (f *fakeLocal) LoadSnapshot() (json.RawMessage, error) { return f.snapshot, nil }

func (f *fakeLocal) SaveSnapshot(payload json.RawMessage) error {
	if f.failSave {
		return errs.NewPersistenceError("snapshot", errors.New("disk full"))
	}
	f.snapshot = payload
	return nil
}

func (f *fakeLocal) LoadPending() (json.RawMessage, error) { return f.pending, nil }

func (f *fakeLocal) SavePending(payload json.RawMessage) error {
	f.pending = payload
	return nil
}

func newTestClient(t *testing.T, name string) *client.Client {
	t.Helper()

	day, err := kernel.NewWeekday("Monday")
	require.NoError(t, err)
	contact, err := client.NewContact("home", "1 Main St", "")
	require.NoError(t, err)

	c, err := client.NewClient(name, "", day, kernel.NewZone("North"), client.Weekly, 2, 5,
		[]client.Contact{contact}, false)
	require.NoError(t, err)
	return c
}

func TestCoordinator_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("local-only is always writable", func(t *testing.T) {
		coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &fakeLocal{})
		require.NoError(t, err)

		require.NoError(t, coord.Load(ctx))

		status := coord.Status()
		assert.True(t, status.Writable)
		assert.False(t, status.Online)
	})

	t.Run("remote-preferred online overwrites the cache", func(t *testing.T) {
		remote := newFakeRemote()
		payload, err := json.Marshal([]map[string]any{{
			"name": "Alice", "deliveryDay": "Monday", "frequency": "weekly",
			"portions": 2, "mealsPerWeek": 5, "addressless": true,
		}})
		require.NoError(t, err)
		remote.docs[ports.KindClients] = payload
		local := &fakeLocal{}

		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, local)
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))

		status := coord.Status()
		assert.True(t, status.Online)
		assert.True(t, status.Writable)
		assert.NotEmpty(t, local.snapshot, "fetched dataset replaces the local cache")

		ds, err := coord.View()
		require.NoError(t, err)
		require.Len(t, ds.Clients, 1)
		assert.Equal(t, "Alice", ds.Clients[0].Name())
	})

	t.Run("remote-preferred unreachable falls back read-only", func(t *testing.T) {
		remote := newFakeRemote()
		remote.online = false

		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx), "unreachability is a status, not a failure")

		status := coord.Status()
		assert.False(t, status.Online)
		assert.False(t, status.Writable)
	})

	t.Run("status listeners hear the load", func(t *testing.T) {
		coord, err := sync.NewCoordinator(sync.LocalOnly, nil, &fakeLocal{})
		require.NoError(t, err)

		var seen []sync.Status
		coord.Subscribe(func(s sync.Status) { seen = append(seen, s) })
		require.NoError(t, coord.Load(ctx))

		require.Len(t, seen, 2, "once on subscribe, once on load")
		assert.True(t, seen[1].Writable)
	})
}

func TestCoordinator_Push(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*sync.Coordinator, *fakeRemote, *fakeLocal) {
		t.Helper()
		remote := newFakeRemote()
		local := &fakeLocal{}
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, local)
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))
		return coord, remote, local
	}

	t.Run("master kinds are rejected", func(t *testing.T) {
		coord, _, _ := setup(t)

		err := coord.Push(ctx, ports.KindClients)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("offline pushes queue instead of failing", func(t *testing.T) {
		coord, remote, local := setup(t)
		remote.online = false

		require.NoError(t, coord.Push(ctx, ports.KindDeliveryLog))

		status := coord.Status()
		assert.Equal(t, 1, status.PendingCount)
		assert.False(t, status.Online)
		assert.NotEmpty(t, local.pending, "queue is persisted alongside the snapshot")
	})

	t.Run("queue evicts oldest past the cap", func(t *testing.T) {
		coord, remote, _ := setup(t)
		remote.online = false

		for i := 0; i < sync.PendingQueueCap+3; i++ {
			require.NoError(t, coord.Push(ctx, ports.KindDeliveryLog))
		}

		assert.Equal(t, sync.PendingQueueCap, coord.Status().PendingCount)
	})
}

func TestCoordinator_ReplayPending(t *testing.T) {
	ctx := context.Background()

	setupWithQueue := func(t *testing.T, queued int) (*sync.Coordinator, *fakeRemote) {
		t.Helper()
		remote := newFakeRemote()
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))

		remote.online = false
		for i := 0; i < queued; i++ {
			require.NoError(t, coord.Push(ctx, ports.KindDeliveryLog))
		}
		require.Equal(t, queued, coord.Status().PendingCount)
		return coord, remote
	}

	t.Run("full success clears the queue", func(t *testing.T) {
		coord, remote := setupWithQueue(t, 3)
		remote.online = true

		require.NoError(t, coord.ReplayPending(ctx))

		status := coord.Status()
		assert.Zero(t, status.PendingCount)
		assert.True(t, status.Online)
	})

	t.Run("partial failure keeps the whole queue", func(t *testing.T) {
		coord, remote := setupWithQueue(t, 3)
		remote.online = true
		remote.failSaves = map[ports.RecordKind]error{
			ports.KindDeliveryLog: errors.New("constraint violation"),
		}

		err := coord.ReplayPending(ctx)

		require.ErrorIs(t, err, errs.ErrQueueReplay)
		var replayErr *errs.QueueReplayError
		require.ErrorAs(t, err, &replayErr)
		assert.Equal(t, 3, replayErr.Attempted)
		assert.Equal(t, 3, coord.Status().PendingCount, "no partial clearing")
	})

	t.Run("unreachable remote leaves the queue untouched", func(t *testing.T) {
		coord, _ := setupWithQueue(t, 2)

		err := coord.ReplayPending(ctx)

		require.ErrorIs(t, err, errs.ErrNotConnected)
		assert.Equal(t, 2, coord.Status().PendingCount)
	})

	t.Run("offline boot recovers once the remote is reachable", func(t *testing.T) {
		remote := newFakeRemote()
		remote.online = false
		payload, err := json.Marshal([]map[string]any{{
			"name": "Alice", "deliveryDay": "Monday", "frequency": "weekly",
			"portions": 2, "mealsPerWeek": 5, "addressless": true,
		}})
		require.NoError(t, err)
		remote.docs[ports.KindClients] = payload

		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))
		require.False(t, coord.Status().Writable, "booted into read-only fallback")

		// Still unreachable: the empty queue alone must not report success.
		require.ErrorIs(t, coord.ReplayPending(ctx), errs.ErrNotConnected)
		assert.False(t, coord.Status().Writable)

		remote.online = true
		require.NoError(t, coord.ReplayPending(ctx))

		status := coord.Status()
		assert.True(t, status.Online)
		assert.True(t, status.Writable)

		ds, err := coord.View()
		require.NoError(t, err)
		require.Len(t, ds.Clients, 1, "authoritative dataset refetched on recovery")
		assert.Equal(t, "Alice", ds.Clients[0].Name())
	})
}

func TestCoordinator_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes every kind once", func(t *testing.T) {
		remote := newFakeRemote()
		local := &fakeLocal{}
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, local)
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))

		require.NoError(t, coord.Migrate(ctx))
		assert.True(t, coord.Status().MigrationComplete)
		firstSaves := len(remote.saves)
		assert.Contains(t, remote.saves, ports.KindClients, "migration moves master data too")

		require.NoError(t, coord.Migrate(ctx))
		assert.Len(t, remote.saves, firstSaves, "second call is a no-op")
	})

	t.Run("gate survives a reload", func(t *testing.T) {
		remote := newFakeRemote()
		local := &fakeLocal{}
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, local)
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))
		require.NoError(t, coord.Migrate(ctx))

		reloaded, err := sync.NewCoordinator(sync.RemotePreferred, remote, local)
		require.NoError(t, err)
		require.NoError(t, reloaded.Load(ctx))

		assert.True(t, reloaded.Status().MigrationComplete)
	})

	t.Run("unreachable remote does not set the gate", func(t *testing.T) {
		remote := newFakeRemote()
		remote.online = false
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))

		err = coord.Migrate(ctx)

		require.ErrorIs(t, err, errs.ErrNotConnected)
		assert.False(t, coord.Status().MigrationComplete)
	})
}

func TestCoordinator_SaveClients(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the master kind directly", func(t *testing.T) {
		remote := newFakeRemote()
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{})
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))

		require.NoError(t, coord.SaveClients(ctx, []*client.Client{newTestClient(t, "Alice")}))

		assert.Contains(t, remote.saves, ports.KindClients)
		ds, err := coord.View()
		require.NoError(t, err)
		require.Len(t, ds.Clients, 1)
	})

	t.Run("offline master write fails instead of queueing", func(t *testing.T) {
		remote := newFakeRemote()
		local := &fakeLocal{}
		coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, local)
		require.NoError(t, err)
		require.NoError(t, coord.Load(ctx))
		remote.online = false

		err = coord.SaveClients(ctx, []*client.Client{newTestClient(t, "Alice")})

		require.ErrorIs(t, err, errs.ErrNotConnected)
		assert.Zero(t, coord.Status().PendingCount, "master data never enters the queue")
	})
}

func TestCoordinator_Clock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	remote := newFakeRemote()
	coord, err := sync.NewCoordinator(sync.RemotePreferred, remote, &fakeLocal{},
		sync.WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	require.NoError(t, coord.Load(ctx))

	assert.Equal(t, fixed, coord.Status().LastSyncedAt)
}
