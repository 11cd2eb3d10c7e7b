package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/driver"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"
)

// Mode selects which store is authoritative.
type Mode int

const (
	// LocalOnly treats the local cache as authoritative. The dataset is
	// always writable and nothing is pushed to a remote store.
	LocalOnly Mode = iota

	// RemotePreferred treats the remote store as authoritative when
	// reachable. While it is unreachable the local cache is served
	// read-only and writes queue for replay.
	RemotePreferred
)

// String returns the configured name of the mode.
func (m Mode) String() string {
	if m == RemotePreferred {
		return "remote"
	}
	return "local"
}

// ModeFromString parses a configured mode name.
func ModeFromString(s string) (Mode, error) {
	switch s {
	case "local", "":
		return LocalOnly, nil
	case "remote":
		return RemotePreferred, nil
	default:
		return LocalOnly, errs.NewValueIsInvalidErrorWithCause("sync mode",
			fmt.Errorf("%q is not a valid mode", s))
	}
}

// Status is the externally visible sync state, delivered to listeners after
// every state change.
type Status struct {
	Mode              Mode
	Online            bool
	Writable          bool
	LastSyncedAt      time.Time
	PendingCount      int
	MigrationComplete bool
}

// Listener receives status updates. Listeners are called synchronously with
// the coordinator lock released; they must not call back into the
// coordinator's mutating methods.
type Listener func(Status)

// ErrReadOnly rejects writes while the coordinator is in read-only fallback:
// remote-preferred, remote unreachable. Speculative local writes in that
// state would silently diverge from the authoritative store.
var ErrReadOnly = errors.New("dataset is read-only while the remote store is unreachable")

// Coordinator reconciles the device-local cache with the remote record
// store and owns the live dataset every other component reads and writes.
// All mutations flow through workspaces created by NewWorkspace, which clone
// the dataset, apply changes, and swap the clone back in on commit.
//
// The coordinator serializes all operations with one mutex: the app has a
// single logical thread of control and remote calls are short. Replays
// triggered while another sync is in flight simply wait; the last writer
// wins, which is the accepted cross-session model.
type Coordinator struct {
	mu     stdsync.Mutex
	mode   Mode
	remote ports.RecordStore
	local  ports.LocalStore
	clock  func() time.Time

	dataset           *Dataset
	writable          bool
	online            bool
	lastSyncedAt      time.Time
	migrationComplete bool
	pending           pendingQueue
	listeners         []Listener
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		c.clock = clock
	}
}

// NewCoordinator creates a coordinator. The local store is always required;
// the remote store only in RemotePreferred mode.
func NewCoordinator(mode Mode, remote ports.RecordStore, local ports.LocalStore, opts ...Option) (*Coordinator, error) {
	if local == nil {
		return nil, errs.NewValueIsRequiredError("local store")
	}
	if mode == RemotePreferred && remote == nil {
		return nil, errs.NewValueIsRequiredError("remote store")
	}

	c := &Coordinator{
		mode:    mode,
		remote:  remote,
		local:   local,
		clock:   time.Now,
		dataset: NewDataset(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Subscribe registers a status listener. The listener immediately receives
// the current status.
func (c *Coordinator) Subscribe(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	status := c.statusLocked()
	c.mu.Unlock()
	l(status)
}

// Status returns the current sync state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Coordinator) statusLocked() Status {
	return Status{
		Mode:              c.mode,
		Online:            c.online,
		Writable:          c.writable,
		LastSyncedAt:      c.lastSyncedAt,
		PendingCount:      c.pending.Len(),
		MigrationComplete: c.migrationComplete,
	}
}

func (c *Coordinator) notify(status Status) {
	for _, l := range c.listeners {
		l(status)
	}
}

// Load initializes the dataset. In LocalOnly mode the cache is read and the
// dataset is writable. In RemotePreferred mode connectivity is probed first:
// when the remote store is reachable the full dataset is fetched and
// overwrites the local cache; when it is not, the cache is served read-only
// and no error is returned; unreachability is a status, not a failure.
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	defer func() {
		status := c.statusLocked()
		c.mu.Unlock()
		c.notify(status)
	}()

	if err := c.loadLocalLocked(); err != nil {
		return err
	}

	if c.mode == LocalOnly {
		c.writable = true
		return nil
	}

	if err := c.remote.Probe(ctx); err != nil {
		if errors.Is(err, errs.ErrNotConnected) {
			c.online = false
			c.writable = false
			return nil
		}
		return err
	}

	if err := c.fetchRemoteLocked(ctx); err != nil {
		if errors.Is(err, errs.ErrNotConnected) {
			c.online = false
			c.writable = false
			return nil
		}
		return err
	}
	return nil
}

// fetchRemoteLocked fetches every kind from the remote store, swaps the
// result in as the live dataset, and leaves the coordinator online and
// writable. The caller has already probed connectivity.
func (c *Coordinator) fetchRemoteLocked(ctx context.Context) error {
	fetched := NewDataset()
	for _, kind := range allKinds() {
		payload, err := c.remote.Fetch(ctx, kind)
		if err != nil {
			return err
		}
		if err := applyKind(fetched, kind, payload); err != nil {
			return err
		}
	}

	c.dataset = fetched
	c.online = true
	c.writable = true
	c.lastSyncedAt = c.clock()
	return c.persistLocked()
}

// loadLocalLocked reads the cached snapshot and pending queue. A missing
// snapshot yields an empty dataset.
func (c *Coordinator) loadLocalLocked() error {
	raw, err := c.local.LoadSnapshot()
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		var doc datasetDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode local snapshot: %w", err)
		}
		ds, err := decodeDataset(&doc)
		if err != nil {
			return err
		}
		c.dataset = ds
		c.migrationComplete = doc.Meta.MigrationComplete
	}

	rawPending, err := c.local.LoadPending()
	if err != nil {
		return err
	}
	return c.pending.unmarshal(rawPending)
}

// persistLocked writes the full dataset and sync metadata to the local
// cache. Cache failures surface to the caller as PersistenceError.
func (c *Coordinator) persistLocked() error {
	doc, err := encodeDataset(c.dataset)
	if err != nil {
		return err
	}
	doc.Meta.MigrationComplete = c.migrationComplete

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}
	return c.local.SaveSnapshot(raw)
}

func (c *Coordinator) savePendingLocked() error {
	raw, err := c.pending.marshal()
	if err != nil {
		return err
	}
	return c.local.SavePending(raw)
}

// View returns a deep copy of the current dataset for read paths. Queries
// working on the copy can never publish partial state.
func (c *Coordinator) View() (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dataset.Clone()
}

// Push writes the given operational kinds from the live dataset to the
// remote store. Master kinds (clients, drivers, menu items) are rejected:
// they may only move through the dedicated direct-write methods, so a bulk
// sync can never clobber admin-curated master data. Kinds that cannot reach
// the remote store are queued for replay instead of failing.
func (c *Coordinator) Push(ctx context.Context, kinds ...ports.RecordKind) error {
	c.mu.Lock()
	defer func() {
		status := c.statusLocked()
		c.mu.Unlock()
		c.notify(status)
	}()
	return c.pushLocked(ctx, kinds)
}

func (c *Coordinator) pushLocked(ctx context.Context, kinds []ports.RecordKind) error {
	for _, kind := range kinds {
		if !kind.IsOperational() {
			return errs.NewValueIsInvalidErrorWithCause("record kind",
				fmt.Errorf("%s is master data and cannot be pushed", kind))
		}
	}
	if c.mode == LocalOnly {
		return nil
	}

	for _, kind := range kinds {
		payload, err := encodeKind(c.dataset, kind)
		if err != nil {
			return err
		}
		if err := c.remote.Save(ctx, kind, payload); err != nil {
			if !errors.Is(err, errs.ErrNotConnected) {
				return err
			}
			c.online = false
			c.pending.Append(PendingSave{Kind: kind, Payload: payload, Timestamp: c.clock()})
			continue
		}
		c.online = true
		c.lastSyncedAt = c.clock()
	}
	return c.savePendingLocked()
}

// ReplayPending probes connectivity and attempts every queued save in FIFO
// order. The queue is cleared only when every entry succeeds; any failure
// keeps the whole queue intact for the next attempt and returns a
// QueueReplayError. When the coordinator is in read-only fallback, a
// successful probe also ends it: the authoritative dataset is refetched and
// the coordinator becomes writable again, so an app that booted offline
// recovers as soon as the remote store is reachable.
func (c *Coordinator) ReplayPending(ctx context.Context) error {
	c.mu.Lock()
	defer func() {
		status := c.statusLocked()
		c.mu.Unlock()
		c.notify(status)
	}()

	if c.mode == LocalOnly {
		return nil
	}
	if c.pending.Len() == 0 && c.writable {
		return nil
	}

	if err := c.remote.Probe(ctx); err != nil {
		c.online = false
		return errs.NewConnectivityError("replay pending queue", err)
	}

	if attempted := c.pending.Len(); attempted > 0 {
		for i, entry := range c.pending.Entries() {
			if err := c.remote.Save(ctx, entry.Kind, entry.Payload); err != nil {
				if errors.Is(err, errs.ErrNotConnected) {
					c.online = false
				}
				return errs.NewQueueReplayError(attempted, attempted-i, err)
			}
		}

		c.pending.Clear()
		if err := c.savePendingLocked(); err != nil {
			return err
		}
	}

	c.online = true
	c.lastSyncedAt = c.clock()

	if !c.writable {
		// Replayed entries landed first so the refetch below already
		// includes them; the fetch ends the read-only fallback.
		if err := c.fetchRemoteLocked(ctx); err != nil {
			return err
		}
	}

	// Queued writes may be stale next to the live dataset; push the
	// current operational state after a successful drain so the remote
	// store converges on what the app actually shows.
	return c.pushLocked(ctx, ports.OperationalKinds())
}

// Migrate pushes the full dataset, master kinds included, to the remote
// store exactly once, moving a legacy local-only installation onto the
// remote record store. The persisted gate makes later calls no-ops.
func (c *Coordinator) Migrate(ctx context.Context) error {
	c.mu.Lock()
	defer func() {
		status := c.statusLocked()
		c.mu.Unlock()
		c.notify(status)
	}()

	if c.migrationComplete {
		return nil
	}
	if c.remote == nil {
		return errs.NewValueIsRequiredError("remote store")
	}
	if err := c.remote.Probe(ctx); err != nil {
		c.online = false
		return errs.NewConnectivityError("migrate", err)
	}

	for _, kind := range allKinds() {
		payload, err := encodeKind(c.dataset, kind)
		if err != nil {
			return err
		}
		if err := c.remote.Save(ctx, kind, payload); err != nil {
			return errs.NewConnectivityError("migrate", err)
		}
	}

	c.migrationComplete = true
	c.online = true
	c.lastSyncedAt = c.clock()
	return c.persistLocked()
}

// SaveClients replaces the client roster. This is the dedicated master-data
// write path: it persists locally and writes the clients kind directly to
// the remote store, failing with a ConnectivityError instead of queueing so
// a stale roster is never replayed over a newer one.
func (c *Coordinator) SaveClients(ctx context.Context, clients []*client.Client) error {
	return c.saveMaster(ctx, ports.KindClients, func() {
		c.dataset.Clients = clients
	})
}

// SaveDrivers replaces the driver roster through the master-data write path.
func (c *Coordinator) SaveDrivers(ctx context.Context, drivers []*driver.Driver) error {
	return c.saveMaster(ctx, ports.KindDrivers, func() {
		c.dataset.Drivers = drivers
	})
}

// SaveMenuItems replaces the menu through the master-data write path.
func (c *Coordinator) SaveMenuItems(ctx context.Context, items []MenuItem) error {
	return c.saveMaster(ctx, ports.KindMenuItems, func() {
		c.dataset.MenuItems = items
	})
}

func (c *Coordinator) saveMaster(ctx context.Context, kind ports.RecordKind, apply func()) error {
	c.mu.Lock()
	defer func() {
		status := c.statusLocked()
		c.mu.Unlock()
		c.notify(status)
	}()

	if !c.writable {
		return ErrReadOnly
	}

	apply()
	c.dataset.LastSavedAt = c.clock()
	if err := c.persistLocked(); err != nil {
		return err
	}
	if c.mode == LocalOnly {
		return nil
	}

	payload, err := encodeKind(c.dataset, kind)
	if err != nil {
		return err
	}
	if err := c.remote.Save(ctx, kind, payload); err != nil {
		if errors.Is(err, errs.ErrNotConnected) {
			c.online = false
			return errs.NewConnectivityError(fmt.Sprintf("save %s", kind), err)
		}
		return err
	}
	c.online = true
	c.lastSyncedAt = c.clock()
	return nil
}

// commit swaps a workspace clone in as the live dataset, persists it to the
// local cache, and pushes the touched operational kinds. Called with the
// workspace's touched-kind set; the swap plus local persist is the
// all-or-nothing boundary, remote delivery may lag through the queue.
func (c *Coordinator) commit(ctx context.Context, ds *Dataset, touched []ports.RecordKind) error {
	c.mu.Lock()
	defer func() {
		status := c.statusLocked()
		c.mu.Unlock()
		c.notify(status)
	}()

	if !c.writable {
		return ErrReadOnly
	}

	ds.LastSavedAt = c.clock()
	c.dataset = ds
	if err := c.persistLocked(); err != nil {
		return err
	}

	operational := make([]ports.RecordKind, 0, len(touched))
	for _, kind := range touched {
		if kind.IsOperational() {
			operational = append(operational, kind)
		}
	}
	if len(operational) == 0 {
		return nil
	}
	return c.pushLocked(ctx, operational)
}
