package sync

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/driver"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"
)

// The workspace repositories operate on the workspace's cloned dataset and
// record which kinds a command touched, so commit knows what to push. They
// are plain in-memory implementations; durability comes from the
// coordinator's commit.

type clientRepository struct {
	ds    *Dataset
	touch func(ports.RecordKind)
	now   func() time.Time
}

func (r *clientRepository) Add(_ context.Context, aggregate *client.Client) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	for _, existing := range r.ds.Clients {
		if strings.EqualFold(existing.Name(), aggregate.Name()) {
			return errs.NewValueIsInvalidErrorWithCause("client",
				fmt.Errorf("client %q already exists", aggregate.Name()))
		}
	}
	r.ds.Clients = append(r.ds.Clients, aggregate)
	r.touch(ports.KindClients)
	return nil
}

func (r *clientRepository) Update(_ context.Context, aggregate *client.Client) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	for i, existing := range r.ds.Clients {
		if strings.EqualFold(existing.Name(), aggregate.Name()) {
			r.ds.Clients[i] = aggregate
			r.touch(ports.KindClients)
			r.syncPortalRecord(aggregate)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("client", aggregate.Name())
}

// syncPortalRecord mirrors the client's self-selected dates into the portal
// dataset so the portal view stays consistent with the aggregate.
func (r *clientRepository) syncPortalRecord(aggregate *client.Client) {
	selected := make([]string, 0)
	for _, d := range aggregate.ScheduledDates() {
		if d.Source() == client.SelfSelected {
			selected = append(selected, d.Date().Format(kernel.DateLayout))
		}
	}
	sort.Strings(selected)

	slug := aggregate.Slug()
	existing, ok := r.ds.PortalData[slug]
	if ok && slicesEqual(existing.SelectedDates, selected) {
		return
	}
	if len(selected) == 0 && !ok {
		return
	}

	r.ds.PortalData[slug] = PortalRecord{
		ClientSlug:    slug,
		SelectedDates: selected,
		UpdatedAt:     r.now(),
	}
	r.touch(ports.KindClientPortalData)
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *clientRepository) GetByName(_ context.Context, name string) (*client.Client, error) {
	for _, c := range r.ds.Clients {
		if strings.EqualFold(c.Name(), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("client", name)
}

func (r *clientRepository) GetBySlug(_ context.Context, slug string) (*client.Client, error) {
	for _, c := range r.ds.Clients {
		if c.MatchesSlug(slug) {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("client", slug)
}

func (r *clientRepository) GetAll(_ context.Context) ([]*client.Client, error) {
	return append([]*client.Client(nil), r.ds.Clients...), nil
}

type driverRepository struct {
	ds    *Dataset
	touch func(ports.RecordKind)
}

func (r *driverRepository) Add(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	for _, existing := range r.ds.Drivers {
		if existing.ID().IsEqual(aggregate.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("driver",
				fmt.Errorf("driver %s already exists", aggregate.ID()))
		}
	}
	r.ds.Drivers = append(r.ds.Drivers, aggregate)
	r.touch(ports.KindDrivers)
	return nil
}

func (r *driverRepository) Update(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	for i, existing := range r.ds.Drivers {
		if existing.ID().IsEqual(aggregate.ID()) {
			r.ds.Drivers[i] = aggregate
			r.touch(ports.KindDrivers)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
}

func (r *driverRepository) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	for _, d := range r.ds.Drivers {
		if d.ID().IsEqual(id) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("driver", id.String())
}

func (r *driverRepository) GetByName(_ context.Context, name string) (*driver.Driver, error) {
	for _, d := range r.ds.Drivers {
		if strings.EqualFold(d.Name(), strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("driver", name)
}

func (r *driverRepository) GetAll(_ context.Context) ([]*driver.Driver, error) {
	return append([]*driver.Driver(nil), r.ds.Drivers...), nil
}

type orderRepository struct {
	ds    *Dataset
	touch func(ports.RecordKind)
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := aggregate.Key()
	for _, existing := range r.ds.Current {
		if existing.Key() == key {
			return errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("order %q already exists", key))
		}
	}
	r.ds.Current = append(r.ds.Current, aggregate)
	r.touch(ports.KindReadyForDelivery)
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := aggregate.Key()
	for i, existing := range r.ds.Current {
		if existing.Key() == key {
			r.ds.Current[i] = aggregate
			r.touch(ports.KindReadyForDelivery)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("order", key)
}

func (r *orderRepository) Get(_ context.Context, key string) (*order.Order, error) {
	for _, o := range r.ds.Current {
		if o.Key() == key {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", key)
}

func (r *orderRepository) GetAllForDate(_ context.Context, date time.Time) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)
	for _, o := range r.ds.Current {
		if sameDay(o.Date(), date) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *orderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)
	for _, o := range r.ds.Current {
		if o.Status() == status {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *orderRepository) Archive(_ context.Context, key string) error {
	for i, o := range r.ds.Current {
		if o.Key() != key {
			continue
		}
		if !o.IsDelivered() {
			return errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("order %q is %s, only delivered orders archive", key, o.Status()))
		}
		r.ds.Current = append(r.ds.Current[:i], r.ds.Current[i+1:]...)
		r.ds.History = append(r.ds.History, o)
		r.touch(ports.KindReadyForDelivery)
		r.touch(ports.KindOrderHistory)
		return nil
	}
	return errs.NewObjectNotFoundError("order", key)
}

func (r *orderRepository) Unarchive(_ context.Context, key string) error {
	for i, o := range r.ds.History {
		if o.Key() != key {
			continue
		}
		r.ds.History = append(r.ds.History[:i], r.ds.History[i+1:]...)
		r.ds.Current = append(r.ds.Current, o)
		r.touch(ports.KindReadyForDelivery)
		r.touch(ports.KindOrderHistory)
		return nil
	}
	return errs.NewObjectNotFoundError("order", key)
}

func (r *orderRepository) GetHistoryForClient(_ context.Context, clientName string) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)
	for _, o := range r.ds.History {
		if strings.EqualFold(o.ClientName(), strings.TrimSpace(clientName)) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Date().After(orders[j].Date())
	})
	return orders, nil
}

type deliveryLogRepository struct {
	ds    *Dataset
	touch func(ports.RecordKind)
}

func (r *deliveryLogRepository) Append(_ context.Context, entry *delivery.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	for _, existing := range r.ds.DeliveryLog {
		if existing.ID().IsEqual(entry.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("log entry",
				fmt.Errorf("entry %s already exists", entry.ID()))
		}
	}
	r.ds.DeliveryLog = append(r.ds.DeliveryLog, entry)
	r.touch(ports.KindDeliveryLog)
	return nil
}

func (r *deliveryLogRepository) Update(_ context.Context, entry *delivery.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	for i, existing := range r.ds.DeliveryLog {
		if existing.ID().IsEqual(entry.ID()) {
			r.ds.DeliveryLog[i] = entry
			r.touch(ports.KindDeliveryLog)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("log entry", entry.ID().String())
}

func (r *deliveryLogRepository) Remove(_ context.Context, id kernel.UUID) error {
	for i, existing := range r.ds.DeliveryLog {
		if existing.ID().IsEqual(id) {
			r.ds.DeliveryLog = append(r.ds.DeliveryLog[:i], r.ds.DeliveryLog[i+1:]...)
			r.touch(ports.KindDeliveryLog)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("log entry", id.String())
}

func (r *deliveryLogRepository) Get(_ context.Context, id kernel.UUID) (*delivery.LogEntry, error) {
	for _, e := range r.ds.DeliveryLog {
		if e.ID().IsEqual(id) {
			return e, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("log entry", id.String())
}

func (r *deliveryLogRepository) GetAll(_ context.Context) ([]*delivery.LogEntry, error) {
	return append([]*delivery.LogEntry(nil), r.ds.DeliveryLog...), nil
}

func (r *deliveryLogRepository) GetAllForDate(_ context.Context, date time.Time) ([]*delivery.LogEntry, error) {
	entries := make([]*delivery.LogEntry, 0)
	for _, e := range r.ds.DeliveryLog {
		if sameDay(e.Date(), date) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type routeRepository struct {
	ds    *Dataset
	touch func(ports.RecordKind)
}

func (r *routeRepository) SaveStopOrder(_ context.Context, key string, stopKeys []string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("route key")
	}
	r.ds.StopOrders[key] = append([]string(nil), stopKeys...)
	r.touch(ports.KindSavedRoutes)
	return nil
}

func (r *routeRepository) GetStopOrder(_ context.Context, key string) ([]string, error) {
	return append([]string(nil), r.ds.StopOrders[key]...), nil
}

func (r *routeRepository) SaveSnapshot(_ context.Context, snapshot *route.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	r.ds.Snapshots[snapshot.Key()] = snapshot
	r.touch(ports.KindSavedRoutes)
	return nil
}

func (r *routeRepository) GetSnapshot(_ context.Context, key string) (*route.Snapshot, error) {
	snapshot, ok := r.ds.Snapshots[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("route snapshot", key)
	}
	return snapshot, nil
}

func (r *routeRepository) GetAllSnapshots(_ context.Context) ([]*route.Snapshot, error) {
	keys := make([]string, 0, len(r.ds.Snapshots))
	for key := range r.ds.Snapshots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	snapshots := make([]*route.Snapshot, 0, len(keys))
	for _, key := range keys {
		snapshots = append(snapshots, r.ds.Snapshots[key])
	}
	return snapshots, nil
}

type productionRepository struct {
	ds    *Dataset
	touch func(ports.RecordKind)
}

func (r *productionRepository) GetCompletedDishes(_ context.Context) ([]string, error) {
	return append([]string(nil), r.ds.CompletedDishes...), nil
}

func (r *productionRepository) SaveCompletedDishes(_ context.Context, dishes []string) error {
	r.ds.CompletedDishes = append([]string(nil), dishes...)
	r.touch(ports.KindWeeks)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
