package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/driver"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
	"mealroute/internal/core/ports"
)

// datasetDoc is the on-disk and on-wire shape of a full dataset: one JSON
// document per record kind plus sync metadata. The same kind documents are
// pushed individually to the remote store.
type datasetDoc struct {
	Meta  metaDoc                              `json:"meta"`
	Kinds map[ports.RecordKind]json.RawMessage `json:"kinds"`
}

type metaDoc struct {
	LastSavedAt       time.Time `json:"lastSavedAt"`
	MigrationComplete bool      `json:"migrationComplete"`
}

type contactDoc struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}

type scheduledDateDoc struct {
	Date   string `json:"date"`
	Source string `json:"source"`
}

type clientDoc struct {
	Name           string             `json:"name"`
	DisplayName    string             `json:"displayName,omitempty"`
	DeliveryDay    string             `json:"deliveryDay"`
	Zone           string             `json:"zone,omitempty"`
	Frequency      string             `json:"frequency"`
	Portions       int                `json:"portions"`
	MealsPerWeek   int                `json:"mealsPerWeek"`
	Contacts       []contactDoc       `json:"contacts,omitempty"`
	ScheduledDates []scheduledDateDoc `json:"scheduledDates,omitempty"`
	Paused         bool               `json:"paused,omitempty"`
	Pickup         bool               `json:"pickup,omitempty"`
	Addressless    bool               `json:"addressless,omitempty"`
}

type driverDoc struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Zone       string `json:"zone,omitempty"`
	AccessCode string `json:"accessCode"`
}

type dishDoc struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type completionDoc struct {
	ContactLabel string    `json:"contactLabel"`
	LogEntryID   string    `json:"logEntryId"`
	CompletedAt  time.Time `json:"completedAt"`
}

type orderDoc struct {
	ClientName  string          `json:"clientName"`
	Date        string          `json:"date"`
	Dishes      []dishDoc       `json:"dishes"`
	Portions    int             `json:"portions"`
	TotalStops  int             `json:"totalStops"`
	Status      string          `json:"status"`
	Completions []completionDoc `json:"completions,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

type logEntryDoc struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	ClientName   string    `json:"clientName"`
	ContactLabel string    `json:"contactLabel"`
	Zone         string    `json:"zone,omitempty"`
	DriverName   string    `json:"driverName"`
	CompletedAt  time.Time `json:"completedAt"`
	Handoff      string    `json:"handoff"`
	PhotoRef     string    `json:"photoRef,omitempty"`
	BagsReturned bool      `json:"bagsReturned"`
	ReminderSent bool      `json:"reminderSent,omitempty"`
	Problem      string    `json:"problem,omitempty"`
	Note         string    `json:"note,omitempty"`
}

type snapshotStopDoc struct {
	Sequence    int    `json:"sequence"`
	StopKey     string `json:"stopKey"`
	DisplayName string `json:"displayName"`
	Address     string `json:"address,omitempty"`
	DishSummary string `json:"dishSummary,omitempty"`
	Portions    int    `json:"portions"`
}

type snapshotDoc struct {
	Date    string            `json:"date"`
	Zone    string            `json:"zone"`
	SavedAt time.Time         `json:"savedAt"`
	Stops   []snapshotStopDoc `json:"stops"`
}

type weeksDoc struct {
	Weeks           []WeekRecord `json:"weeks"`
	CompletedDishes []string     `json:"completedDishes,omitempty"`
}

type savedRoutesDoc struct {
	StopOrders map[string][]string `json:"stopOrders"`
	Snapshots  []snapshotDoc       `json:"snapshots"`
}

func encodeDataset(d *Dataset) (*datasetDoc, error) {
	doc := &datasetDoc{
		Meta:  metaDoc{LastSavedAt: d.LastSavedAt},
		Kinds: make(map[ports.RecordKind]json.RawMessage),
	}
	for _, kind := range allKinds() {
		payload, err := encodeKind(d, kind)
		if err != nil {
			return nil, err
		}
		doc.Kinds[kind] = payload
	}
	return doc, nil
}

func decodeDataset(doc *datasetDoc) (*Dataset, error) {
	d := NewDataset()
	d.LastSavedAt = doc.Meta.LastSavedAt
	for kind, payload := range doc.Kinds {
		if err := applyKind(d, kind, payload); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func allKinds() []ports.RecordKind {
	return []ports.RecordKind{
		ports.KindClients,
		ports.KindDrivers,
		ports.KindMenuItems,
		ports.KindReadyForDelivery,
		ports.KindOrderHistory,
		ports.KindDeliveryLog,
		ports.KindSavedRoutes,
		ports.KindClientPortalData,
		ports.KindSettings,
		ports.KindWeeks,
	}
}

// encodeKind serializes one record kind of the dataset into its wire
// document.
func encodeKind(d *Dataset, kind ports.RecordKind) (json.RawMessage, error) {
	var v any
	switch kind {
	case ports.KindClients:
		docs := make([]clientDoc, 0, len(d.Clients))
		for _, c := range d.Clients {
			docs = append(docs, encodeClient(c))
		}
		v = docs
	case ports.KindDrivers:
		docs := make([]driverDoc, 0, len(d.Drivers))
		for _, dr := range d.Drivers {
			docs = append(docs, driverDoc{
				ID:         dr.ID().String(),
				Name:       dr.Name(),
				Zone:       zoneName(dr.Zone()),
				AccessCode: dr.AccessCode(),
			})
		}
		v = docs
	case ports.KindMenuItems:
		v = d.MenuItems
	case ports.KindReadyForDelivery:
		v = encodeOrders(d.Current)
	case ports.KindOrderHistory:
		v = encodeOrders(d.History)
	case ports.KindDeliveryLog:
		docs := make([]logEntryDoc, 0, len(d.DeliveryLog))
		for _, e := range d.DeliveryLog {
			docs = append(docs, encodeLogEntry(e))
		}
		v = docs
	case ports.KindSavedRoutes:
		v = encodeSavedRoutes(d)
	case ports.KindClientPortalData:
		v = d.PortalData
	case ports.KindSettings:
		v = d.Settings
	case ports.KindWeeks:
		v = weeksDoc{Weeks: d.Weeks, CompletedDishes: d.CompletedDishes}
	default:
		return nil, fmt.Errorf("encode: unknown record kind %q", kind)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return payload, nil
}

// applyKind replaces one record kind of the dataset from its wire document.
// A nil payload leaves the kind empty.
func applyKind(d *Dataset, kind ports.RecordKind, payload json.RawMessage) error {
	if len(payload) == 0 {
		return nil
	}
	switch kind {
	case ports.KindClients:
		var docs []clientDoc
		if err := json.Unmarshal(payload, &docs); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		clients := make([]*client.Client, 0, len(docs))
		for _, doc := range docs {
			c, err := decodeClient(doc)
			if err != nil {
				return fmt.Errorf("decode %s %q: %w", kind, doc.Name, err)
			}
			clients = append(clients, c)
		}
		d.Clients = clients
	case ports.KindDrivers:
		var docs []driverDoc
		if err := json.Unmarshal(payload, &docs); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		drivers := make([]*driver.Driver, 0, len(docs))
		for _, doc := range docs {
			id, err := kernel.UUIDFromString(doc.ID)
			if err != nil {
				return fmt.Errorf("decode %s %q: %w", kind, doc.Name, err)
			}
			dr, err := driver.RestoreDriver(id, doc.Name, kernel.NewZone(doc.Zone), doc.AccessCode)
			if err != nil {
				return fmt.Errorf("decode %s %q: %w", kind, doc.Name, err)
			}
			drivers = append(drivers, dr)
		}
		d.Drivers = drivers
	case ports.KindMenuItems:
		if err := json.Unmarshal(payload, &d.MenuItems); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
	case ports.KindReadyForDelivery:
		orders, err := decodeOrders(payload, kind)
		if err != nil {
			return err
		}
		d.Current = orders
	case ports.KindOrderHistory:
		orders, err := decodeOrders(payload, kind)
		if err != nil {
			return err
		}
		d.History = orders
	case ports.KindDeliveryLog:
		var docs []logEntryDoc
		if err := json.Unmarshal(payload, &docs); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		entries := make([]*delivery.LogEntry, 0, len(docs))
		for _, doc := range docs {
			e, err := decodeLogEntry(doc)
			if err != nil {
				return fmt.Errorf("decode %s %q: %w", kind, doc.ID, err)
			}
			entries = append(entries, e)
		}
		d.DeliveryLog = entries
	case ports.KindSavedRoutes:
		if err := decodeSavedRoutes(d, payload); err != nil {
			return err
		}
	case ports.KindClientPortalData:
		if err := json.Unmarshal(payload, &d.PortalData); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		if d.PortalData == nil {
			d.PortalData = make(map[string]PortalRecord)
		}
	case ports.KindSettings:
		if err := json.Unmarshal(payload, &d.Settings); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
	case ports.KindWeeks:
		var doc weeksDoc
		if err := json.Unmarshal(payload, &doc); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		d.Weeks = doc.Weeks
		d.CompletedDishes = doc.CompletedDishes
	default:
		return fmt.Errorf("decode: unknown record kind %q", kind)
	}
	return nil
}

func encodeClient(c *client.Client) clientDoc {
	contacts := make([]contactDoc, 0, len(c.Contacts()))
	for _, contact := range c.Contacts() {
		contacts = append(contacts, contactDoc{
			Label:   contact.Label(),
			Address: contact.Address(),
			Phone:   contact.Phone(),
		})
	}
	dates := make([]scheduledDateDoc, 0, len(c.ScheduledDates()))
	for _, sd := range c.ScheduledDates() {
		dates = append(dates, scheduledDateDoc{
			Date:   sd.Date().Format(kernel.DateLayout),
			Source: sd.Source().String(),
		})
	}
	return clientDoc{
		Name:           c.Name(),
		DisplayName:    c.DisplayName(),
		DeliveryDay:    c.DeliveryDay().String(),
		Zone:           zoneName(c.Zone()),
		Frequency:      c.Frequency().String(),
		Portions:       c.Portions(),
		MealsPerWeek:   c.MealsPerWeek(),
		Contacts:       contacts,
		ScheduledDates: dates,
		Paused:         !c.IsActive(),
		Pickup:         c.IsPickup(),
		Addressless:    c.IsAddressless(),
	}
}

func decodeClient(doc clientDoc) (*client.Client, error) {
	day, err := kernel.NewWeekday(doc.DeliveryDay)
	if err != nil {
		return nil, err
	}
	frequency, err := client.FrequencyFromString(doc.Frequency)
	if err != nil {
		return nil, err
	}
	contacts := make([]client.Contact, 0, len(doc.Contacts))
	for _, cd := range doc.Contacts {
		contact, err := client.NewContact(cd.Label, cd.Address, cd.Phone)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	dates := make([]client.ScheduledDate, 0, len(doc.ScheduledDates))
	for _, sd := range doc.ScheduledDates {
		day, err := time.Parse(kernel.DateLayout, sd.Date)
		if err != nil {
			return nil, fmt.Errorf("scheduled date %q: %w", sd.Date, err)
		}
		source, err := client.DateSourceFromString(sd.Source)
		if err != nil {
			return nil, err
		}
		scheduled, err := client.NewScheduledDate(day, source)
		if err != nil {
			return nil, err
		}
		dates = append(dates, scheduled)
	}
	return client.RestoreClient(doc.Name, doc.DisplayName, day, kernel.NewZone(doc.Zone),
		frequency, doc.Portions, doc.MealsPerWeek, contacts, dates,
		doc.Paused, doc.Pickup, doc.Addressless)
}

func encodeOrders(orders []*order.Order) []orderDoc {
	docs := make([]orderDoc, 0, len(orders))
	for _, o := range orders {
		dishes := make([]dishDoc, 0, len(o.Dishes()))
		for _, dish := range o.Dishes() {
			dishes = append(dishes, dishDoc{Name: dish.Name(), Kind: dish.Kind().String()})
		}
		completions := make([]completionDoc, 0, len(o.Completions()))
		for _, c := range o.Completions() {
			completions = append(completions, completionDoc{
				ContactLabel: c.ContactLabel,
				LogEntryID:   c.LogEntryID.String(),
				CompletedAt:  c.CompletedAt,
			})
		}
		docs = append(docs, orderDoc{
			ClientName:  o.ClientName(),
			Date:        o.Date().Format(kernel.DateLayout),
			Dishes:      dishes,
			Portions:    o.Portions(),
			TotalStops:  o.TotalStops(),
			Status:      o.Status().String(),
			Completions: completions,
			CompletedAt: o.CompletedAt(),
		})
	}
	return docs
}

func decodeOrders(payload json.RawMessage, kind ports.RecordKind) ([]*order.Order, error) {
	var docs []orderDoc
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := decodeOrder(doc)
		if err != nil {
			return nil, fmt.Errorf("decode %s %q: %w", kind, doc.ClientName, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func decodeOrder(doc orderDoc) (*order.Order, error) {
	date, err := time.Parse(kernel.DateLayout, doc.Date)
	if err != nil {
		return nil, fmt.Errorf("order date %q: %w", doc.Date, err)
	}
	dishes := make([]order.Dish, 0, len(doc.Dishes))
	for _, dd := range doc.Dishes {
		kind, err := order.DishKindFromString(dd.Kind)
		if err != nil {
			return nil, err
		}
		dish, err := order.NewDish(dd.Name, kind)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	status, err := order.StatusFromString(doc.Status)
	if err != nil {
		return nil, err
	}
	completions := make([]order.StopCompletion, 0, len(doc.Completions))
	for _, cd := range doc.Completions {
		id, err := kernel.UUIDFromString(cd.LogEntryID)
		if err != nil {
			return nil, err
		}
		completions = append(completions, order.StopCompletion{
			ContactLabel: cd.ContactLabel,
			LogEntryID:   id,
			CompletedAt:  cd.CompletedAt,
		})
	}
	return order.RestoreOrder(doc.ClientName, date, dishes, doc.Portions, doc.TotalStops,
		status, completions, doc.CompletedAt)
}

func encodeLogEntry(e *delivery.LogEntry) logEntryDoc {
	problem := ""
	if e.ProblemCode().IsReported() {
		problem = e.ProblemCode().String()
	}
	return logEntryDoc{
		ID:           e.ID().String(),
		Date:         e.Date().Format(kernel.DateLayout),
		ClientName:   e.ClientName(),
		ContactLabel: e.ContactLabel(),
		Zone:         zoneName(e.Zone()),
		DriverName:   e.DriverName(),
		CompletedAt:  e.CompletedAt(),
		Handoff:      e.HandoffType().String(),
		PhotoRef:     e.PhotoRef(),
		BagsReturned: e.BagsReturned(),
		ReminderSent: e.ReminderSent(),
		Problem:      problem,
		Note:         e.Note(),
	}
}

func decodeLogEntry(doc logEntryDoc) (*delivery.LogEntry, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(kernel.DateLayout, doc.Date)
	if err != nil {
		return nil, fmt.Errorf("log date %q: %w", doc.Date, err)
	}
	handoff, err := delivery.HandoffFromString(doc.Handoff)
	if err != nil {
		return nil, err
	}
	problem, err := delivery.ProblemFromString(doc.Problem)
	if err != nil {
		return nil, err
	}
	return delivery.RestoreLogEntry(id, date, doc.ClientName, doc.ContactLabel,
		kernel.NewZone(doc.Zone), doc.DriverName, doc.CompletedAt, handoff,
		doc.PhotoRef, doc.BagsReturned, doc.ReminderSent, problem, doc.Note)
}

func encodeSavedRoutes(d *Dataset) savedRoutesDoc {
	doc := savedRoutesDoc{
		StopOrders: d.StopOrders,
		Snapshots:  make([]snapshotDoc, 0, len(d.Snapshots)),
	}
	for _, snapshot := range d.Snapshots {
		stops := make([]snapshotStopDoc, 0, len(snapshot.Stops()))
		for _, s := range snapshot.Stops() {
			stops = append(stops, snapshotStopDoc{
				Sequence:    s.Sequence,
				StopKey:     s.StopKey,
				DisplayName: s.DisplayName,
				Address:     s.Address,
				DishSummary: s.DishSummary,
				Portions:    s.Portions,
			})
		}
		doc.Snapshots = append(doc.Snapshots, snapshotDoc{
			Date:    snapshot.Date().Format(kernel.DateLayout),
			Zone:    snapshot.Zone().Name(),
			SavedAt: snapshot.SavedAt(),
			Stops:   stops,
		})
	}
	return doc
}

func decodeSavedRoutes(d *Dataset, payload json.RawMessage) error {
	var doc savedRoutesDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", ports.KindSavedRoutes, err)
	}
	if doc.StopOrders != nil {
		d.StopOrders = doc.StopOrders
	}
	for _, sd := range doc.Snapshots {
		date, err := time.Parse(kernel.DateLayout, sd.Date)
		if err != nil {
			return fmt.Errorf("decode %s date %q: %w", ports.KindSavedRoutes, sd.Date, err)
		}
		stops := make([]route.SnapshotStop, 0, len(sd.Stops))
		for _, s := range sd.Stops {
			stops = append(stops, route.SnapshotStop{
				Sequence:    s.Sequence,
				StopKey:     s.StopKey,
				DisplayName: s.DisplayName,
				Address:     s.Address,
				DishSummary: s.DishSummary,
				Portions:    s.Portions,
			})
		}
		snapshot, err := route.RestoreSnapshot(date, kernel.NewZone(sd.Zone), stops, sd.SavedAt)
		if err != nil {
			return fmt.Errorf("decode %s %q: %w", ports.KindSavedRoutes, sd.Zone, err)
		}
		d.Snapshots[snapshot.Key()] = snapshot
	}
	return nil
}

func zoneName(z kernel.Zone) string {
	if z.IsUnassigned() {
		return ""
	}
	return z.Name()
}
