package sync

import (
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/driver"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
)

// MenuItem is one master-data menu record: a dish that can be planned into
// orders. Menu items are curated by admins and synced as master data, never
// through the generic operational push.
type MenuItem struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// PortalRecord carries one client's portal state: the delivery dates the
// client picked for themselves and when they last changed them. Keyed by the
// client's slug so portal links survive display-name edits.
type PortalRecord struct {
	ClientSlug    string    `json:"clientSlug"`
	SelectedDates []string  `json:"selectedDates"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// WeekRecord marks one planning week and whether its menu has been published
// to the portal.
type WeekRecord struct {
	StartDate string `json:"startDate"`
	Published bool   `json:"published"`
	Notes     string `json:"notes,omitempty"`
}

// Settings holds the app-wide operational settings synced under the settings
// kind.
type Settings struct {
	DepotAddress   string   `json:"depotAddress,omitempty"`
	Zones          []string `json:"zones,omitempty"`
	MinSpacingDays int      `json:"minSpacingDays,omitempty"`
}

// Dataset is the complete in-memory working set of the app: every record
// kind the sync layer moves between the local snapshot and the remote store,
// held as domain aggregates. The coordinator owns the live instance; command
// handlers work on workspace clones and swap them in on commit.
type Dataset struct {
	Clients     []*client.Client
	Drivers     []*driver.Driver
	MenuItems   []MenuItem
	Current     []*order.Order
	History     []*order.Order
	DeliveryLog []*delivery.LogEntry
	StopOrders  map[string][]string
	Snapshots   map[string]*route.Snapshot
	PortalData  map[string]PortalRecord
	Settings    Settings
	Weeks       []WeekRecord

	// CompletedDishes is the current production cycle's kitchen state:
	// the dish names already cooked. Serialized with the weeks kind and
	// cleared when a cycle closes.
	CompletedDishes []string

	LastSavedAt time.Time
}

// NewDataset creates an empty dataset with all maps initialized.
func NewDataset() *Dataset {
	return &Dataset{
		StopOrders: make(map[string][]string),
		Snapshots:  make(map[string]*route.Snapshot),
		PortalData: make(map[string]PortalRecord),
	}
}

// Clone deep-copies the dataset by round-tripping it through the wire codec,
// so a workspace can mutate aggregates freely without touching the live set.
func (d *Dataset) Clone() (*Dataset, error) {
	doc, err := encodeDataset(d)
	if err != nil {
		return nil, err
	}
	return decodeDataset(doc)
}

// OrdersByKey indexes the current pool by canonical order key.
func (d *Dataset) OrdersByKey() map[string]*order.Order {
	byKey := make(map[string]*order.Order, len(d.Current))
	for _, o := range d.Current {
		byKey[o.Key()] = o
	}
	return byKey
}
