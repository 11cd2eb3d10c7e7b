package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/model/route"
	"mealroute/internal/pkg/errs"
)

// ErrNoAddresses is returned when building a navigation link for a stop list
// without a single address.
var ErrNoAddresses = errs.NewValueIsRequiredError("at least one stop with an address")

// StopPlanner discovers, orders, and filters delivery stops for one zone and
// date. It is a pure service: all inputs are passed in, persistence of the
// resulting orders and snapshots is the caller's concern.
type StopPlanner struct{}

// NewStopPlanner creates a new StopPlanner instance.
func NewStopPlanner() StopPlanner {
	return StopPlanner{}
}

// BuildStops selects the clients deliverable in the given zone on the given
// date and expands each into one stop per unique address.
//
// A client is selected when it is active, not pickup-only, and any of:
//   - the weekly delivery-day preference matches the date
//   - an explicit scheduled date (admin-set or self-selected) matches
//   - an order row exists for that exact (client, date) key
//
// Clients without a zone or without any address fall into the Unassigned
// bucket: pass kernel.NewZone("") to collect them. Stops inherit the dish
// summary and portions of the client's order for the date when one exists.
func (StopPlanner) BuildStops(
	zone kernel.Zone,
	date time.Time,
	clients []*client.Client,
	ordersByKey map[string]*order.Order,
) ([]route.Stop, error) {
	stops := make([]route.Stop, 0)

	for _, c := range clients {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsActive() || c.IsPickup() {
			continue
		}

		o := ordersByKey[order.Key(c.Name(), date)]
		if !c.IsScheduledFor(date) && o == nil {
			continue
		}

		unassigned := c.Zone().IsUnassigned() || (len(c.Contacts()) == 0 && !c.IsAddressless())
		if unassigned != zone.IsUnassigned() {
			continue
		}
		if !unassigned && !c.Zone().IsEqual(zone) {
			continue
		}

		summary, portions := stopSummary(c, o)

		if len(c.Contacts()) == 0 {
			stop, err := route.NewStop(c.Name(), c.DisplayName(), client.DefaultContactLabel, "",
				kernel.NewZone(""), summary, portions)
			if err != nil {
				return nil, err
			}
			stops = append(stops, stop)
			continue
		}

		seenAddresses := make(map[string]bool)
		for _, contact := range c.Contacts() {
			addrKey := strings.ToLower(contact.Address())
			if seenAddresses[addrKey] {
				continue
			}
			seenAddresses[addrKey] = true

			stopZone := zone
			if unassigned {
				stopZone = kernel.NewZone("")
			}
			stop, err := route.NewStop(c.Name(), c.DisplayName(), contact.Label(), contact.Address(),
				stopZone, summary, portions)
			if err != nil {
				return nil, err
			}
			stops = append(stops, stop)
		}
	}

	return stops, nil
}

func stopSummary(c *client.Client, o *order.Order) (string, int) {
	if o == nil {
		return "", c.Portions()
	}
	return strings.Join(o.DishNames(), ", "), o.Portions()
}

// MergeKeyOrder reconciles a previously persisted explicit key order with
// the currently discovered keys. Saved keys that no longer match a current
// key are ignored rather than pruned, and current keys missing from the
// saved order are appended at the end in discovery order. The persisted
// order is therefore tolerant of drift in both directions.
func (StopPlanner) MergeKeyOrder(savedOrder, discovered []string) []string {
	current := make(map[string]bool, len(discovered))
	for _, key := range discovered {
		current[key] = true
	}

	merged := make([]string, 0, len(discovered))
	placed := make(map[string]bool, len(discovered))
	for _, key := range savedOrder {
		if current[key] && !placed[key] {
			merged = append(merged, key)
			placed[key] = true
		}
	}
	for _, key := range discovered {
		if !placed[key] {
			merged = append(merged, key)
		}
	}
	return merged
}

// OrderedStops applies a previously persisted explicit key order to the
// discovered stops, using the same drift-tolerant merge as MergeKeyOrder.
func (p StopPlanner) OrderedStops(stops []route.Stop, savedOrder []string) []route.Stop {
	byKey := make(map[string]int, len(stops))
	keys := make([]string, 0, len(stops))
	for i, s := range stops {
		byKey[s.Key()] = i
		keys = append(keys, s.Key())
	}

	merged := p.MergeKeyOrder(savedOrder, keys)
	ordered := make([]route.Stop, 0, len(merged))
	for _, key := range merged {
		ordered = append(ordered, stops[byKey[key]])
	}
	return ordered
}

// MoveStop removes fromKey from the current key order and reinserts it at
// toKey's position, returning the full new key list for wholesale
// persistence. This is the transport-independent form of drag reordering.
func (StopPlanner) MoveStop(currentOrder []string, fromKey, toKey string) ([]string, error) {
	fromIdx, toIdx := -1, -1
	for i, key := range currentOrder {
		if key == fromKey {
			fromIdx = i
		}
		if key == toKey {
			toIdx = i
		}
	}
	if fromIdx < 0 {
		return nil, errs.NewObjectNotFoundError("stop key", fromKey)
	}
	if toIdx < 0 {
		return nil, errs.NewObjectNotFoundError("stop key", toKey)
	}
	if fromIdx == toIdx {
		return append([]string(nil), currentOrder...), nil
	}

	without := make([]string, 0, len(currentOrder)-1)
	without = append(without, currentOrder[:fromIdx]...)
	without = append(without, currentOrder[fromIdx+1:]...)

	insertAt := 0
	for i, key := range without {
		if key == toKey {
			insertAt = i
			break
		}
	}
	if fromIdx < toIdx {
		insertAt++
	}

	result := make([]string, 0, len(currentOrder))
	result = append(result, without[:insertAt]...)
	result = append(result, fromKey)
	result = append(result, without[insertAt:]...)
	return result, nil
}

// FilterRoutable keeps the stops whose order for the given date has reached
// a routable status (MenuApproved, ReadyForDelivery, or Delivered). Stops
// without an order row are dropped.
func (StopPlanner) FilterRoutable(
	stops []route.Stop,
	date time.Time,
	ordersByKey map[string]*order.Order,
) []route.Stop {
	routable := make([]route.Stop, 0, len(stops))
	for _, s := range stops {
		o := ordersByKey[order.Key(s.ClientName(), date)]
		if o != nil && o.Status().IsRoutable() {
			routable = append(routable, s)
		}
	}
	return routable
}

// NavigationLink builds an external-maps directions URL visiting the stops in
// order, optionally starting from a depot address. Stops without addresses
// are skipped; if none remain, ErrNoAddresses is returned.
func (StopPlanner) NavigationLink(stops []route.Stop, depotAddress string) (string, error) {
	addresses := make([]string, 0, len(stops))
	for _, s := range stops {
		if s.HasAddress() {
			addresses = append(addresses, s.Address())
		}
	}
	return MapsLink(addresses, depotAddress)
}

// MapsLink builds the directions URL from raw addresses, for callers holding
// read models rather than stops.
func MapsLink(addresses []string, depotAddress string) (string, error) {
	segments := make([]string, 0, len(addresses)+1)
	if depot := strings.TrimSpace(depotAddress); depot != "" {
		segments = append(segments, url.PathEscape(depot))
	}

	withAddress := 0
	for _, address := range addresses {
		if strings.TrimSpace(address) == "" {
			continue
		}
		segments = append(segments, url.PathEscape(address))
		withAddress++
	}
	if withAddress == 0 {
		return "", ErrNoAddresses
	}

	return fmt.Sprintf("https://www.google.com/maps/dir/%s", strings.Join(segments, "/")), nil
}
