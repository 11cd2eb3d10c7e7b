package client

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

var (
	// ErrClientIsNotConstructed is returned when a Client instance was not
	// created through NewClient or RestoreClient.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

	// ErrContactIsRequired is returned when a client has no contacts and was
	// not explicitly marked address-less.
	ErrContactIsRequired = errors.New("client requires at least one contact unless marked address-less")
)

// Client represents one meal-plan subscriber. It is the aggregate root for
// everything identity- and scheduling-related: naming, zone, cadence, portion
// counts, physical addresses, and the explicit delivery dates that override
// or supplement the weekly preference.
//
// Client follows these invariants:
//   - Must have a non-empty name
//   - Must have at least one contact unless explicitly address-less
//   - Frequency must be Weekly or Biweekly
//   - Portions must be positive
//   - Can only be created through NewClient or RestoreClient
type Client struct {
	name         string
	displayName  string
	deliveryDay  kernel.Weekday
	zone         kernel.Zone
	frequency    Frequency
	portions     int
	mealsPerWeek int

	paused      bool
	pickup      bool
	addressless bool

	contacts       []Contact
	scheduledDates []ScheduledDate

	isConstructed bool
}

// NewClient creates a new Client with validation. Contacts must already be
// normalized via NormalizeContacts; pass addressless=true for the rare client
// without a physical address.
func NewClient(
	name, displayName string,
	deliveryDay kernel.Weekday,
	zone kernel.Zone,
	frequency Frequency,
	portions, mealsPerWeek int,
	contacts []Contact,
	addressless bool,
) (*Client, error) {
	c := &Client{
		displayName:   strings.TrimSpace(displayName),
		zone:          zone,
		addressless:   addressless,
		mealsPerWeek:  mealsPerWeek,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setName(name),
		c.setDeliveryDay(deliveryDay),
		c.setFrequency(frequency),
		c.setPortions(portions),
		c.setContacts(contacts),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreClient reconstructs a Client from persistence, including pause and
// pickup status and the tagged scheduled dates. Used by the record store and
// the snapshot cache; applies the same invariants as NewClient.
func RestoreClient(
	name, displayName string,
	deliveryDay kernel.Weekday,
	zone kernel.Zone,
	frequency Frequency,
	portions, mealsPerWeek int,
	contacts []Contact,
	scheduledDates []ScheduledDate,
	paused, pickup, addressless bool,
) (*Client, error) {
	c, err := NewClient(name, displayName, deliveryDay, zone, frequency, portions, mealsPerWeek, contacts, addressless)
	if err != nil {
		return nil, err
	}

	c.scheduledDates = scheduledDates
	c.paused = paused
	c.pickup = pickup
	return c, nil
}

// Validate ensures the Client was properly constructed.
func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

// IsEqual compares clients by name, the natural key.
func (c *Client) IsEqual(other *Client) bool {
	return other != nil && strings.EqualFold(c.name, other.name)
}

// Name returns the client's unique name.
func (c *Client) Name() string {
	return c.name
}

// DisplayName returns the preferred presentation name, falling back to the
// raw name when none is set.
func (c *Client) DisplayName() string {
	if c.displayName != "" {
		return c.displayName
	}
	return c.name
}

// Slug returns the case-insensitive portal identifier, derived from the
// display name when present and the raw name otherwise.
func (c *Client) Slug() string {
	return Slugify(c.DisplayName())
}

// MatchesSlug reports whether the given portal slug resolves to this client.
// Both the display-name slug and the raw-name slug are accepted.
func (c *Client) MatchesSlug(slug string) bool {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	return normalized == c.Slug() || normalized == Slugify(c.name)
}

// DeliveryDay returns the weekly delivery-day preference.
func (c *Client) DeliveryDay() kernel.Weekday {
	return c.deliveryDay
}

// Zone returns the client's zone, kernel.UnassignedZone if none was set.
func (c *Client) Zone() kernel.Zone {
	return c.zone
}

// Frequency returns the delivery cadence.
func (c *Client) Frequency() Frequency {
	return c.frequency
}

// Portions returns the portion count per delivery.
func (c *Client) Portions() int {
	return c.portions
}

// MealsPerWeek returns the number of meals in a weekly plan.
func (c *Client) MealsPerWeek() int {
	return c.mealsPerWeek
}

// IsActive reports whether the client currently receives deliveries.
func (c *Client) IsActive() bool {
	return !c.paused
}

// IsPickup reports whether the client collects orders instead of receiving
// delivery stops.
func (c *Client) IsPickup() bool {
	return c.pickup
}

// IsAddressless reports whether the client was explicitly marked as having
// no physical address.
func (c *Client) IsAddressless() bool {
	return c.addressless
}

// SetPaused pauses or resumes the client.
func (c *Client) SetPaused(paused bool) {
	c.paused = paused
}

// SetPickup marks the client as pickup-only.
func (c *Client) SetPickup(pickup bool) {
	c.pickup = pickup
}

// Contacts returns the normalized contact list.
func (c *Client) Contacts() []Contact {
	return c.contacts
}

// ContactByLabel finds a contact by its label, case-insensitively.
func (c *Client) ContactByLabel(label string) (Contact, error) {
	for _, contact := range c.contacts {
		if strings.EqualFold(contact.Label(), label) {
			return contact, nil
		}
	}
	return Contact{}, errs.NewObjectNotFoundError("contact label", label)
}

// AddressCount returns the number of distinct delivery addresses; this is the
// stop count every order of this client must reach before it is Delivered.
func (c *Client) AddressCount() int {
	distinct := make(map[string]bool, len(c.contacts))
	for _, contact := range c.contacts {
		distinct[strings.ToLower(contact.Address())] = true
	}
	return len(distinct)
}

// ScheduledDates returns the explicit delivery dates, tagged by source.
func (c *Client) ScheduledDates() []ScheduledDate {
	return c.scheduledDates
}

// AddScheduledDate records an explicit delivery date.
func (c *Client) AddScheduledDate(date ScheduledDate) {
	c.scheduledDates = append(c.scheduledDates, date)
}

// ReplaceScheduledDates swaps the full explicit date list for one source,
// keeping dates from the other source untouched.
func (c *Client) ReplaceScheduledDates(source DateSource, dates []ScheduledDate) {
	kept := make([]ScheduledDate, 0, len(c.scheduledDates)+len(dates))
	for _, d := range c.scheduledDates {
		if d.Source() != source {
			kept = append(kept, d)
		}
	}
	c.scheduledDates = append(kept, dates...)
}

// IsScheduledFor reports whether the client is due on the given date via the
// weekly preference or any explicit scheduled date. The route planner adds a
// third criterion on top of this: an existing order row for that exact date.
func (c *Client) IsScheduledFor(date time.Time) bool {
	for _, d := range c.scheduledDates {
		if d.SameDay(date) {
			return true
		}
	}
	return c.frequency == Weekly && c.deliveryDay.Matches(date)
}

func (c *Client) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	c.name = name
	return nil
}

func (c *Client) setDeliveryDay(day kernel.Weekday) error {
	if err := day.Validate(); err != nil {
		return err
	}
	c.deliveryDay = day
	return nil
}

func (c *Client) setFrequency(frequency Frequency) error {
	if err := frequency.Validate(); err != nil {
		return err
	}
	c.frequency = frequency
	return nil
}

func (c *Client) setPortions(portions int) error {
	if portions <= 0 {
		return errs.NewValueIsInvalidError("portions must be greater than 0")
	}
	c.portions = portions
	return nil
}

func (c *Client) setContacts(contacts []Contact) error {
	for _, contact := range contacts {
		if err := contact.Validate(); err != nil {
			return err
		}
	}
	if len(contacts) == 0 && !c.addressless {
		return ErrContactIsRequired
	}
	c.contacts = contacts
	return nil
}

// Slugify lowercases a name and collapses every run of non-alphanumeric
// characters into a single hyphen. "Anna K." and "anna k" produce the same
// slug, which is what makes portal resolution case-insensitive.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
