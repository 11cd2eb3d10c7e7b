package route

import (
	"fmt"
	"strings"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// ErrStopIsNotConstructed is returned when a Stop was not created through
// NewStop.
var ErrStopIsNotConstructed = errs.NewValueIsRequiredError(
	"stop must be created via NewStop constructor")

// Stop is one deliverable unit: one client, one address, one date. Stops are
// derived from clients and orders at planning time, never stored on their
// own; only saved route snapshots persist their shape.
type Stop struct {
	clientName   string
	displayName  string
	contactLabel string
	address      string
	zone         kernel.Zone
	dishSummary  string
	portions     int

	guard guard.ConstructorGuard
}

// StopKey builds the canonical (client, contact) stop key used by persisted
// route orders.
func StopKey(clientName, contactLabel string) string {
	return fmt.Sprintf("%s|%s",
		strings.ToLower(strings.TrimSpace(clientName)),
		strings.ToLower(strings.TrimSpace(contactLabel)))
}

// NewStop creates a validated stop.
func NewStop(
	clientName, displayName, contactLabel, address string,
	zone kernel.Zone,
	dishSummary string,
	portions int,
) (Stop, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return Stop{}, errs.NewValueIsRequiredError("client name")
	}
	contactLabel = strings.TrimSpace(contactLabel)
	if contactLabel == "" {
		return Stop{}, errs.NewValueIsRequiredError("contact label")
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = clientName
	}

	return Stop{
		clientName:   clientName,
		displayName:  displayName,
		contactLabel: contactLabel,
		address:      strings.TrimSpace(address),
		zone:         zone,
		dishSummary:  dishSummary,
		portions:     portions,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Key returns the canonical stop key.
func (s Stop) Key() string {
	return StopKey(s.clientName, s.contactLabel)
}

// ClientName returns the owning client's name.
func (s Stop) ClientName() string {
	return s.clientName
}

// DisplayName returns the name shown to the driver.
func (s Stop) DisplayName() string {
	return s.displayName
}

// ContactLabel identifies which of the client's addresses this stop serves.
func (s Stop) ContactLabel() string {
	return s.contactLabel
}

// Address returns the physical address; empty for unassigned-bucket stops.
func (s Stop) Address() string {
	return s.address
}

// Zone returns the stop's zone.
func (s Stop) Zone() kernel.Zone {
	return s.zone
}

// DishSummary returns the aggregated dish description for the stop.
func (s Stop) DishSummary() string {
	return s.dishSummary
}

// Portions returns the portion count delivered at this stop.
func (s Stop) Portions() int {
	return s.portions
}

// HasAddress reports whether the stop can be navigated to.
func (s Stop) HasAddress() bool {
	return s.address != ""
}

// Validate ensures the Stop was created through NewStop.
func (s Stop) Validate() error {
	return s.guard.Validate(ErrStopIsNotConstructed)
}
