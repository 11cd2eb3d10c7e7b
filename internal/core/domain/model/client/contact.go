package client

import (
	"strings"

	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a Contact was not created
// through NewContact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError(
	"contact must be created via NewContact constructor")

// DefaultContactLabel is assigned when a legacy record carries an address
// without naming it.
const DefaultContactLabel = "home"

// Contact is one physical delivery address of a client. A client with N
// contacts yields N delivery stops per date, each requiring independent
// completion. Contacts are identified within a client by their label.
type Contact struct {
	label   string
	address string
	phone   string

	guard guard.ConstructorGuard
}

// NewContact creates a validated contact. The address is required; a blank
// label falls back to DefaultContactLabel.
func NewContact(label, address, phone string) (Contact, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact address")
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultContactLabel
	}

	return Contact{
		label:   label,
		address: address,
		phone:   strings.TrimSpace(phone),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Label returns the contact identity within its client.
func (c Contact) Label() string {
	return c.label
}

// Address returns the physical delivery address.
func (c Contact) Address() string {
	return c.address
}

// Phone returns the optional phone number.
func (c Contact) Phone() string {
	return c.phone
}

// IsEqual compares contacts by label, case-insensitively.
func (c Contact) IsEqual(other Contact) bool {
	return strings.EqualFold(c.label, other.label)
}

// Validate ensures the Contact was created through NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// NormalizeContacts folds the two legacy client shapes - a single inline
// contact or a list of contacts - into one representation. Duplicate labels
// keep the first occurrence; later entries with the same label are dropped.
// This runs once at the data-ingestion boundary so call sites never branch
// on the legacy shape again.
func NormalizeContacts(single *Contact, list []Contact) []Contact {
	seen := make(map[string]bool)
	normalized := make([]Contact, 0, len(list)+1)

	appendContact := func(c Contact) {
		key := strings.ToLower(c.label)
		if c.guard.Validate(nil) != nil || seen[key] {
			return
		}
		seen[key] = true
		normalized = append(normalized, c)
	}

	if single != nil {
		appendContact(*single)
	}
	for _, c := range list {
		appendContact(c)
	}

	return normalized
}
