package kernel

import (
	"strings"

	"mealroute/internal/pkg/errs"
)

// UnassignedZone is the bucket for clients that lack a zone or a usable
// address. Stops in this zone are visible to admins but never routed.
const UnassignedZone = "Unassigned"

// Zone is a geographic grouping of clients handled by one driver on a given
// delivery day. It is a validated name, not a reference - zones exist as
// labels on clients and drivers rather than as stored entities.
type Zone struct {
	name string
}

// NewZone creates a zone from its name. Empty or blank names resolve to the
// Unassigned bucket rather than failing; zone-less clients are legal, they
// just cannot be routed.
func NewZone(name string) Zone {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Zone{name: UnassignedZone}
	}
	return Zone{name: trimmed}
}

// Name returns the zone name.
func (z Zone) Name() string {
	if z.name == "" {
		return UnassignedZone
	}
	return z.name
}

// IsUnassigned reports whether the zone is the Unassigned bucket.
func (z Zone) IsUnassigned() bool {
	return z.Name() == UnassignedZone
}

// IsEqual compares two zones by name, case-insensitively.
func (z Zone) IsEqual(other Zone) bool {
	return strings.EqualFold(z.Name(), other.Name())
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	return z.Name()
}

// ValidateRoutable returns an error when the zone cannot appear in a route.
func (z Zone) ValidateRoutable() error {
	if z.IsUnassigned() {
		return errs.NewValueIsInvalidError("zone is unassigned")
	}
	return nil
}
