// Package driver contains the Driver aggregate. Drivers execute delivery
// routes for a zone and authenticate with a plain access code; the roster is
// admin-curated master data and this system deliberately stores the code
// as-is rather than hashing it.
package driver

import (
	"crypto/subtle"
	"errors"
	"strings"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

// ErrDriverIsNotConstructed is returned when a Driver instance was not
// created through NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver represents one delivery driver on the roster.
type Driver struct {
	id         kernel.UUID
	name       string
	zone       kernel.Zone
	accessCode string

	isConstructed bool
}

// NewDriver creates a validated driver.
func NewDriver(id kernel.UUID, name string, zone kernel.Zone, accessCode string) (*Driver, error) {
	d := &Driver{
		zone:          zone,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setAccessCode(accessCode),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(id kernel.UUID, name string, zone kernel.Zone, accessCode string) (*Driver, error) {
	return NewDriver(id, name, zone, accessCode)
}

// Validate ensures the Driver was properly constructed.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Zone returns the zone the driver covers.
func (d *Driver) Zone() kernel.Zone {
	return d.zone
}

// AccessCode returns the plain roster access code.
func (d *Driver) AccessCode() string {
	return d.accessCode
}

// Authenticate compares a presented access code against the roster field.
// Comparison is constant-time; the code itself is stored and compared in
// plain text, which is an accepted limitation of the roster design.
func (d *Driver) Authenticate(code string) bool {
	return subtle.ConstantTimeCompare([]byte(d.accessCode), []byte(code)) == 1
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	d.name = name
	return nil
}

func (d *Driver) setAccessCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("driver access code")
	}
	d.accessCode = code
	return nil
}
