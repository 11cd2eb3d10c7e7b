package order

import (
	"fmt"
	"strings"

	"mealroute/internal/pkg/errs"
)

// Status represents the lifecycle state of an order instance.
// It implements a state machine with defined transitions to ensure orders
// follow the correct production and delivery workflow.
//
// State transitions:
//
//	MenuPending ──> MenuApproved ──> ReadyForDelivery <──> Delivered
//
// The Delivered -> ReadyForDelivery edge is the undo path: only the most
// recently completed stop of an order may be reversed.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// MenuPending is the initial status when a menu is planned for a client
	// and date. The order is waiting for admin approval.
	MenuPending

	// MenuApproved indicates the menu was approved and the order has entered
	// the current production cycle. It leaves this status only when every
	// dish name it references is flagged complete.
	MenuApproved

	// ReadyForDelivery indicates the kitchen finished every referenced dish.
	// The order is routable and waits for its stops to be completed.
	ReadyForDelivery

	// Delivered indicates every stop of the order was completed. The order
	// is moved from the ready collection into history at this point.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		MenuPending:      "MenuPending",
		MenuApproved:     "MenuApproved",
		ReadyForDelivery: "ReadyForDelivery",
		Delivered:        "Delivered",
	}
}

// StatusFromString parses a persisted status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are MenuPending, MenuApproved, ReadyForDelivery, Delivered.
func (s Status) Validate() error {
	if s < MenuPending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsRoutable reports whether a stop with this status may appear in a saved
// route. Orders qualify once the kitchen has at least approved the menu.
func (s Status) IsRoutable() bool {
	return s == MenuApproved || s == ReadyForDelivery || s == Delivered
}

// Approve transitions the status to MenuApproved.
//
// Valid transitions:
//   - MenuPending -> MenuApproved
func (s Status) Approve() (Status, error) {
	if s != MenuPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to approve", s.String()),
		)
	}
	return MenuApproved, nil
}

// MarkReady transitions the status to ReadyForDelivery once the production
// cycle has completed every referenced dish.
//
// Valid transitions:
//   - MenuApproved -> ReadyForDelivery
func (s Status) MarkReady() (Status, error) {
	if s != MenuApproved {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to mark ready", s.String()),
		)
	}
	return ReadyForDelivery, nil
}

// Deliver transitions the status to Delivered once the completed-stop count
// reaches the order's total stop count.
//
// Valid transitions:
//   - ReadyForDelivery -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != ReadyForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// Reopen reverses a delivery, transitioning Delivered back to
// ReadyForDelivery. This is the undo path and only applies to the most
// recently completed stop.
//
// Valid transitions:
//   - Delivered -> ReadyForDelivery
func (s Status) Reopen() (Status, error) {
	if s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to reopen", s.String()),
		)
	}
	return ReadyForDelivery, nil
}
