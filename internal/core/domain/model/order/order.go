package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrStopAlreadyCompleted is returned when completing a stop that already
	// has a completion recorded. Callers treat this as a no-op signal.
	ErrStopAlreadyCompleted = errors.New("stop is already completed")

	// ErrUndoNotLastStop is returned when an undo targets anything other
	// than the most recently completed stop of the order.
	ErrUndoNotLastStop = errors.New("only the most recently completed stop can be undone")

	// ErrNoCompletedStops is returned when undoing an order that has no
	// completed stops.
	ErrNoCompletedStops = errors.New("order has no completed stops to undo")
)

// StopCompletion records one completed delivery stop of an order. The slice
// of completions is append-only and ordered by completion time, which is what
// enforces the last-in-first-out undo discipline.
type StopCompletion struct {
	ContactLabel string
	LogEntryID   kernel.UUID
	CompletedAt  time.Time
}

// Order represents one prepared-meal order instance: one client, one delivery
// date. It is the aggregate root for the lifecycle from menu planning through
// kitchen production to delivery and archival.
//
// Order follows these invariants:
//   - Keyed by (clientName, date); at most one non-terminal order per key
//   - completedAt is set if and only if status is Delivered
//   - Status transitions follow the MenuPending -> MenuApproved ->
//     ReadyForDelivery -> Delivered machine, with Delivered ->
//     ReadyForDelivery reserved for the LIFO undo
//   - Every guard is validated before any mutation is applied
type Order struct {
	clientName string
	date       time.Time
	dishes     []Dish
	portions   int
	totalStops int

	status      Status
	completions []StopCompletion
	completedAt *time.Time

	isConstructed bool
}

// Key builds the canonical (clientName, date) order key.
func Key(clientName string, date time.Time) string {
	return fmt.Sprintf("%s|%s", strings.ToLower(strings.TrimSpace(clientName)), date.Format(kernel.DateLayout))
}

// NewOrder creates a new order in MenuPending status. totalStops is the
// client's distinct address count at planning time; a client with N addresses
// needs N independent stop completions before the order is Delivered.
func NewOrder(clientName string, date time.Time, dishes []Dish, portions, totalStops int) (*Order, error) {
	o := &Order{
		status:        MenuPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setClientName(clientName),
		o.setDate(date),
		o.setDishes(dishes),
		o.setPortions(portions),
		o.setTotalStops(totalStops),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its
// completion history. It enforces the completedAt-iff-Delivered invariant.
func RestoreOrder(
	clientName string,
	date time.Time,
	dishes []Dish,
	portions, totalStops int,
	status Status,
	completions []StopCompletion,
	completedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(clientName, date, dishes, portions, totalStops)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if (status == Delivered) != (completedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedAt",
			fmt.Errorf("completedAt must be set exactly when status is %s, got status %s", Delivered, status))
	}

	o.status = status
	o.completions = completions
	o.completedAt = completedAt
	return o, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by their (clientName, date) key.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.Key() == other.Key()
}

// Key returns the canonical (clientName, date) key of this order.
func (o *Order) Key() string {
	return Key(o.clientName, o.date)
}

// ClientName returns the owning client's name.
func (o *Order) ClientName() string {
	return o.clientName
}

// Date returns the delivery date at midnight.
func (o *Order) Date() time.Time {
	return o.date
}

// Dishes returns the referenced dishes.
func (o *Order) Dishes() []Dish {
	return o.dishes
}

// DishNames returns the distinct dish names this order depends on. Kitchen
// completion is aggregated per name, not per order.
func (o *Order) DishNames() []string {
	seen := make(map[string]bool, len(o.dishes))
	names := make([]string, 0, len(o.dishes))
	for _, d := range o.dishes {
		key := strings.ToLower(d.Name())
		if !seen[key] {
			seen[key] = true
			names = append(names, d.Name())
		}
	}
	return names
}

// Portions returns the portion count.
func (o *Order) Portions() int {
	return o.portions
}

// TotalStops returns the number of stop completions required for delivery.
func (o *Order) TotalStops() int {
	return o.totalStops
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CompletedAt returns the delivery completion time, nil unless Delivered.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Completions returns the ordered stop-completion history.
func (o *Order) Completions() []StopCompletion {
	return o.completions
}

// CompletedStopCount returns how many stops have been completed so far.
func (o *Order) CompletedStopCount() int {
	return len(o.completions)
}

// IsDelivered reports whether every stop of the order is complete.
func (o *Order) IsDelivered() bool {
	return o.status == Delivered
}

// IsStopCompleted reports whether the stop for the given contact label has a
// completion recorded.
func (o *Order) IsStopCompleted(contactLabel string) bool {
	for _, c := range o.completions {
		if strings.EqualFold(c.ContactLabel, contactLabel) {
			return true
		}
	}
	return false
}

// LastCompletion returns the most recent stop completion, if any.
func (o *Order) LastCompletion() (StopCompletion, bool) {
	if len(o.completions) == 0 {
		return StopCompletion{}, false
	}
	return o.completions[len(o.completions)-1], true
}

// Approve transitions the order from MenuPending to MenuApproved, entering
// it into the current production cycle.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReady transitions the order from MenuApproved to ReadyForDelivery.
// Callers invoke this only once the dish-completion aggregation reports every
// referenced dish name complete.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// CompleteStop records the completion of one delivery stop.
//
// Completion is idempotent per (client, date): calling it on an already
// Delivered order is a no-op, and re-completing a contact whose stop is
// already done returns ErrStopAlreadyCompleted without mutating anything.
// Once the completed-stop count reaches the total stop count the order
// transitions to Delivered and completedAt is set - in the same call, so the
// log append and the history move the caller performs around this method
// stay atomic.
//
// Returns delivered=true when this call completed the final stop.
func (o *Order) CompleteStop(contactLabel string, logEntryID kernel.UUID, at time.Time) (delivered bool, err error) {
	if o.status == Delivered {
		return false, nil
	}
	if o.status != ReadyForDelivery {
		return false, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to complete a stop", o.status))
	}
	if o.IsStopCompleted(contactLabel) {
		return false, ErrStopAlreadyCompleted
	}
	if err := logEntryID.Validate(); err != nil {
		return false, err
	}

	o.completions = append(o.completions, StopCompletion{
		ContactLabel: contactLabel,
		LogEntryID:   logEntryID,
		CompletedAt:  at,
	})

	if len(o.completions) >= o.totalStops {
		newStatus, err := o.status.Deliver()
		if err != nil {
			o.completions = o.completions[:len(o.completions)-1]
			return false, err
		}
		o.status = newStatus
		o.completedAt = &at
		return true, nil
	}

	return false, nil
}

// UndoStop reverses the most recently completed stop. Undo follows a strict
// LIFO discipline: the given log entry must identify the last completion, or
// ErrUndoNotLastStop is returned and nothing changes. If the order had
// reached Delivered it reopens to ReadyForDelivery and completedAt is
// cleared.
func (o *Order) UndoStop(logEntryID kernel.UUID) error {
	last, ok := o.LastCompletion()
	if !ok {
		return ErrNoCompletedStops
	}
	if !last.LogEntryID.IsEqual(logEntryID) {
		return ErrUndoNotLastStop
	}

	if o.status == Delivered {
		newStatus, err := o.status.Reopen()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.completedAt = nil
	}

	o.completions = o.completions[:len(o.completions)-1]
	return nil
}

func (o *Order) setClientName(clientName string) error {
	if strings.TrimSpace(clientName) == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	o.clientName = strings.TrimSpace(clientName)
	return nil
}

func (o *Order) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	y, m, d := date.Date()
	o.date = time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return nil
}

func (o *Order) setDishes(dishes []Dish) error {
	if len(dishes) == 0 {
		return errs.NewValueIsRequiredError("dishes")
	}
	for _, d := range dishes {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	o.dishes = dishes
	return nil
}

func (o *Order) setPortions(portions int) error {
	if portions <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("portions",
			fmt.Errorf("%d is not greater than 0", portions))
	}
	o.portions = portions
	return nil
}

func (o *Order) setTotalStops(totalStops int) error {
	if totalStops <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalStops",
			fmt.Errorf("%d is not greater than 0", totalStops))
	}
	o.totalStops = totalStops
	return nil
}
