package services

import (
	"sort"
	"strings"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

// DishCompletionBoard tracks kitchen completion for the current production
// cycle. Completion is keyed by dish name, not by order: every order that
// references "Chicken" shares one flag, and an order becomes ready exactly
// when its remaining-dish count reaches zero. The board models this as a
// mapping from dish name to its set of dependent order keys plus a per-order
// dependency counter, so readiness is a count check rather than a rescan.
//
// The board is rebuilt from the MenuApproved orders whenever a production
// cycle starts; it is not persisted on its own.
type DishCompletionBoard struct {
	dishes    map[string]*dishState
	remaining map[string]int
}

type dishState struct {
	name       string
	completed  bool
	dependents map[string]bool
}

// NewDishCompletionBoard creates an empty board.
func NewDishCompletionBoard() *DishCompletionBoard {
	return &DishCompletionBoard{
		dishes:    make(map[string]*dishState),
		remaining: make(map[string]int),
	}
}

// Register adds a MenuApproved order's dish names to the board. Dishes
// already flagged complete in this cycle do not count toward the order's
// remaining total. Registering the same order key twice replaces the earlier
// registration.
func (b *DishCompletionBoard) Register(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	key := o.Key()
	b.Unregister(key)

	for _, name := range o.DishNames() {
		dishKey := strings.ToLower(name)
		state, ok := b.dishes[dishKey]
		if !ok {
			state = &dishState{name: name, dependents: make(map[string]bool)}
			b.dishes[dishKey] = state
		}
		state.dependents[key] = true
		if !state.completed {
			b.remaining[key]++
		}
	}

	// An order whose dishes were all completed earlier in the cycle still
	// needs an explicit zero entry so readiness checks can see it.
	if _, ok := b.remaining[key]; !ok {
		b.remaining[key] = 0
	}
	return nil
}

// Unregister removes an order from the board, e.g. when it leaves the
// production cycle.
func (b *DishCompletionBoard) Unregister(orderKey string) {
	if _, ok := b.remaining[orderKey]; !ok {
		return
	}
	delete(b.remaining, orderKey)
	for dishKey, state := range b.dishes {
		delete(state.dependents, orderKey)
		if len(state.dependents) == 0 {
			delete(b.dishes, dishKey)
		}
	}
}

// IsComplete reports whether a dish name is flagged complete.
func (b *DishCompletionBoard) IsComplete(dishName string) bool {
	state, ok := b.dishes[strings.ToLower(dishName)]
	return ok && state.completed
}

// IsOrderReady reports whether every dish the order references is complete.
func (b *DishCompletionBoard) IsOrderReady(orderKey string) bool {
	remaining, ok := b.remaining[orderKey]
	return ok && remaining == 0
}

// MarkComplete flags one dish name as complete and returns the keys of the
// orders that became fully satisfied by this flag, sorted for determinism.
// Flagging an already-complete dish is a no-op.
func (b *DishCompletionBoard) MarkComplete(dishName string) ([]string, error) {
	state, ok := b.dishes[strings.ToLower(dishName)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("dish name", dishName)
	}
	if state.completed {
		return nil, nil
	}

	state.completed = true
	ready := make([]string, 0)
	for orderKey := range state.dependents {
		b.remaining[orderKey]--
		if b.remaining[orderKey] == 0 {
			ready = append(ready, orderKey)
		}
	}
	sort.Strings(ready)
	return ready, nil
}

// CompleteAll flags every pending dish of the cycle and returns the keys of
// every order that became ready, sorted. Orders already ready before the
// call are not included.
func (b *DishCompletionBoard) CompleteAll() []string {
	ready := make([]string, 0)
	for _, state := range b.dishes {
		if state.completed {
			continue
		}
		state.completed = true
		for orderKey := range state.dependents {
			b.remaining[orderKey]--
			if b.remaining[orderKey] == 0 {
				ready = append(ready, orderKey)
			}
		}
	}
	sort.Strings(ready)
	return ready
}

// PendingDishes returns the incomplete dish names, sorted.
func (b *DishCompletionBoard) PendingDishes() []string {
	pending := make([]string, 0)
	for _, state := range b.dishes {
		if !state.completed {
			pending = append(pending, state.name)
		}
	}
	sort.Strings(pending)
	return pending
}

// Reset clears the board for a new production cycle.
func (b *DishCompletionBoard) Reset() {
	b.dishes = make(map[string]*dishState)
	b.remaining = make(map[string]int)
}
