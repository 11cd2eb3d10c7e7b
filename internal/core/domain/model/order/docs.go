// Package order contains the Order aggregate: one prepared-meal order
// instance for one client and one delivery date, moving through the
// MenuPending -> MenuApproved -> ReadyForDelivery -> Delivered state machine.
// Stop completions are tracked inside the aggregate in completion order,
// which is what makes the Delivered -> ReadyForDelivery undo path a strict
// last-in-first-out operation.
package order
