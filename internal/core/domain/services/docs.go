// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the meal-delivery system.
// It implements business workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - DeadlinePolicy: pure date policy - weekly edit deadlines, biweekly spacing, candidate-date enumeration
//   - DishCompletionBoard: shared per-dish-name kitchen completion state with dependency-count readiness
//   - StopPlanner: stop discovery, persisted ordering, reorder commands, and navigation links
//   - BagDepositTracker: outstanding bag-deposit detection from the delivery log
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
