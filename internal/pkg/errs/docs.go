// Package errs provides standardized error types for the meal-delivery
// coordination application. It implements a consistent pattern for error
// creation, formatting, and unwrapping that is used throughout the
// application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Besides the generic validation errors the package defines the failure
// modes specific to this domain: DeadlinePassedError and SpacingError for
// date-policy violations, ConnectivityError for remote-store outages,
// PersistenceError for local cache write failures, and QueueReplayError
// for partial pending-queue replays.
package errs
