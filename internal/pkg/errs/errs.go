package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap targets for all error types in this package.
// Callers classify failures with errors.Is against these values.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrDeadlinePassed    = errors.New("deadline passed")
	ErrSpacingViolated   = errors.New("date spacing violated")
	ErrNotConnected      = errors.New("remote store unreachable")
	ErrPersistence       = errors.New("persistence failed")
	ErrQueueReplay       = errors.New("pending queue replay failed")
)

// sanitize collapses newlines so multi-line values cannot break log formatting.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", " "), "\n", " ")
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates a lookup by identifier found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// DeadlinePassedError indicates an edit was attempted on or after the weekly
// lock deadline for its target delivery date.
type DeadlinePassedError struct {
	TargetDate string
	Deadline   string
}

func NewDeadlinePassedError(targetDate, deadline string) *DeadlinePassedError {
	return &DeadlinePassedError{TargetDate: targetDate, Deadline: deadline}
}

func (e *DeadlinePassedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s locked since %s", ErrDeadlinePassed, e.TargetDate, e.Deadline))
}

func (e *DeadlinePassedError) Unwrap() error {
	return ErrDeadlinePassed
}

// SpacingError indicates two adjacent delivery dates of a biweekly client were
// closer together than the required minimum number of days.
type SpacingError struct {
	First   string
	Second  string
	GapDays int
	MinDays int
}

func NewSpacingError(first, second string, gapDays, minDays int) *SpacingError {
	return &SpacingError{First: first, Second: second, GapDays: gapDays, MinDays: minDays}
}

func (e *SpacingError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s and %s are %d days apart, minimum is %d",
		ErrSpacingViolated, e.First, e.Second, e.GapDays, e.MinDays))
}

func (e *SpacingError) Unwrap() error {
	return ErrSpacingViolated
}

// ConnectivityError indicates the remote record store could not be reached.
// It signals read-only fallback, not a hard failure.
type ConnectivityError struct {
	Operation string
	Cause     error
}

func NewConnectivityError(operation string, cause error) *ConnectivityError {
	return &ConnectivityError{Operation: operation, Cause: cause}
}

func (e *ConnectivityError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrNotConnected, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrNotConnected, e.Operation))
}

func (e *ConnectivityError) Unwrap() error {
	return ErrNotConnected
}

// PersistenceError indicates the local snapshot cache could not be written.
// Unlike the remote path this is surfaced to the caller, not just logged.
type PersistenceError struct {
	Key   string
	Cause error
}

func NewPersistenceError(key string, cause error) *PersistenceError {
	return &PersistenceError{Key: key, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrPersistence, e.Key, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrPersistence, e.Key))
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// QueueReplayError indicates a pending-queue replay stopped before draining
// the queue. Failed counts the entries that did not reach the remote store;
// the whole queue is retained for the next attempt.
type QueueReplayError struct {
	Attempted int
	Failed    int
	Cause     error
}

func NewQueueReplayError(attempted, failed int, cause error) *QueueReplayError {
	return &QueueReplayError{Attempted: attempted, Failed: failed, Cause: cause}
}

func (e *QueueReplayError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %d of %d entries failed (cause: %s)",
			ErrQueueReplay, e.Failed, e.Attempted, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %d of %d entries failed", ErrQueueReplay, e.Failed, e.Attempted))
}

func (e *QueueReplayError) Unwrap() error {
	return ErrQueueReplay
}
