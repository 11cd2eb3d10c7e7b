package ports

import (
	"context"
	"encoding/json"
)

// RecordKind names one of the dataset sections the sync layer moves between
// the local snapshot and the remote record store. Kinds are split into
// operational data, which the app pushes during routine syncs, and master
// data, which only dedicated admin writes may touch.
type RecordKind string

const (
	KindClients          RecordKind = "clients"
	KindDrivers          RecordKind = "drivers"
	KindMenuItems        RecordKind = "menuItems"
	KindReadyForDelivery RecordKind = "readyForDelivery"
	KindOrderHistory     RecordKind = "orderHistory"
	KindDeliveryLog      RecordKind = "deliveryLog"
	KindSavedRoutes      RecordKind = "savedRoutes"
	KindClientPortalData RecordKind = "clientPortalData"
	KindSettings         RecordKind = "settings"
	KindWeeks            RecordKind = "weeks"
)

// OperationalKinds lists the kinds routine syncs are allowed to push.
// Master data (clients, drivers, menu items) is excluded so that a stale
// offline snapshot can never clobber the remote roster.
func OperationalKinds() []RecordKind {
	return []RecordKind{
		KindSettings,
		KindReadyForDelivery,
		KindOrderHistory,
		KindDeliveryLog,
		KindSavedRoutes,
		KindClientPortalData,
		KindWeeks,
	}
}

// IsOperational reports whether routine syncs may push this kind.
func (k RecordKind) IsOperational() bool {
	for _, op := range OperationalKinds() {
		if k == op {
			return true
		}
	}
	return false
}

// String returns the wire name of the kind.
func (k RecordKind) String() string {
	return string(k)
}

// RecordStore is the remote system of record. Each kind is stored as one
// JSON document; the sync layer owns the encoding and treats payloads as
// opaque here. Implementations must return errors unwrapping to
// errs.ErrNotConnected when the store is unreachable so the sync layer can
// queue instead of fail.
type RecordStore interface {
	// Probe checks reachability without transferring data.
	Probe(ctx context.Context) error

	// Fetch retrieves the document for one kind. A kind that was never
	// written returns a nil payload and no error.
	Fetch(ctx context.Context, kind RecordKind) (json.RawMessage, error)

	// Save replaces the document for one kind.
	Save(ctx context.Context, kind RecordKind, payload json.RawMessage) error
}

// LocalStore is the device-local cache the app works from. It persists the
// full dataset snapshot under one fixed key and the pending-change queue
// under a second, independent key, so queued changes survive snapshot
// rewrites. Implementations must report failures as errors unwrapping to
// errs.ErrPersistence.
type LocalStore interface {
	// LoadSnapshot retrieves the cached dataset document, nil when none
	// has been saved yet.
	LoadSnapshot() (json.RawMessage, error)

	// SaveSnapshot atomically replaces the cached dataset document.
	SaveSnapshot(payload json.RawMessage) error

	// LoadPending retrieves the pending-change queue document, nil when
	// the queue is empty.
	LoadPending() (json.RawMessage, error)

	// SavePending atomically replaces the pending-change queue document.
	SavePending(payload json.RawMessage) error
}
