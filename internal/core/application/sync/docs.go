// Package sync implements the offline-first synchronization layer: the
// coordinator reconciling the device-local cache with the remote record
// store, the bounded pending-write queue, and the workspace unit of work
// through which every command reads and writes the dataset.
//
// The design is offline-first with an explicit authority model. In
// LocalOnly mode the cache is the system of record. In RemotePreferred mode
// the remote store is authoritative when reachable; while it is not, the
// dataset is served read-only and every failed operational write queues for
// replay. Master data (clients, drivers, menu items) never moves through
// the generic push so a stale offline snapshot cannot clobber it.
package sync
