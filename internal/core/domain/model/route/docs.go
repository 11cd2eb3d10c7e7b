// Package route contains delivery stops, derived per (client, address, date),
// and the immutable Snapshot persisted when an admin saves a route. Stop
// discovery and ordering logic lives in the domain services; this package
// only models the shapes.
package route
