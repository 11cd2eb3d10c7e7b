// Package delivery contains the immutable DeliveryLogEntry record of a
// completed stop, its handoff type, and the problem-reporting vocabulary.
// The evidence guards live here: porch drops need a photo unless a problem
// is reported, and an "other" problem needs a note.
package delivery
