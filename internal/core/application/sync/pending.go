package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"mealroute/internal/core/ports"
)

// PendingQueueCap bounds the pending-save queue. When an eleventh entry
// arrives the oldest is evicted; there is no backoff or prioritization, the
// bounded ring is the only backpressure mechanism.
const PendingQueueCap = 10

// PendingSave is one remote write that could not be delivered: the kind
// document it carries and when it was queued.
type PendingSave struct {
	Kind      ports.RecordKind `json:"kind"`
	Payload   json.RawMessage  `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

// pendingQueue is a bounded FIFO of undelivered remote writes. Not safe for
// concurrent use; the coordinator serializes access.
type pendingQueue struct {
	entries []PendingSave
}

// Append queues a save, evicting the oldest entry when the queue is full.
// It reports whether an eviction happened.
func (q *pendingQueue) Append(save PendingSave) bool {
	evicted := false
	if len(q.entries) >= PendingQueueCap {
		q.entries = q.entries[1:]
		evicted = true
	}
	q.entries = append(q.entries, save)
	return evicted
}

// Entries returns the queued saves, oldest first.
func (q *pendingQueue) Entries() []PendingSave {
	return q.entries
}

// Len returns the number of queued saves.
func (q *pendingQueue) Len() int {
	return len(q.entries)
}

// Clear empties the queue. Called only when a replay delivered every entry.
func (q *pendingQueue) Clear() {
	q.entries = nil
}

func (q *pendingQueue) marshal() (json.RawMessage, error) {
	if len(q.entries) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(q.entries)
	if err != nil {
		return nil, fmt.Errorf("encode pending queue: %w", err)
	}
	return payload, nil
}

func (q *pendingQueue) unmarshal(payload json.RawMessage) error {
	if len(payload) == 0 {
		q.entries = nil
		return nil
	}
	if err := json.Unmarshal(payload, &q.entries); err != nil {
		return fmt.Errorf("decode pending queue: %w", err)
	}
	return nil
}
