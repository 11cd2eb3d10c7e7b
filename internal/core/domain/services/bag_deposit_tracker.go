package services

import (
	"sort"
	"strings"

	"mealroute/internal/core/domain/model/delivery"
)

// OutstandingBag marks a client whose most recent delivery still has the
// deposit bags out.
type OutstandingBag struct {
	ClientName   string
	LastEntry    *delivery.LogEntry
	ReminderSent bool
}

// BagDepositTracker derives outstanding bag deposits from the delivery log.
// Only each client's single most recent log entry counts: older unreturned
// entries are superseded by a newer delivery, returned or not. The tracker
// holds no state.
type BagDepositTracker struct{}

// NewBagDepositTracker creates a new BagDepositTracker instance.
func NewBagDepositTracker() BagDepositTracker {
	return BagDepositTracker{}
}

// Outstanding scans the whole delivery log and returns, per client, the most
// recent entry when its bags are still out. Results are sorted by client
// name. The reminder flag is carried through for display; nothing is
// dispatched here.
func (BagDepositTracker) Outstanding(entries []*delivery.LogEntry) []OutstandingBag {
	latest := make(map[string]*delivery.LogEntry)
	for _, e := range entries {
		if e == nil || e.Validate() != nil {
			continue
		}
		key := strings.ToLower(e.ClientName())
		if current, ok := latest[key]; !ok || e.CompletedAt().After(current.CompletedAt()) {
			latest[key] = e
		}
	}

	outstanding := make([]OutstandingBag, 0)
	for _, e := range latest {
		if !e.BagsReturned() {
			outstanding = append(outstanding, OutstandingBag{
				ClientName:   e.ClientName(),
				LastEntry:    e,
				ReminderSent: e.ReminderSent(),
			})
		}
	}
	sort.Slice(outstanding, func(i, j int) bool {
		return strings.ToLower(outstanding[i].ClientName) < strings.ToLower(outstanding[j].ClientName)
	})
	return outstanding
}
