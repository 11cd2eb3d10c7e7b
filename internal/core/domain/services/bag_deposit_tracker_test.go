package services_test

import (
	"testing"
	"time"

	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogEntry(t *testing.T, clientName string, completedAt time.Time, bagsReturned bool) *delivery.LogEntry {
	t.Helper()

	entry, err := delivery.NewLogEntry(kernel.NewUUID(), date(2024, 6, 3), clientName, "home",
		kernel.NewZone("North"), "Dave", completedAt, delivery.Hand, "",
		bagsReturned, delivery.ProblemNone, "")
	require.NoError(t, err)
	return entry
}

func TestBagDepositTracker_Outstanding(t *testing.T) {
	tracker := services.NewBagDepositTracker()
	noon := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	t.Run("only the most recent entry per client counts", func(t *testing.T) {
		older := newLogEntry(t, "Alice", noon, false)
		newer := newLogEntry(t, "alice", noon.Add(24*time.Hour), true)

		outstanding := tracker.Outstanding([]*delivery.LogEntry{older, newer})

		assert.Empty(t, outstanding, "a later returned delivery supersedes the older open one")
	})

	t.Run("latest entry with bags out is reported", func(t *testing.T) {
		returned := newLogEntry(t, "Alice", noon, true)
		open := newLogEntry(t, "Alice", noon.Add(24*time.Hour), false)

		outstanding := tracker.Outstanding([]*delivery.LogEntry{returned, open})

		require.Len(t, outstanding, 1)
		assert.Equal(t, "Alice", outstanding[0].ClientName)
		assert.Same(t, open, outstanding[0].LastEntry)
		assert.False(t, outstanding[0].ReminderSent)
	})

	t.Run("results are sorted by client name", func(t *testing.T) {
		entries := []*delivery.LogEntry{
			newLogEntry(t, "Zoe", noon, false),
			newLogEntry(t, "Alice", noon, false),
			newLogEntry(t, "bob", noon, false),
		}

		outstanding := tracker.Outstanding(entries)

		require.Len(t, outstanding, 3)
		assert.Equal(t, "Alice", outstanding[0].ClientName)
		assert.Equal(t, "bob", outstanding[1].ClientName)
		assert.Equal(t, "Zoe", outstanding[2].ClientName)
	})

	t.Run("reminder flag is carried through", func(t *testing.T) {
		entry := newLogEntry(t, "Alice", noon, false)
		entry.SetReminderSent(true)

		outstanding := tracker.Outstanding([]*delivery.LogEntry{entry})

		require.Len(t, outstanding, 1)
		assert.True(t, outstanding[0].ReminderSent)
	})

	t.Run("nil and unconstructed entries are ignored", func(t *testing.T) {
		entries := []*delivery.LogEntry{nil, {}, newLogEntry(t, "Alice", noon, false)}

		outstanding := tracker.Outstanding(entries)

		require.Len(t, outstanding, 1)
		assert.Equal(t, "Alice", outstanding[0].ClientName)
	})

	t.Run("empty log yields nothing", func(t *testing.T) {
		assert.Empty(t, tracker.Outstanding(nil))
	})
}
