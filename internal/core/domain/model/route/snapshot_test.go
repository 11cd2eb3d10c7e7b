package route_test

import (
	"testing"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	testAt   = time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
)

func mustStop(t *testing.T, clientName, contactLabel, address string) route.Stop {
	t.Helper()
	s, err := route.NewStop(clientName, "", contactLabel, address,
		kernel.NewZone("North"), "Chicken, Rice", 2)
	require.NoError(t, err)
	return s
}

func TestStopKey(t *testing.T) {
	assert.Equal(t, "anna|home", route.StopKey("Anna", "Home"))
	assert.Equal(t, "anna|home", route.StopKey(" anna ", " home "))
}

func TestNewStop(t *testing.T) {
	t.Run("display name falls back to client name", func(t *testing.T) {
		s := mustStop(t, "anna", "home", "12 Oak Street")

		require.NoError(t, s.Validate())
		assert.Equal(t, "anna", s.DisplayName())
		assert.Equal(t, "anna|home", s.Key())
		assert.True(t, s.HasAddress())
	})

	t.Run("address may be empty for unassigned stops", func(t *testing.T) {
		s := mustStop(t, "anna", "home", "")
		assert.False(t, s.HasAddress())
	})

	t.Run("requires client name and contact label", func(t *testing.T) {
		_, err := route.NewStop("", "", "home", "x", kernel.NewZone("North"), "", 1)
		require.Error(t, err)

		_, err = route.NewStop("anna", "", "", "x", kernel.NewZone("North"), "", 1)
		require.Error(t, err)
	})
}

func TestNewSnapshot(t *testing.T) {
	t.Run("freezes sequence from given order", func(t *testing.T) {
		stops := []route.Stop{
			mustStop(t, "bob", "home", "3 Elm Court"),
			mustStop(t, "anna", "home", "12 Oak Street"),
		}

		snap, err := route.NewSnapshot(testDate, kernel.NewZone("North"), stops, testAt)

		require.NoError(t, err)
		require.NoError(t, snap.Validate())
		assert.Equal(t, "2024-06-03|North", snap.Key())
		require.Len(t, snap.Stops(), 2)
		assert.Equal(t, 1, snap.Stops()[0].Sequence)
		assert.Equal(t, "bob|home", snap.Stops()[0].StopKey)
		assert.Equal(t, 2, snap.Stops()[1].Sequence)
		assert.Equal(t, testAt, snap.SavedAt())
	})

	t.Run("refuses empty stop list", func(t *testing.T) {
		_, err := route.NewSnapshot(testDate, kernel.NewZone("North"), nil, testAt)
		require.ErrorIs(t, err, route.ErrNoStops)
	})

	t.Run("refuses unassigned zone", func(t *testing.T) {
		_, err := route.NewSnapshot(testDate, kernel.NewZone(""), []route.Stop{
			mustStop(t, "anna", "home", "12 Oak Street"),
		}, testAt)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var snap route.Snapshot
		require.ErrorIs(t, snap.Validate(), route.ErrSnapshotIsNotConstructed)
	})
}

func TestRestoreSnapshot(t *testing.T) {
	stops := []route.SnapshotStop{
		{Sequence: 1, StopKey: "anna|home", DisplayName: "Anna K.", Address: "12 Oak Street"},
	}

	snap, err := route.RestoreSnapshot(testDate, kernel.NewZone("North"), stops, testAt)

	require.NoError(t, err)
	assert.Equal(t, stops, snap.Stops())
}
