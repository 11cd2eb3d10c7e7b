package kernel_test

import (
	"testing"
	"time"

	"mealroute/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeekday(t *testing.T) {
	t.Run("should parse canonical name", func(t *testing.T) {
		day, err := kernel.NewWeekday("Monday")

		require.NoError(t, err)
		assert.Equal(t, time.Monday, day.Day())
		assert.NoError(t, day.Validate())
	})

	t.Run("should parse case-insensitively", func(t *testing.T) {
		for _, name := range []string{"monday", "MONDAY", " Monday "} {
			day, err := kernel.NewWeekday(name)

			require.NoError(t, err)
			assert.Equal(t, time.Monday, day.Day())
		}
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := kernel.NewWeekday("")

		require.Error(t, err)
	})

	t.Run("should reject unknown name", func(t *testing.T) {
		_, err := kernel.NewWeekday("Moonday")

		require.Error(t, err)
	})
}

func TestWeekday_Matches(t *testing.T) {
	day, err := kernel.NewWeekday("Monday")
	require.NoError(t, err)

	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // a Monday
	tuesday := monday.AddDate(0, 0, 1)

	assert.True(t, day.Matches(monday))
	assert.False(t, day.Matches(tuesday))
}

func TestWeekdayFromTime(t *testing.T) {
	saturday := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	day := kernel.WeekdayFromTime(saturday)

	assert.Equal(t, time.Saturday, day.Day())
	assert.Equal(t, "Saturday", day.String())
	require.NoError(t, day.Validate())
}

func TestWeekday_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var day kernel.Weekday

		require.Error(t, day.Validate())
	})
}

func TestNewZone(t *testing.T) {
	t.Run("keeps trimmed name", func(t *testing.T) {
		zone := kernel.NewZone(" North ")

		assert.Equal(t, "North", zone.Name())
		assert.False(t, zone.IsUnassigned())
		require.NoError(t, zone.ValidateRoutable())
	})

	t.Run("blank name falls into unassigned bucket", func(t *testing.T) {
		zone := kernel.NewZone("  ")

		assert.Equal(t, kernel.UnassignedZone, zone.Name())
		assert.True(t, zone.IsUnassigned())
		require.Error(t, zone.ValidateRoutable())
	})

	t.Run("zero value reads as unassigned", func(t *testing.T) {
		var zone kernel.Zone

		assert.True(t, zone.IsUnassigned())
	})
}

func TestZone_IsEqual(t *testing.T) {
	assert.True(t, kernel.NewZone("north").IsEqual(kernel.NewZone("North")))
	assert.False(t, kernel.NewZone("North").IsEqual(kernel.NewZone("South")))
}
