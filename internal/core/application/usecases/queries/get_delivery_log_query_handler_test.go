package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/kernel"
)

func TestGetDeliveryLogSortedAndFiltered(t *testing.T) {
	coord, factory := newCoordinator(t)

	earlier := time.Date(2124, 6, 5, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(2 * time.Hour)
	otherDay := monday.AddDate(0, 0, 7)

	seed(t, factory, func(ctx context.Context, ws *sync.Workspace) {
		require.NoError(t, ws.DeliveryLogRepository().Append(ctx, mustLogEntry(t, "Alice", earlier, false)))
		require.NoError(t, ws.DeliveryLogRepository().Append(ctx, mustLogEntry(t, "Bob", later, true)))

		offDay, err := delivery.NewLogEntry(kernel.NewUUID(), otherDay, "Cara", "home",
			kernel.NewZone("North"), "Dave", otherDay.Add(9*time.Hour), delivery.Hand, "",
			false, delivery.ProblemNone, "")
		require.NoError(t, err)
		require.NoError(t, ws.DeliveryLogRepository().Append(ctx, offDay))
	})

	handler := queries.NewGetDeliveryLogQueryHandler(coord)

	all, err := handler.Handle(context.Background(), queries.NewGetDeliveryLogQuery(time.Time{}))
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Most recent completion first.
	assert.Equal(t, "Cara", all[0].ClientName)

	filtered, err := handler.Handle(context.Background(), queries.NewGetDeliveryLogQuery(monday))
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Bob", filtered[0].ClientName)
	assert.Equal(t, "Alice", filtered[1].ClientName)
	assert.Equal(t, "hand", filtered[0].Handoff)
}
