package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/pkg/errs"
)

func TestGetCandidateDatesEnumeratesDeliveryDay(t *testing.T) {
	coord, factory := newCoordinator(t)
	seed(t, factory, func(ctx context.Context, ws *sync.Workspace) {
		require.NoError(t, ws.ClientRepository().Add(ctx, mustClient(t, "Alice", "North", "1 Main St")))
	})

	handler := queries.NewGetCandidateDatesQueryHandler(coord)
	query, err := queries.NewGetCandidateDatesQuery("alice", 3)
	require.NoError(t, err)

	response, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "Alice", response.ClientName)
	require.Len(t, response.Candidates, 3)
	for i, candidate := range response.Candidates {
		assert.Equal(t, time.Monday, candidate.Weekday())
		assert.True(t, candidate.After(time.Now()))
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, candidate.Sub(response.Candidates[i-1]))
		}
	}
}

func TestGetCandidateDatesSkipsScheduled(t *testing.T) {
	coord, factory := newCoordinator(t)
	seed(t, factory, func(ctx context.Context, ws *sync.Workspace) {
		require.NoError(t, ws.ClientRepository().Add(ctx, mustClient(t, "Alice", "North", "1 Main St")))
	})

	handler := queries.NewGetCandidateDatesQueryHandler(coord)
	query, err := queries.NewGetCandidateDatesQuery("alice", 2)
	require.NoError(t, err)

	before, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, before.Candidates, 2)
	taken := before.Candidates[0]

	seed(t, factory, func(ctx context.Context, ws *sync.Workspace) {
		c, getErr := ws.ClientRepository().GetByName(ctx, "Alice")
		require.NoError(t, getErr)
		scheduled, sdErr := client.NewScheduledDate(taken, client.SelfSelected)
		require.NoError(t, sdErr)
		c.ReplaceScheduledDates(client.SelfSelected, []client.ScheduledDate{scheduled})
		require.NoError(t, ws.ClientRepository().Update(ctx, c))
	})

	after, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, after.Candidates, 2)
	assert.NotContains(t, after.Candidates, taken)
	require.Len(t, after.Scheduled, 1)
	assert.True(t, after.Scheduled[0].Equal(taken))
}

func TestGetCandidateDatesUnknownSlug(t *testing.T) {
	coord, _ := newCoordinator(t)

	handler := queries.NewGetCandidateDatesQueryHandler(coord)
	query, err := queries.NewGetCandidateDatesQuery("nobody", 1)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
