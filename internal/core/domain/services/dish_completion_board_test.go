package services_test

import (
	"testing"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, clientName string, dishNames ...string) *order.Order {
	t.Helper()

	dishes := make([]order.Dish, 0, len(dishNames))
	for _, name := range dishNames {
		dish, err := order.NewDish(name, order.Protein)
		require.NoError(t, err)
		dishes = append(dishes, dish)
	}

	o, err := order.NewOrder(clientName, date(2024, 6, 3), dishes, 2, 1)
	require.NoError(t, err)
	return o
}

func TestDishCompletionBoard_MarkComplete(t *testing.T) {
	t.Run("order stays pending until every dish is complete", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		o := buildOrder(t, "Alice", "Chicken", "Rice")
		require.NoError(t, board.Register(o))

		ready, err := board.MarkComplete("Chicken")
		require.NoError(t, err)
		assert.Empty(t, ready)
		assert.False(t, board.IsOrderReady(o.Key()))

		ready, err = board.MarkComplete("Rice")
		require.NoError(t, err)
		assert.Equal(t, []string{o.Key()}, ready)
		assert.True(t, board.IsOrderReady(o.Key()))
	})

	t.Run("completion is shared across orders by dish name", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		alice := buildOrder(t, "Alice", "Chicken")
		bob := buildOrder(t, "Bob", "Chicken", "Soup")
		require.NoError(t, board.Register(alice))
		require.NoError(t, board.Register(bob))

		ready, err := board.MarkComplete("chicken")
		require.NoError(t, err)

		assert.Equal(t, []string{alice.Key()}, ready)
		assert.True(t, board.IsOrderReady(alice.Key()))
		assert.False(t, board.IsOrderReady(bob.Key()))
	})

	t.Run("marking a complete dish twice is a no-op", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		require.NoError(t, board.Register(buildOrder(t, "Alice", "Chicken")))

		_, err := board.MarkComplete("Chicken")
		require.NoError(t, err)

		ready, err := board.MarkComplete("Chicken")
		require.NoError(t, err)
		assert.Empty(t, ready)
	})

	t.Run("unknown dish name fails", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		require.NoError(t, board.Register(buildOrder(t, "Alice", "Chicken")))

		_, err := board.MarkComplete("Lasagna")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDishCompletionBoard_Register(t *testing.T) {
	t.Run("registering after completion inherits the flag", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		require.NoError(t, board.Register(buildOrder(t, "Alice", "Chicken")))
		_, err := board.MarkComplete("Chicken")
		require.NoError(t, err)

		late := buildOrder(t, "Bob", "Chicken")
		require.NoError(t, board.Register(late))

		assert.True(t, board.IsOrderReady(late.Key()))
	})

	t.Run("re-registering replaces the earlier dish set", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		o := buildOrder(t, "Alice", "Chicken", "Rice")
		require.NoError(t, board.Register(o))

		replacement := buildOrder(t, "Alice", "Soup")
		require.NoError(t, board.Register(replacement))

		ready, err := board.MarkComplete("Soup")
		require.NoError(t, err)
		assert.Equal(t, []string{o.Key()}, ready)
		assert.ElementsMatch(t, []string{}, board.PendingDishes())
	})

	t.Run("rejects an unconstructed order", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		assert.Error(t, board.Register(&order.Order{}))
	})
}

func TestDishCompletionBoard_Unregister(t *testing.T) {
	board := services.NewDishCompletionBoard()
	alice := buildOrder(t, "Alice", "Chicken")
	bob := buildOrder(t, "Bob", "Chicken")
	require.NoError(t, board.Register(alice))
	require.NoError(t, board.Register(bob))

	board.Unregister(alice.Key())

	assert.False(t, board.IsOrderReady(alice.Key()))
	ready, err := board.MarkComplete("Chicken")
	require.NoError(t, err)
	assert.Equal(t, []string{bob.Key()}, ready)

	t.Run("dish with no dependents left is dropped", func(t *testing.T) {
		board := services.NewDishCompletionBoard()
		only := buildOrder(t, "Alice", "Chicken")
		require.NoError(t, board.Register(only))
		board.Unregister(only.Key())

		_, err := board.MarkComplete("Chicken")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDishCompletionBoard_CompleteAll(t *testing.T) {
	board := services.NewDishCompletionBoard()
	alice := buildOrder(t, "Alice", "Chicken", "Rice")
	bob := buildOrder(t, "Bob", "Soup")
	require.NoError(t, board.Register(alice))
	require.NoError(t, board.Register(bob))

	_, err := board.MarkComplete("Soup")
	require.NoError(t, err)

	ready := board.CompleteAll()

	assert.Equal(t, []string{alice.Key()}, ready, "already-ready orders are not repeated")
	assert.Empty(t, board.PendingDishes())
	assert.True(t, board.IsOrderReady(alice.Key()))
	assert.True(t, board.IsOrderReady(bob.Key()))
}

func TestDishCompletionBoard_Reset(t *testing.T) {
	board := services.NewDishCompletionBoard()
	o := buildOrder(t, "Alice", "Chicken")
	require.NoError(t, board.Register(o))

	board.Reset()

	assert.False(t, board.IsOrderReady(o.Key()))
	assert.Empty(t, board.PendingDishes())
}

func TestDishCompletionBoard_PendingDishes(t *testing.T) {
	board := services.NewDishCompletionBoard()
	require.NoError(t, board.Register(buildOrder(t, "Alice", "Rice", "Chicken")))

	assert.Equal(t, []string{"Chicken", "Rice"}, board.PendingDishes())

	_, err := board.MarkComplete("Chicken")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice"}, board.PendingDishes())
}
