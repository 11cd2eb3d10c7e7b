package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

func markDish(t *testing.T, fx *fixture, name string) error {
	t.Helper()

	handler := commands.NewMarkDishCompleteCommandHandler(kitchenUoWFactory{fx.factory})
	cmd, err := commands.NewMarkDishCompleteCommand(name)
	require.NoError(t, err)
	return handler.Handle(context.Background(), cmd)
}

func TestMarkDishCompleteTransitionsWhenAllDishesDone(t *testing.T) {
	fx := newFixture(t)
	seedOrder(t, fx, "Alice", futureMonday, "Chicken", "Rice")
	key := order.Key("Alice", futureMonday)
	advanceOrder(t, fx, key, approve)

	require.NoError(t, markDish(t, fx, "Chicken"))
	assert.Equal(t, order.MenuApproved, getOrder(t, fx, key).Status())

	require.NoError(t, markDish(t, fx, "Rice"))
	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, key).Status())
}

func TestMarkDishCompleteIsSharedAcrossOrders(t *testing.T) {
	fx := newFixture(t)
	seedOrder(t, fx, "Alice", futureMonday, "Chicken")
	seedOrder(t, fx, "Bob", futureMonday, "chicken")
	advanceOrder(t, fx, order.Key("Alice", futureMonday), approve)
	advanceOrder(t, fx, order.Key("Bob", futureMonday), approve)

	require.NoError(t, markDish(t, fx, "Chicken"))

	// One flag satisfies both orders, case-insensitively.
	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, order.Key("Alice", futureMonday)).Status())
	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, order.Key("Bob", futureMonday)).Status())
}

func TestMarkDishCompleteCatchesUpLateApprovals(t *testing.T) {
	fx := newFixture(t)
	seedOrder(t, fx, "Alice", futureMonday, "Chicken")
	seedOrder(t, fx, "Bob", futureMonday, "Chicken", "Rice")
	advanceOrder(t, fx, order.Key("Alice", futureMonday), approve)

	require.NoError(t, markDish(t, fx, "Chicken"))
	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, order.Key("Alice", futureMonday)).Status())

	// Bob's order is approved after Chicken was already cooked; the next
	// completion replays the cycle and only Rice remains.
	advanceOrder(t, fx, order.Key("Bob", futureMonday), approve)
	require.NoError(t, markDish(t, fx, "Rice"))
	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, order.Key("Bob", futureMonday)).Status())
}

func TestMarkDishCompleteUnknownDish(t *testing.T) {
	fx := newFixture(t)
	seedOrder(t, fx, "Alice", futureMonday, "Chicken")
	advanceOrder(t, fx, order.Key("Alice", futureMonday), approve)

	assert.ErrorIs(t, markDish(t, fx, "Tofu"), errs.ErrObjectNotFound)
	assert.Equal(t, order.MenuApproved, getOrder(t, fx, order.Key("Alice", futureMonday)).Status())
}

func TestMarkDishCompleteIgnoresPendingOrders(t *testing.T) {
	fx := newFixture(t)
	seedOrder(t, fx, "Alice", futureMonday, "Chicken")

	// MenuPending orders are not in the production cycle yet.
	assert.ErrorIs(t, markDish(t, fx, "Chicken"), errs.ErrObjectNotFound)
}

func TestCompleteAllDishesClosesCycle(t *testing.T) {
	fx := newFixture(t)
	seedOrder(t, fx, "Alice", futureMonday, "Chicken", "Rice")
	seedOrder(t, fx, "Bob", futureMonday, "Soup")
	advanceOrder(t, fx, order.Key("Alice", futureMonday), approve)
	advanceOrder(t, fx, order.Key("Bob", futureMonday), approve)
	require.NoError(t, markDish(t, fx, "Chicken"))

	handler := commands.NewCompleteAllDishesCommandHandler(kitchenUoWFactory{fx.factory})
	cmd, err := commands.NewCompleteAllDishesCommand()
	require.NoError(t, err)
	require.NoError(t, handler.Handle(context.Background(), cmd))

	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, order.Key("Alice", futureMonday)).Status())
	assert.Equal(t, order.ReadyForDelivery, getOrder(t, fx, order.Key("Bob", futureMonday)).Status())

	// The cycle resets: a fresh workspace sees no completed dishes.
	ws := fx.factory.Create()
	ctx := context.Background()
	require.NoError(t, ws.Begin(ctx))
	completed, err := ws.ProductionRepository().GetCompletedDishes(ctx)
	require.NoError(t, err)
	assert.Empty(t, completed)
	require.NoError(t, ws.Rollback(ctx))
}
