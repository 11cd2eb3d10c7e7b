package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

func TestNewPlanMenuCommandValidation(t *testing.T) {
	dish := mustDish(t, "Chicken")

	_, err := commands.NewPlanMenuCommand("", futureMonday, []order.Dish{dish}, 0)
	assert.ErrorIs(t, err, commands.ErrClientNameIsRequired)

	_, err = commands.NewPlanMenuCommand("Alice", time.Time{}, []order.Dish{dish}, 0)
	assert.ErrorIs(t, err, commands.ErrDateIsRequired)

	_, err = commands.NewPlanMenuCommand("Alice", futureMonday, nil, 0)
	assert.ErrorIs(t, err, commands.ErrDishesAreRequired)

	_, err = commands.NewPlanMenuCommand("Alice", futureMonday, []order.Dish{dish}, -1)
	assert.ErrorIs(t, err, commands.ErrPortionsAreInvalid)

	var zero commands.PlanMenuCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrPlanMenuCommandIsNotConstructed)
}

func TestPlanMenuCreatesPendingOrder(t *testing.T) {
	fx := newFixture(t)
	seedClient(t, fx, "Alice", "North",
		mustContact(t, "home", "1 Main St"),
		mustContact(t, "office", "9 Work Rd"))

	handler := commands.NewPlanMenuCommandHandler(planningUoWFactory{fx.factory})
	cmd, err := commands.NewPlanMenuCommand("Alice", futureMonday,
		[]order.Dish{mustDish(t, "Chicken"), mustDish(t, "Rice")}, 0)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), cmd))

	o := getOrder(t, fx, order.Key("Alice", futureMonday))
	assert.Equal(t, order.MenuPending, o.Status())
	assert.Equal(t, []string{"Chicken", "Rice"}, o.DishNames())
	// Portions default from the roster, total stops from the address count.
	assert.Equal(t, 2, o.Portions())
	assert.Equal(t, 2, o.TotalStops())
}

func TestPlanMenuExplicitPortionsWin(t *testing.T) {
	fx := newFixture(t)
	seedClient(t, fx, "Alice", "North", mustContact(t, "home", "1 Main St"))

	handler := commands.NewPlanMenuCommandHandler(planningUoWFactory{fx.factory})
	cmd, err := commands.NewPlanMenuCommand("Alice", futureMonday,
		[]order.Dish{mustDish(t, "Chicken")}, 5)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), cmd))
	assert.Equal(t, 5, getOrder(t, fx, order.Key("Alice", futureMonday)).Portions())
}

func TestPlanMenuRejectsLockedWeek(t *testing.T) {
	fx := newFixture(t)
	seedClient(t, fx, "Alice", "North", mustContact(t, "home", "1 Main St"))

	handler := commands.NewPlanMenuCommandHandler(planningUoWFactory{fx.factory})
	cmd, err := commands.NewPlanMenuCommand("Alice", pastMonday,
		[]order.Dish{mustDish(t, "Chicken")}, 0)
	require.NoError(t, err)

	err = handler.Handle(context.Background(), cmd)
	require.ErrorIs(t, err, errs.ErrDeadlinePassed)

	ds, viewErr := fx.coord.View()
	require.NoError(t, viewErr)
	assert.Empty(t, ds.Current)
}

func TestPlanMenuUnknownClient(t *testing.T) {
	fx := newFixture(t)

	handler := commands.NewPlanMenuCommandHandler(planningUoWFactory{fx.factory})
	cmd, err := commands.NewPlanMenuCommand("Nobody", futureMonday,
		[]order.Dish{mustDish(t, "Chicken")}, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, handler.Handle(context.Background(), cmd), errs.ErrObjectNotFound)
}

func TestPlanMenuRejectsDuplicate(t *testing.T) {
	fx := newFixture(t)
	seedClient(t, fx, "Alice", "North", mustContact(t, "home", "1 Main St"))
	seedOrder(t, fx, "Alice", futureMonday, "Chicken")

	handler := commands.NewPlanMenuCommandHandler(planningUoWFactory{fx.factory})
	cmd, err := commands.NewPlanMenuCommand("Alice", futureMonday,
		[]order.Dish{mustDish(t, "Rice")}, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, handler.Handle(context.Background(), cmd), errs.ErrValueIsInvalid)
}
