package cmd

import (
	"context"
	"log/slog"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpadapter "mealroute/internal/adapters/in/http"
	"mealroute/internal/adapters/out/localstore"
	"mealroute/internal/adapters/out/postgres/recordstore"
	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/ports"
	"mealroute/internal/jobs"
)

type CompositionRoot struct {
	config      Config
	coordinator *sync.Coordinator
	wsFactory   *sync.WorkspaceFactory
}

// NewCompositionRoot wires the sync coordinator from the config: a file
// store for the local cache always, and a GORM record store on top of
// postgres when the sync mode asks for a remote. The database is opened
// without an eager ping so a remote-preferred app still boots offline.
func NewCompositionRoot(ctx context.Context, config Config) (*CompositionRoot, error) {
	local, err := localstore.NewFileStore(config.DataDir)
	if err != nil {
		return nil, err
	}

	mode, err := sync.ModeFromString(config.SyncMode)
	if err != nil {
		return nil, err
	}

	var remote ports.RecordStore
	if mode != sync.LocalOnly {
		if err := ensureDatabase(config); err != nil {
			slog.Warn("Skipping database bootstrap", "error", err)
		}

		gormDB, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{
			DisableAutomaticPing: true,
		})
		if err != nil {
			return nil, err
		}
		if err := gormDB.AutoMigrate(&recordstore.RecordDocumentDTO{}); err != nil {
			// Unreachable database is fine at boot; the replay job
			// catches up once connectivity returns.
			slog.Warn("Skipping record store migration", "error", err)
		}

		store, err := recordstore.NewGormRecordStore(gormDB)
		if err != nil {
			return nil, err
		}
		remote = store
	}

	coordinator, err := sync.NewCoordinator(mode, remote, local)
	if err != nil {
		return nil, err
	}
	if err := coordinator.Load(ctx); err != nil {
		return nil, err
	}

	wsFactory, err := sync.NewWorkspaceFactory(coordinator)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:      config,
		coordinator: coordinator,
		wsFactory:   wsFactory,
	}, nil
}

// Coordinator exposes the sync coordinator for status inspection.
func (c *CompositionRoot) Coordinator() *sync.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) CreatePlanMenuCommandHandler() commands.PlanMenuCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.wsFactory.Create()
	})
	return commands.NewPlanMenuCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveMenuCommandHandler() commands.ApproveMenuCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.wsFactory.Create()
	})
	return commands.NewApproveMenuCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkDishCompleteCommandHandler() commands.MarkDishCompleteCommandHandler {
	return commands.NewMarkDishCompleteCommandHandler(c.kitchenUoWFactory())
}

func (c *CompositionRoot) CreateCompleteAllDishesCommandHandler() commands.CompleteAllDishesCommandHandler {
	return commands.NewCompleteAllDishesCommandHandler(c.kitchenUoWFactory())
}

func (c *CompositionRoot) CreateCompleteStopCommandHandler() commands.CompleteStopCommandHandler {
	return commands.NewCompleteStopCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateUndoStopCommandHandler() commands.UndoStopCommandHandler {
	return commands.NewUndoStopCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateSaveRouteCommandHandler() commands.SaveRouteCommandHandler {
	return commands.NewSaveRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateMoveStopCommandHandler() commands.MoveStopCommandHandler {
	return commands.NewMoveStopCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateSelectDatesCommandHandler() commands.SelectDatesCommandHandler {
	var f commands.ClientUoWFactory = FuncClientUoWFactory(func() commands.ClientUoW {
		return c.wsFactory.Create()
	})
	return commands.NewSelectDatesCommandHandler(f, c.minSpacingDays())
}

func (c *CompositionRoot) CreateSetBagsReturnedCommandHandler() commands.SetBagsReturnedCommandHandler {
	return commands.NewSetBagsReturnedCommandHandler(c.logUoWFactory())
}

func (c *CompositionRoot) CreateMarkReminderSentCommandHandler() commands.MarkReminderSentCommandHandler {
	return commands.NewMarkReminderSentCommandHandler(c.logUoWFactory())
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetOutstandingBagsQueryHandler() queries.GetOutstandingBagsQueryHandler {
	return queries.NewGetOutstandingBagsQueryHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetDeliveryLogQueryHandler() queries.GetDeliveryLogQueryHandler {
	return queries.NewGetDeliveryLogQueryHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetCandidateDatesQueryHandler() queries.GetCandidateDatesQueryHandler {
	return queries.NewGetCandidateDatesQueryHandler(c.coordinator)
}

// CreateHTTPServer assembles the echo-facing server with every handler the
// driver and client portals need.
func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	return httpadapter.NewServer(
		c.coordinator,
		c.config.JWTSecret,
		c.CreateCompleteStopCommandHandler(),
		c.CreateUndoStopCommandHandler(),
		c.CreateSetBagsReturnedCommandHandler(),
		c.CreateMarkReminderSentCommandHandler(),
		c.CreateSelectDatesCommandHandler(),
		c.CreateGetRouteQueryHandler(),
		c.CreateGetOutstandingBagsQueryHandler(),
		c.CreateGetDeliveryLogQueryHandler(),
		c.CreateGetCandidateDatesQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs around the coordinator.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.coordinator, logger)
}

func (c *CompositionRoot) kitchenUoWFactory() commands.KitchenUoWFactory {
	return FuncKitchenUoWFactory(func() commands.KitchenUoW {
		return c.wsFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.wsFactory.Create()
	})
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.wsFactory.Create()
	})
}

func (c *CompositionRoot) logUoWFactory() commands.LogUoWFactory {
	return FuncLogUoWFactory(func() commands.LogUoW {
		return c.wsFactory.Create()
	})
}

// minSpacingDays reads the configured biweekly gap from app settings, zero
// meaning the built-in default.
func (c *CompositionRoot) minSpacingDays() int {
	ds, err := c.coordinator.View()
	if err != nil {
		return 0
	}
	return ds.Settings.MinSpacingDays
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncKitchenUoWFactory func() commands.KitchenUoW

func (f FuncKitchenUoWFactory) Create() commands.KitchenUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncLogUoWFactory func() commands.LogUoW

func (f FuncLogUoWFactory) Create() commands.LogUoW {
	return f()
}
