// Package http exposes the driver portal and the client portal over echo.
// Drivers authenticate with their roster access code and receive a signed
// session token; the client portal is addressed by slug and carries no
// credentials, matching the low-stakes sharing model of the portal links.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/client"
	"mealroute/internal/core/domain/model/delivery"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	coordinator *sync.Coordinator
	jwtSecret   string
	clock       func() time.Time

	// Command handlers
	completeStopHandler     commands.CompleteStopCommandHandler
	undoStopHandler         commands.UndoStopCommandHandler
	setBagsReturnedHandler  commands.SetBagsReturnedCommandHandler
	markReminderSentHandler commands.MarkReminderSentCommandHandler
	selectDatesHandler      commands.SelectDatesCommandHandler

	// Query handlers
	getRouteHandler           queries.GetRouteQueryHandler
	getOutstandingBagsHandler queries.GetOutstandingBagsQueryHandler
	getDeliveryLogHandler     queries.GetDeliveryLogQueryHandler
	getCandidateDatesHandler  queries.GetCandidateDatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	coordinator *sync.Coordinator,
	jwtSecret string,
	completeStopHandler commands.CompleteStopCommandHandler,
	undoStopHandler commands.UndoStopCommandHandler,
	setBagsReturnedHandler commands.SetBagsReturnedCommandHandler,
	markReminderSentHandler commands.MarkReminderSentCommandHandler,
	selectDatesHandler commands.SelectDatesCommandHandler,
	getRouteHandler queries.GetRouteQueryHandler,
	getOutstandingBagsHandler queries.GetOutstandingBagsQueryHandler,
	getDeliveryLogHandler queries.GetDeliveryLogQueryHandler,
	getCandidateDatesHandler queries.GetCandidateDatesQueryHandler,
) (*Server, error) {
	if coordinator == nil {
		return nil, errs.NewValueIsRequiredError("coordinator")
	}
	if jwtSecret == "" {
		return nil, errs.NewValueIsRequiredError("jwtSecret")
	}

	return &Server{
		coordinator:               coordinator,
		jwtSecret:                 jwtSecret,
		clock:                     time.Now,
		completeStopHandler:       completeStopHandler,
		undoStopHandler:           undoStopHandler,
		setBagsReturnedHandler:    setBagsReturnedHandler,
		markReminderSentHandler:   markReminderSentHandler,
		selectDatesHandler:        selectDatesHandler,
		getRouteHandler:           getRouteHandler,
		getOutstandingBagsHandler: getOutstandingBagsHandler,
		getDeliveryLogHandler:     getDeliveryLogHandler,
		getCandidateDatesHandler:  getCandidateDatesHandler,
	}, nil
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/auth/login", s.Login)

	driver := api.Group("", driverAuth(s.jwtSecret))
	driver.GET("/routes", s.GetRoute)
	driver.POST("/stops/complete", s.CompleteStop)
	driver.POST("/stops/undo", s.UndoStop)
	driver.PUT("/log/:entryID/bags", s.SetBagsReturned)
	driver.POST("/log/:entryID/reminder", s.MarkReminderSent)
	driver.GET("/bags/outstanding", s.GetOutstandingBags)
	driver.GET("/log", s.GetDeliveryLog)

	api.GET("/portal/:slug/candidate-dates", s.GetCandidateDates)
	api.PUT("/portal/:slug/dates", s.SelectDates)
}

// Login handles POST /api/v1/auth/login - exchanges a roster access code
// for a driver session token.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if req.AccessCode == "" {
		return badRequest(ctx, "Access code is required")
	}

	ds, err := s.coordinator.View()
	if err != nil {
		return writeError(ctx, err)
	}

	for _, d := range ds.Drivers {
		if !d.Authenticate(req.AccessCode) {
			continue
		}

		token, err := issueToken(s.jwtSecret, d.Name(), d.Zone().Name(), s.clock())
		if err != nil {
			return writeError(ctx, err)
		}

		return ctx.JSON(http.StatusOK, LoginResponse{
			Token:      token,
			DriverName: d.Name(),
			Zone:       d.Zone().Name(),
		})
	}

	return ctx.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: "Unknown access code",
	})
}

// GetRoute handles GET /api/v1/routes - serves the stop list for one date
// and zone. The zone defaults to the authenticated driver's own territory.
func (s *Server) GetRoute(ctx echo.Context) error {
	date, err := parseDate(ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "Invalid or missing date, want YYYY-MM-DD")
	}

	zoneName := ctx.QueryParam("zone")
	if zoneName == "" {
		if claims := claimsFrom(ctx); claims != nil {
			zoneName = claims.Zone
		}
	}

	query, err := queries.NewGetRouteQuery(date, kernel.NewZone(zoneName))
	if err != nil {
		return writeError(ctx, err)
	}

	route, err := s.getRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	stops := make([]RouteStop, len(route.Stops))
	for i, stop := range route.Stops {
		stops[i] = RouteStop{
			Sequence:    stop.Sequence,
			StopKey:     stop.StopKey,
			DisplayName: stop.DisplayName,
			Address:     stop.Address,
			DishSummary: stop.DishSummary,
			Portions:    stop.Portions,
			Completed:   stop.Completed,
		}
	}

	return ctx.JSON(http.StatusOK, RouteResponse{
		Date:           route.Date.Format(kernel.DateLayout),
		Zone:           route.Zone,
		FromSnapshot:   route.FromSnapshot,
		Stops:          stops,
		NavigationLink: route.NavigationLink,
	})
}

// CompleteStop handles POST /api/v1/stops/complete - records a handed-off
// stop under the authenticated driver's name.
func (s *Server) CompleteStop(ctx echo.Context) error {
	var req CompleteStopRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid or missing date, want YYYY-MM-DD")
	}

	handoff, err := delivery.HandoffFromString(req.Handoff)
	if err != nil {
		return badRequest(ctx, "Unknown handoff kind: "+req.Handoff)
	}

	problem := delivery.ProblemNone
	if req.Problem != "" {
		problem, err = delivery.ProblemFromString(req.Problem)
		if err != nil {
			return badRequest(ctx, "Unknown problem kind: "+req.Problem)
		}
	}

	claims := claimsFrom(ctx)
	cmd, err := commands.NewCompleteStopCommand(
		req.ClientName,
		date,
		req.ContactLabel,
		claims.DriverName,
		handoff,
		req.PhotoRef,
		req.BagsReturned,
		problem,
		req.Note,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.completeStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UndoStop handles POST /api/v1/stops/undo - reverses the most recent
// completion for an order, reopening it even when already delivered.
func (s *Server) UndoStop(ctx echo.Context) error {
	var req UndoStopRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid or missing date, want YYYY-MM-DD")
	}

	cmd, err := commands.NewUndoStopCommand(req.ClientName, date)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.undoStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetBagsReturned handles PUT /api/v1/log/:entryID/bags - toggles the
// bag-return flag on one log entry.
func (s *Server) SetBagsReturned(ctx echo.Context) error {
	entryID, err := kernel.UUIDFromString(ctx.Param("entryID"))
	if err != nil {
		return badRequest(ctx, "Invalid log entry id")
	}

	var req SetBagsReturnedRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetBagsReturnedCommand(entryID, req.Returned)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.setBagsReturnedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkReminderSent handles POST /api/v1/log/:entryID/reminder - records
// that a bag-return reminder went out for the entry.
func (s *Server) MarkReminderSent(ctx echo.Context) error {
	entryID, err := kernel.UUIDFromString(ctx.Param("entryID"))
	if err != nil {
		return badRequest(ctx, "Invalid log entry id")
	}

	cmd, err := commands.NewMarkReminderSentCommand(entryID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markReminderSentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOutstandingBags handles GET /api/v1/bags/outstanding - lists clients
// whose latest delivery still has deposit bags out.
func (s *Server) GetOutstandingBags(ctx echo.Context) error {
	outstanding, err := s.getOutstandingBagsHandler.Handle(
		ctx.Request().Context(), queries.NewGetOutstandingBagsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OutstandingBagEntry, len(outstanding))
	for i, entry := range outstanding {
		response[i] = OutstandingBagEntry{
			ClientName:   entry.ClientName,
			LogEntryID:   entry.LogEntryID,
			LastDelivery: entry.LastDelivery.Format(kernel.DateLayout),
			DriverName:   entry.DriverName,
			ReminderSent: entry.ReminderSent,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryLog handles GET /api/v1/log - lists completed stops, newest
// first, optionally filtered to one delivery date.
func (s *Server) GetDeliveryLog(ctx echo.Context) error {
	var date time.Time
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return badRequest(ctx, "Invalid date, want YYYY-MM-DD")
		}
		date = parsed
	}

	entries, err := s.getDeliveryLogHandler.Handle(
		ctx.Request().Context(), queries.NewGetDeliveryLogQuery(date))
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DeliveryLogEntry, len(entries))
	for i, entry := range entries {
		response[i] = DeliveryLogEntry{
			ID:           entry.ID,
			Date:         entry.Date.Format(kernel.DateLayout),
			ClientName:   entry.ClientName,
			ContactLabel: entry.ContactLabel,
			Zone:         entry.Zone,
			DriverName:   entry.DriverName,
			CompletedAt:  entry.CompletedAt.Format(time.RFC3339),
			Handoff:      entry.Handoff,
			PhotoRef:     entry.PhotoRef,
			BagsReturned: entry.BagsReturned,
			ReminderSent: entry.ReminderSent,
			Problem:      entry.Problem,
			Note:         entry.Note,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCandidateDates handles GET /api/v1/portal/:slug/candidate-dates -
// serves the portal date picker for one client.
func (s *Server) GetCandidateDates(ctx echo.Context) error {
	count := 6
	if raw := ctx.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return badRequest(ctx, "Invalid count")
		}
		count = parsed
	}

	query, err := queries.NewGetCandidateDatesQuery(ctx.Param("slug"), count)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getCandidateDatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CandidateDatesResponse{
		ClientName: result.ClientName,
		Candidates: formatDates(result.Candidates),
		Scheduled:  formatDates(result.Scheduled),
	})
}

// SelectDates handles PUT /api/v1/portal/:slug/dates - replaces the
// client's self-selected dates and pushes the updated roster to the remote
// store. Admin-set dates are never touched from here.
func (s *Server) SelectDates(ctx echo.Context) error {
	var req SelectDatesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := parseDate(raw)
		if err != nil {
			return badRequest(ctx, "Invalid date "+raw+", want YYYY-MM-DD")
		}
		dates = append(dates, date)
	}

	target, err := s.resolveSlug(ctx.Param("slug"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSelectDatesCommand(target.Name(), client.SelfSelected, dates)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.selectDatesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	// Client dates are master data; the workspace commit above only lands
	// them locally, so push the roster explicitly.
	ds, err := s.coordinator.View()
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.coordinator.SaveClients(ctx.Request().Context(), ds.Clients); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) resolveSlug(slug string) (*client.Client, error) {
	ds, err := s.coordinator.View()
	if err != nil {
		return nil, err
	}

	for _, c := range ds.Clients {
		if c.MatchesSlug(slug) {
			return c, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("client", slug)
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(kernel.DateLayout, raw)
}

func formatDates(dates []time.Time) []string {
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(kernel.DateLayout)
	}
	return formatted
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrDeadlinePassed),
		errors.Is(err, errs.ErrSpacingViolated):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, delivery.ErrPhotoRequired),
		errors.Is(err, delivery.ErrProblemNoteRequired):
		status = http.StatusBadRequest
	case errors.Is(err, order.ErrNoCompletedStops):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrNotConnected):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}
