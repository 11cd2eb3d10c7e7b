package http

// Error is the uniform error body for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LoginRequest carries a driver's roster access code.
type LoginRequest struct {
	AccessCode string `json:"accessCode"`
}

// LoginResponse returns the session token and the driver's roster identity.
type LoginResponse struct {
	Token      string `json:"token"`
	DriverName string `json:"driverName"`
	Zone       string `json:"zone"`
}

// RouteStop is one ordered stop on a driver's route.
type RouteStop struct {
	Sequence    int    `json:"sequence"`
	StopKey     string `json:"stopKey"`
	DisplayName string `json:"displayName"`
	Address     string `json:"address"`
	DishSummary string `json:"dishSummary"`
	Portions    int    `json:"portions"`
	Completed   bool   `json:"completed"`
}

// RouteResponse is the route read model served to drivers.
type RouteResponse struct {
	Date           string      `json:"date"`
	Zone           string      `json:"zone"`
	FromSnapshot   bool        `json:"fromSnapshot"`
	Stops          []RouteStop `json:"stops"`
	NavigationLink string      `json:"navigationLink,omitempty"`
}

// CompleteStopRequest records a handed-off delivery stop.
type CompleteStopRequest struct {
	ClientName   string `json:"clientName"`
	Date         string `json:"date"`
	ContactLabel string `json:"contactLabel"`
	Handoff      string `json:"handoff"`
	PhotoRef     string `json:"photoRef,omitempty"`
	BagsReturned bool   `json:"bagsReturned"`
	Problem      string `json:"problem,omitempty"`
	Note         string `json:"note,omitempty"`
}

// UndoStopRequest reverses the most recent completion for a stop's order.
type UndoStopRequest struct {
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
}

// SetBagsReturnedRequest toggles the bag-return flag on a log entry.
type SetBagsReturnedRequest struct {
	Returned bool `json:"returned"`
}

// OutstandingBagEntry is one client still holding deposit bags.
type OutstandingBagEntry struct {
	ClientName   string `json:"clientName"`
	LogEntryID   string `json:"logEntryId"`
	LastDelivery string `json:"lastDelivery"`
	DriverName   string `json:"driverName"`
	ReminderSent bool   `json:"reminderSent"`
}

// CandidateDatesResponse is the portal's date-picker read model.
type CandidateDatesResponse struct {
	ClientName string   `json:"clientName"`
	Candidates []string `json:"candidates"`
	Scheduled  []string `json:"scheduled"`
}

// SelectDatesRequest replaces a portal client's self-selected dates.
type SelectDatesRequest struct {
	Dates []string `json:"dates"`
}

// DeliveryLogEntry is one completed-stop record in the delivery log.
type DeliveryLogEntry struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	ClientName   string `json:"clientName"`
	ContactLabel string `json:"contactLabel"`
	Zone         string `json:"zone"`
	DriverName   string `json:"driverName"`
	CompletedAt  string `json:"completedAt"`
	Handoff      string `json:"handoff"`
	PhotoRef     string `json:"photoRef,omitempty"`
	BagsReturned bool   `json:"bagsReturned"`
	ReminderSent bool   `json:"reminderSent"`
	Problem      string `json:"problem,omitempty"`
	Note         string `json:"note,omitempty"`
}
