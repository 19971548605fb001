// Package http exposes the dispatch engine over REST: order intake,
// courier-facing lifecycle events and customer tracking.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignOrderHandler     commands.AssignOrderCommandHandler
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler
	endTrialHandler        commands.EndTrialCommandHandler

	// Query handlers
	getTrackingHandler          queries.GetTrackingQueryHandler
	getActiveAssignmentsHandler queries.GetActiveAssignmentsQueryHandler

	// Read-only access for response enrichment
	ledger       *services.DispatchLedger
	storeCatalog ports.StoreCatalog
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignOrderHandler commands.AssignOrderCommandHandler,
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler,
	endTrialHandler commands.EndTrialCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getActiveAssignmentsHandler queries.GetActiveAssignmentsQueryHandler,
	ledger *services.DispatchLedger,
	storeCatalog ports.StoreCatalog,
) *Server {
	return &Server{
		assignOrderHandler:          assignOrderHandler,
		advanceDeliveryHandler:      advanceDeliveryHandler,
		endTrialHandler:             endTrialHandler,
		getTrackingHandler:          getTrackingHandler,
		getActiveAssignmentsHandler: getActiveAssignmentsHandler,
		ledger:                      ledger,
		storeCatalog:                storeCatalog,
	}
}

// RegisterRoutes attaches all dispatch routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders/:orderID/assign", s.AssignOrder)
	e.POST("/api/v1/orders/:orderID/advance", s.AdvanceDelivery)
	e.POST("/api/v1/orders/:orderID/trial/end", s.EndTrial)
	e.GET("/api/v1/orders/:orderID/tracking", s.GetTracking)
	e.GET("/api/v1/assignments/active", s.GetActiveAssignments)
}

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignOrderRequest is the order-intake payload.
type AssignOrderRequest struct {
	UserZone    string  `json:"user_zone"`
	UserLat     float64 `json:"user_lat"`
	UserLng     float64 `json:"user_lng"`
	ServiceMode string  `json:"service_mode"`
}

// AssignmentResponse describes a successful dispatch, enriched with
// courier and store display data for the customer.
type AssignmentResponse struct {
	AssignmentID   string    `json:"assignment_id"`
	OrderID        string    `json:"order_id"`
	ServiceMode    string    `json:"service_mode"`
	ETALowMinutes  int       `json:"eta_low_minutes"`
	ETAHighMinutes int       `json:"eta_high_minutes"`
	ETA            string    `json:"eta"`
	CreatedAt      time.Time `json:"created_at"`

	CourierID      string  `json:"courier_id"`
	CourierName    string  `json:"courier_name"`
	CourierPhone   string  `json:"courier_phone"`
	VehicleType    string  `json:"vehicle_type"`
	CourierRating  float64 `json:"courier_rating"`
	StoreID        string  `json:"store_id"`
	StoreName      string  `json:"store_name"`
	StoreAddress   string  `json:"store_address"`
	OperatingHours string  `json:"operating_hours"`
}

// AdvanceDeliveryRequest names the status the delivery should move to.
type AdvanceDeliveryRequest struct {
	Status string `json:"status"`
}

// DeliveryStatusResponse reports the authoritative state of a delivery.
type DeliveryStatusResponse struct {
	OrderID         string     `json:"order_id"`
	Status          string     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	TrialDeadline   *time.Time `json:"trial_deadline,omitempty"`
}

// TrackingHistoryItem is one timeline entry of the tracking view.
type TrackingHistoryItem struct {
	Status    string    `json:"status"`
	EnteredAt time.Time `json:"entered_at"`
	Auto      bool      `json:"auto"`
}

// TrackingResponse is the customer-facing tracking view of one order.
type TrackingResponse struct {
	OrderID         string                `json:"order_id"`
	ServiceMode     string                `json:"service_mode"`
	Status          string                `json:"status"`
	ProgressPercent int                   `json:"progress_percent"`
	ETALowMinutes   int                   `json:"eta_low_minutes"`
	ETAHighMinutes  int                   `json:"eta_high_minutes"`
	TrialDeadline   *time.Time            `json:"trial_deadline,omitempty"`
	History         []TrackingHistoryItem `json:"history"`

	CourierID    string `json:"courier_id"`
	CourierName  string `json:"courier_name,omitempty"`
	CourierPhone string `json:"courier_phone,omitempty"`
	VehicleType  string `json:"vehicle_type,omitempty"`
	StoreID      string `json:"store_id"`
	StoreName    string `json:"store_name,omitempty"`
	StoreAddress string `json:"store_address,omitempty"`
}

// ActiveAssignmentResponse is one dispatch board row.
type ActiveAssignmentResponse struct {
	AssignmentID   string    `json:"assignment_id"`
	OrderID        string    `json:"order_id"`
	CourierID      string    `json:"courier_id"`
	StoreID        string    `json:"store_id"`
	ServiceMode    string    `json:"service_mode"`
	Status         string    `json:"status"`
	ETALowMinutes  int       `json:"eta_low_minutes"`
	ETAHighMinutes int       `json:"eta_high_minutes"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssignOrder handles POST /api/v1/orders/:orderID/assign - dispatches an order.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request AssignOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	userLocation, err := kernel.NewGeoPoint(request.UserLat, request.UserLng)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user location: " + err.Error(),
		})
	}

	serviceMode, err := delivery.ServiceModeFromString(request.ServiceMode)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid service mode: " + err.Error(),
		})
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, kernel.Zone(request.UserZone), userLocation, serviceMode)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispatch request: " + err.Error(),
		})
	}

	result, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderAlreadyAssigned):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order already has a live assignment",
			})
		case errors.Is(err, commands.ErrNoStoreAvailable):
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "Service unavailable in your area",
			})
		case errors.Is(err, commands.ErrNoCourierAvailable):
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "No courier available right now",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to dispatch order",
			})
		}
	}

	window := result.Assignment.ETAWindow()
	return ctx.JSON(http.StatusCreated, AssignmentResponse{
		AssignmentID:   result.Assignment.ID().String(),
		OrderID:        result.Assignment.OrderID().String(),
		ServiceMode:    result.Assignment.ServiceMode().String(),
		ETALowMinutes:  window.LowMinutes(),
		ETAHighMinutes: window.HighMinutes(),
		ETA:            window.String(),
		CreatedAt:      result.Assignment.CreatedAt(),
		CourierID:      result.Courier.ID().String(),
		CourierName:    result.Courier.Name(),
		CourierPhone:   result.Courier.Phone(),
		VehicleType:    result.Courier.VehicleType(),
		CourierRating:  result.Courier.Rating(),
		StoreID:        result.Store.ID().String(),
		StoreName:      result.Store.Name(),
		StoreAddress:   result.Store.Address(),
		OperatingHours: result.Store.OperatingHours(),
	})
}

// AdvanceDelivery handles POST /api/v1/orders/:orderID/advance - moves a
// delivery one step along its lifecycle. A transition that is not legal
// from the current status is a no-op; the response still carries the
// authoritative status so a client retrying with stale state self-corrects.
func (s *Server) AdvanceDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request AdvanceDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := delivery.StatusFromString(request.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, target)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid advance request: " + err.Error(),
		})
	}

	state, err := s.advanceDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, commands.ErrStatusTransitionNotAllowed) {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to advance delivery",
		})
	}

	return ctx.JSON(http.StatusOK, newDeliveryStatusResponse(state))
}

// EndTrial handles POST /api/v1/orders/:orderID/trial/end - closes a home
// trial window early on the customer's word.
func (s *Server) EndTrial(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewEndTrialCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid end trial request: " + err.Error(),
		})
	}

	state, err := s.endTrialHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, delivery.ErrDeliveryIsNotInTrial):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Delivery is not in a trial window",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to end trial",
			})
		}
	}

	return ctx.JSON(http.StatusOK, newDeliveryStatusResponse(state))
}

// GetTracking handles GET /api/v1/orders/:orderID/tracking - the customer
// tracking view, enriched with courier and store display data.
func (s *Server) GetTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetTrackingQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking request: " + err.Error(),
		})
	}

	tracking, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve tracking",
		})
	}

	history := make([]TrackingHistoryItem, len(tracking.History))
	for i, item := range tracking.History {
		history[i] = TrackingHistoryItem{
			Status:    item.Status,
			EnteredAt: item.EnteredAt,
			Auto:      item.Auto,
		}
	}

	response := TrackingResponse{
		OrderID:         tracking.OrderID.String(),
		ServiceMode:     tracking.ServiceMode,
		Status:          tracking.Status,
		ProgressPercent: tracking.ProgressPercent,
		ETALowMinutes:   tracking.ETALowMinutes,
		ETAHighMinutes:  tracking.ETAHighMinutes,
		TrialDeadline:   tracking.TrialDeadline,
		History:         history,
		CourierID:       tracking.CourierID.String(),
		StoreID:         tracking.StoreID.String(),
	}

	// Display enrichment is best effort; the tracking view stays useful
	// even if the courier left the ledger or the store left the catalog.
	if courier, courierErr := s.ledger.Get(tracking.CourierID); courierErr == nil {
		response.CourierName = courier.Name()
		response.CourierPhone = courier.Phone()
		response.VehicleType = courier.VehicleType()
	}
	if store, storeErr := s.storeCatalog.Get(ctx.Request().Context(), tracking.StoreID); storeErr == nil {
		response.StoreName = store.Name()
		response.StoreAddress = store.Address()
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveAssignments handles GET /api/v1/assignments/active - the
// dispatch board of every live assignment with its delivery status.
func (s *Server) GetActiveAssignments(ctx echo.Context) error {
	query := queries.NewGetActiveAssignmentsQuery()

	rows, err := s.getActiveAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve active assignments",
		})
	}

	response := make([]ActiveAssignmentResponse, len(rows))
	for i, row := range rows {
		response[i] = ActiveAssignmentResponse{
			AssignmentID:   row.AssignmentID.String(),
			OrderID:        row.OrderID.String(),
			CourierID:      row.CourierID.String(),
			StoreID:        row.StoreID.String(),
			ServiceMode:    row.ServiceMode,
			Status:         row.Status,
			ETALowMinutes:  row.ETALowMinutes,
			ETAHighMinutes: row.ETAHighMinutes,
			CreatedAt:      row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func newDeliveryStatusResponse(state *delivery.DeliveryState) DeliveryStatusResponse {
	response := DeliveryStatusResponse{
		OrderID:         state.OrderID().String(),
		Status:          state.CurrentStatus().String(),
		ProgressPercent: state.CurrentStatus().ProgressPercent(),
	}

	if !state.TrialDeadline().IsZero() {
		deadline := state.TrialDeadline()
		response.TrialDeadline = &deadline
	}

	return response
}
