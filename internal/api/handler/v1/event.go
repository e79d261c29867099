package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/api/handler/v1/request"
	"github.com/ticketforge/ticketforge/internal/api/handler/v1/response"
	"github.com/ticketforge/ticketforge/internal/domain"
)

type EventRegistryService interface {
	CreateEvent(ctx context.Context, organizerID uint, metadataURI string, startTime, endTime time.Time, ticketPrice decimal.Decimal, maxTickets uint) (domain.Event, error)
	UpdateEvent(ctx context.Context, callerID, eventID uint, metadataURI string, startTime, endTime time.Time) (domain.Event, error)
	CancelEvent(ctx context.Context, callerID, eventID uint) error
	GetEvent(ctx context.Context, eventID uint) (domain.Event, error)
	GetOrganizerEvents(ctx context.Context, organizerID uint) ([]domain.Event, error)
	WithdrawProceeds(ctx context.Context, callerID, eventID uint) (decimal.Decimal, error)
}

type EventHandler struct {
	svc EventRegistryService
}

func NewEventHandler(svc EventRegistryService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	organizerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	price, ok := parseAmount(ctx, "ticket_price", req.TicketPrice)
	if !ok {
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), organizerID, req.MetadataURI, req.StartTime, req.EndTime, price, req.MaxTickets)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.CreateEvent", err)

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID   path       int  true  "event ID"
// @Success      200      {object}   domain.Event
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.GetEvent", err)

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleGetOrganizerEvents godoc
// @Summary      List the caller's events in creation order
// @Tags         events
// @Produce      json
// @Success      200      {array}    domain.Event
// @Failure      500      {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleGetOrganizerEvents(ctx *gin.Context) {
	organizerID, ok := callerID(ctx)
	if !ok {
		return
	}

	events, err := h.svc.GetOrganizerEvents(ctx.Request.Context(), organizerID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetOrganizerEvents -> h.svc.GetOrganizerEvents", err)

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleUpdateEvent godoc
// @Summary      Update an event's metadata and schedule
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Param        request   body      request.UpdateEventRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), userID, eventID, req.MetadataURI, req.StartTime, req.EndTime)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.UpdateEvent", err)

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCancelEvent godoc
// @Summary      Cancel an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [delete]
func (h *EventHandler) HandleCancelEvent(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	if err := h.svc.CancelEvent(ctx.Request.Context(), userID, eventID); err != nil {
		renderServiceErr(ctx, "v1.HandleCancelEvent -> h.svc.CancelEvent", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleWithdrawProceeds godoc
// @Summary      Withdraw the event escrow after the event ends
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200      {object}   response.WithdrawResponse
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/withdraw [post]
func (h *EventHandler) HandleWithdrawProceeds(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	amount, err := h.svc.WithdrawProceeds(ctx.Request.Context(), userID, eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleWithdrawProceeds -> h.svc.WithdrawProceeds", err)

		return
	}

	ctx.JSON(http.StatusOK, response.WithdrawResponse{
		EventID: eventID,
		Amount:  amount.String(),
	})
}
