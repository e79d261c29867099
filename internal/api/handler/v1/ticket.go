package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/api/handler/v1/request"
	"github.com/ticketforge/ticketforge/internal/api/handler/v1/response"
	"github.com/ticketforge/ticketforge/internal/domain"
)

type TicketLedgerService interface {
	MintTicket(ctx context.Context, buyerID, eventID uint, payment decimal.Decimal) (domain.Ticket, error)
	Transfer(ctx context.Context, callerID, tokenID, toID uint) error
	MarkUsed(ctx context.Context, callerID, tokenID uint, used bool) error
	RequestRefund(ctx context.Context, callerID, tokenID uint) (decimal.Decimal, error)
	GetTicket(ctx context.Context, tokenID uint) (domain.Ticket, error)
	GetOwnerTickets(ctx context.Context, ownerID uint) ([]domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketLedgerService
}

func NewTicketHandler(svc TicketLedgerService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleMintTicket godoc
// @Summary      Mint a ticket against an event's capacity
// @Tags         tickets
// @Produce      json
// @Param        request   body      request.MintTicketRequest true "request body"
// @Success      201      {object}   domain.Ticket
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets [post]
func (h *TicketHandler) HandleMintTicket(ctx *gin.Context) {
	buyerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.MintTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	payment, ok := parseAmount(ctx, "payment", req.Payment)
	if !ok {
		return
	}

	ticket, err := h.svc.MintTicket(ctx.Request.Context(), buyerID, req.EventID, payment)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMintTicket -> h.svc.MintTicket", err)

		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleGetTicket godoc
// @Summary      Get a ticket by token ID
// @Tags         tickets
// @Produce      json
// @Param        tokenID   path       int  true  "token ID"
// @Success      200      {object}   domain.Ticket
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{tokenID} [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	ticket, err := h.svc.GetTicket(ctx.Request.Context(), tokenID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetTicket -> h.svc.GetTicket", err)

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleGetOwnedTickets godoc
// @Summary      List the caller's tickets
// @Tags         tickets
// @Produce      json
// @Success      200      {array}    domain.Ticket
// @Failure      500      {object}   response.Err
// @Router       /tickets [get]
func (h *TicketHandler) HandleGetOwnedTickets(ctx *gin.Context) {
	ownerID, ok := callerID(ctx)
	if !ok {
		return
	}

	tickets, err := h.svc.GetOwnerTickets(ctx.Request.Context(), ownerID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetOwnedTickets -> h.svc.GetOwnerTickets", err)

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleTransferTicket godoc
// @Summary      Transfer a ticket to another user
// @Tags         tickets
// @Produce      json
// @Param        tokenID   path      int true "token ID"
// @Param        request   body      request.TransferTicketRequest true "request body"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{tokenID}/transfer [post]
func (h *TicketHandler) HandleTransferTicket(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	var req request.TransferTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Transfer(ctx.Request.Context(), userID, tokenID, req.ToID); err != nil {
		renderServiceErr(ctx, "v1.HandleTransferTicket -> h.svc.Transfer", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMarkUsed godoc
// @Summary      Mark a ticket used or unused at check-in
// @Tags         tickets
// @Produce      json
// @Param        tokenID   path      int true "token ID"
// @Param        request   body      request.MarkUsedRequest true "request body"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{tokenID}/used [post]
func (h *TicketHandler) HandleMarkUsed(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	var req request.MarkUsedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.MarkUsed(ctx.Request.Context(), userID, tokenID, *req.Used); err != nil {
		renderServiceErr(ctx, "v1.HandleMarkUsed -> h.svc.MarkUsed", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRequestRefund godoc
// @Summary      Refund and burn a ticket before the event starts
// @Tags         tickets
// @Produce      json
// @Param        tokenID   path      int true "token ID"
// @Success      200      {object}   response.RefundResponse
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{tokenID}/refund [post]
func (h *TicketHandler) HandleRequestRefund(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	refunded, err := h.svc.RequestRefund(ctx.Request.Context(), userID, tokenID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRequestRefund -> h.svc.RequestRefund", err)

		return
	}

	ctx.JSON(http.StatusOK, response.RefundResponse{
		TokenID: tokenID,
		Amount:  refunded.String(),
	})
}
