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

type MarketplaceService interface {
	ListTicket(ctx context.Context, sellerID uint, collection string, tokenID uint, price decimal.Decimal) (domain.Listing, error)
	CancelListing(ctx context.Context, sellerID uint, collection string, tokenID uint) error
	BuyTicket(ctx context.Context, buyerID uint, collection string, tokenID uint, payment decimal.Decimal) error
	MakeOffer(ctx context.Context, offererID uint, collection string, tokenID uint, amount decimal.Decimal) (domain.Offer, error)
	CancelOffer(ctx context.Context, offererID uint, collection string, tokenID uint) error
	AcceptOffer(ctx context.Context, callerID uint, collection string, tokenID, offererID uint) error
	GetListing(ctx context.Context, collection string, tokenID uint) (domain.Listing, error)
	GetOffer(ctx context.Context, collection string, tokenID, offererID uint) (domain.Offer, error)
	GetConfig(ctx context.Context) (domain.MarketConfig, error)
	Initialize(ctx context.Context, callerID uint) error
	SetFeeRecipient(ctx context.Context, callerID, recipientID uint) error
	SetFeeBasisPoints(ctx context.Context, callerID uint, bps uint) error
	SetEventRoyalty(ctx context.Context, callerID, eventID uint, bps uint) error
	TogglePriceCeiling(ctx context.Context, callerID uint) (bool, error)
	TogglePause(ctx context.Context, callerID uint) (bool, error)
}

type MarketplaceHandler struct {
	svc MarketplaceService
}

func NewMarketplaceHandler(svc MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{
		svc: svc,
	}
}

// HandleListTicket godoc
// @Summary      List a ticket for resale
// @Tags         marketplace
// @Produce      json
// @Param        request   body      request.ListTicketRequest true "request body"
// @Success      201      {object}   domain.Listing
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/listings [post]
func (h *MarketplaceHandler) HandleListTicket(ctx *gin.Context) {
	sellerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.ListTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	price, ok := parseAmount(ctx, "price", req.Price)
	if !ok {
		return
	}

	listing, err := h.svc.ListTicket(ctx.Request.Context(), sellerID, req.Collection, req.TokenID, price)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTicket -> h.svc.ListTicket", err)

		return
	}

	ctx.JSON(http.StatusCreated, listing)
}

// HandleGetListing godoc
// @Summary      Get the active listing for a ticket
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Success      200      {object}   domain.Listing
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/listings/{collection}/{tokenID} [get]
func (h *MarketplaceHandler) HandleGetListing(ctx *gin.Context) {
	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	listing, err := h.svc.GetListing(ctx.Request.Context(), ctx.Param("collection"), tokenID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetListing -> h.svc.GetListing", err)

		return
	}

	ctx.JSON(http.StatusOK, listing)
}

// HandleCancelListing godoc
// @Summary      Cancel a listing and reclaim the ticket
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/listings/{collection}/{tokenID} [delete]
func (h *MarketplaceHandler) HandleCancelListing(ctx *gin.Context) {
	sellerID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	if err := h.svc.CancelListing(ctx.Request.Context(), sellerID, ctx.Param("collection"), tokenID); err != nil {
		renderServiceErr(ctx, "v1.HandleCancelListing -> h.svc.CancelListing", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleBuyTicket godoc
// @Summary      Buy a listed ticket at its asking price
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Param        request      body    request.BuyTicketRequest true "request body"
// @Success      204
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/listings/{collection}/{tokenID}/buy [post]
func (h *MarketplaceHandler) HandleBuyTicket(ctx *gin.Context) {
	buyerID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	var req request.BuyTicketRequest
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

	if err := h.svc.BuyTicket(ctx.Request.Context(), buyerID, ctx.Param("collection"), tokenID, payment); err != nil {
		renderServiceErr(ctx, "v1.HandleBuyTicket -> h.svc.BuyTicket", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMakeOffer godoc
// @Summary      Make an escrowed offer on a ticket
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Param        request      body    request.MakeOfferRequest true "request body"
// @Success      201      {object}   domain.Offer
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/offers/{collection}/{tokenID} [post]
func (h *MarketplaceHandler) HandleMakeOffer(ctx *gin.Context) {
	offererID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	var req request.MakeOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	amount, ok := parseAmount(ctx, "amount", req.Amount)
	if !ok {
		return
	}

	offer, err := h.svc.MakeOffer(ctx.Request.Context(), offererID, ctx.Param("collection"), tokenID, amount)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMakeOffer -> h.svc.MakeOffer", err)

		return
	}

	ctx.JSON(http.StatusCreated, offer)
}

// HandleGetOffer godoc
// @Summary      Get the caller's open offer on a ticket
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Success      200      {object}   domain.Offer
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/offers/{collection}/{tokenID} [get]
func (h *MarketplaceHandler) HandleGetOffer(ctx *gin.Context) {
	offererID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	offer, err := h.svc.GetOffer(ctx.Request.Context(), ctx.Param("collection"), tokenID, offererID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetOffer -> h.svc.GetOffer", err)

		return
	}

	ctx.JSON(http.StatusOK, offer)
}

// HandleCancelOffer godoc
// @Summary      Cancel the caller's open offer and refund its escrow
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/offers/{collection}/{tokenID} [delete]
func (h *MarketplaceHandler) HandleCancelOffer(ctx *gin.Context) {
	offererID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	if err := h.svc.CancelOffer(ctx.Request.Context(), offererID, ctx.Param("collection"), tokenID); err != nil {
		renderServiceErr(ctx, "v1.HandleCancelOffer -> h.svc.CancelOffer", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAcceptOffer godoc
// @Summary      Accept an open offer on a ticket the caller holds
// @Tags         marketplace
// @Produce      json
// @Param        collection   path    string true "collection"
// @Param        tokenID      path    int    true "token ID"
// @Param        request      body    request.AcceptOfferRequest true "request body"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/offers/{collection}/{tokenID}/accept [post]
func (h *MarketplaceHandler) HandleAcceptOffer(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	tokenID, ok := parseIDParam(ctx, "tokenID")
	if !ok {
		return
	}

	var req request.AcceptOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.AcceptOffer(ctx.Request.Context(), userID, ctx.Param("collection"), tokenID, req.OffererID); err != nil {
		renderServiceErr(ctx, "v1.HandleAcceptOffer -> h.svc.AcceptOffer", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetConfig godoc
// @Summary      Get the marketplace policy record
// @Tags         admin
// @Produce      json
// @Success      200      {object}   domain.MarketConfig
// @Failure      500      {object}   response.Err
// @Router       /marketplace/config [get]
func (h *MarketplaceHandler) HandleGetConfig(ctx *gin.Context) {
	conf, err := h.svc.GetConfig(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetConfig -> h.svc.GetConfig", err)

		return
	}

	ctx.JSON(http.StatusOK, conf)
}

// HandleInitialize godoc
// @Summary      Unpause a freshly deployed marketplace, once
// @Tags         admin
// @Produce      json
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/admin/initialize [post]
func (h *MarketplaceHandler) HandleInitialize(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	if err := h.svc.Initialize(ctx.Request.Context(), userID); err != nil {
		renderServiceErr(ctx, "v1.HandleInitialize -> h.svc.Initialize", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetFeeRecipient godoc
// @Summary      Set the platform fee recipient
// @Tags         admin
// @Produce      json
// @Param        request   body      request.SetFeeRecipientRequest true "request body"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/admin/fee-recipient [put]
func (h *MarketplaceHandler) HandleSetFeeRecipient(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.SetFeeRecipientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SetFeeRecipient(ctx.Request.Context(), userID, req.RecipientID); err != nil {
		renderServiceErr(ctx, "v1.HandleSetFeeRecipient -> h.svc.SetFeeRecipient", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetFeeBps godoc
// @Summary      Set the platform fee in basis points
// @Tags         admin
// @Produce      json
// @Param        request   body      request.SetFeeBpsRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/admin/fee-bps [put]
func (h *MarketplaceHandler) HandleSetFeeBps(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.SetFeeBpsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SetFeeBasisPoints(ctx.Request.Context(), userID, req.FeeBps); err != nil {
		renderServiceErr(ctx, "v1.HandleSetFeeBps -> h.svc.SetFeeBasisPoints", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetEventRoyalty godoc
// @Summary      Set an event's resale royalty in basis points
// @Tags         admin
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Param        request   body      request.SetRoyaltyRequest true "request body"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/admin/events/{eventID}/royalty [put]
func (h *MarketplaceHandler) HandleSetEventRoyalty(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	var req request.SetRoyaltyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SetEventRoyalty(ctx.Request.Context(), userID, eventID, req.RoyaltyBps); err != nil {
		renderServiceErr(ctx, "v1.HandleSetEventRoyalty -> h.svc.SetEventRoyalty", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleTogglePriceCeiling godoc
// @Summary      Toggle resale price-ceiling enforcement
// @Tags         admin
// @Produce      json
// @Success      200      {object}   response.ToggleResponse
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/admin/price-ceiling [post]
func (h *MarketplaceHandler) HandleTogglePriceCeiling(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	enabled, err := h.svc.TogglePriceCeiling(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleTogglePriceCeiling -> h.svc.TogglePriceCeiling", err)

		return
	}

	ctx.JSON(http.StatusOK, response.ToggleResponse{Enabled: enabled})
}

// HandleTogglePause godoc
// @Summary      Toggle the marketplace pause flag
// @Tags         admin
// @Produce      json
// @Success      200      {object}   response.ToggleResponse
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/admin/pause [post]
func (h *MarketplaceHandler) HandleTogglePause(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	paused, err := h.svc.TogglePause(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleTogglePause -> h.svc.TogglePause", err)

		return
	}

	ctx.JSON(http.StatusOK, response.ToggleResponse{Enabled: paused})
}
