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

const defaultLedgerLimit = 50

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetLedgerEntries(ctx context.Context, userID uint, limit int) ([]domain.LedgerEntry, error)
}

type WalletService interface {
	Deposit(ctx context.Context, userID uint, amountWei decimal.Decimal, paymentMethodID string) (domain.User, error)
}

type UserHandler struct {
	svc    UserService
	wallet WalletService
}

func NewUserHandler(svc UserService, wallet WalletService) *UserHandler {
	return &UserHandler{
		svc:    svc,
		wallet: wallet,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path       int  true  "user ID"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUser -> h.svc.GetUser", err)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetLedger godoc
// @Summary      Get the caller's fund-movement ledger
// @Tags         users
// @Produce      json
// @Success      200      {array}    domain.LedgerEntry
// @Failure      500      {object}   response.Err
// @Router       /wallet/ledger [get]
func (h *UserHandler) HandleGetLedger(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	entries, err := h.svc.GetLedgerEntries(ctx.Request.Context(), userID, defaultLedgerLimit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetLedger -> h.svc.GetLedgerEntries", err)

		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleDeposit godoc
// @Summary      Fund the caller's wallet with a card payment
// @Tags         users
// @Produce      json
// @Param        request   body      request.DepositRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/deposit [post]
func (h *UserHandler) HandleDeposit(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.DepositRequest
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

	user, err := h.wallet.Deposit(ctx.Request.Context(), userID, amount, req.PaymentMethodID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDeposit -> h.wallet.Deposit", err)

		return
	}

	ctx.JSON(http.StatusOK, user)
}
