package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/api/handler/v1/response"
	"github.com/ticketforge/ticketforge/internal/api/middleware"
	"github.com/ticketforge/ticketforge/internal/apperror"
)

// callerID reads the authenticated user from the request context. The
// authenticator middleware guarantees it is set on protected routes.
func callerID(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.CallerID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("missing authenticated user in context")))

		return 0, false
	}

	return id, true
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw)))

		return 0, false
	}

	return uint(id), true
}

func parseAmount(ctx *gin.Context, name, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw)))

		return decimal.Zero, false
	}

	return amount, true
}

// renderServiceErr maps a service failure onto the HTTP response. Taxonomy
// errors carry their own status; everything else is a 500.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	if apperror.AsError(err) != nil {
		response.RenderErr(ctx, response.ErrFromDomain(err))

		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
}
