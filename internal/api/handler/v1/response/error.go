package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ticketforge/ticketforge/internal/apperror"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`

	cause error
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string, cause error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        msg,
		cause:      cause,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "wrong credentials", err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// ErrFromDomain maps the engine's error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500 with the cause kept for the log.
func ErrFromDomain(err error) *Err {
	appErr := apperror.AsError(err)
	if appErr == nil {
		return ErrInternalServerError(err)
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		return NewErr(http.StatusBadRequest, appErr.Msg, err)
	case apperror.KindAuthorization:
		return NewErr(http.StatusForbidden, appErr.Msg, err)
	case apperror.KindState:
		return NewErr(http.StatusConflict, appErr.Msg, err)
	case apperror.KindPayment:
		return NewErr(http.StatusPaymentRequired, appErr.Msg, err)
	case apperror.KindNotFound:
		return NewErr(http.StatusNotFound, appErr.Msg, err)
	default:
		return ErrInternalServerError(err)
	}
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.cause),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
