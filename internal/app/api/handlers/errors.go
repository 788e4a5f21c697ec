package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homedeco/marketplace/internal/app/service/account"
	"github.com/homedeco/marketplace/internal/app/service/booking"
	"github.com/homedeco/marketplace/internal/app/service/catalog"
	"github.com/homedeco/marketplace/internal/app/service/decorator"
	"github.com/homedeco/marketplace/internal/app/service/payment"
	"github.com/homedeco/marketplace/pkg/logctx"
	"github.com/homedeco/marketplace/pkg/response"

	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses and the response
// envelope. Unexpected failures are logged with full context and surfaced
// as a generic internal error without the underlying detail.
func respondError(c *gin.Context, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, decorator.ErrApplicationNotFound),
		errors.Is(err, account.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, payment.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
	case errors.Is(err, booking.ErrNotPaid),
		errors.Is(err, decorator.ErrInvalidDecision),
		errors.Is(err, account.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
	case errors.Is(err, payment.ErrGateway):
		logctx.FromGin(c, log).Warnw("gateway failure", "err", err)
		c.JSON(http.StatusBadGateway, response.ErrorT[any](response.APIResponseCodeGateway, "payment gateway unavailable"))
	default:
		logctx.FromGin(c, log).Errorw("internal failure", "err", err)
		c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, "internal error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
}
