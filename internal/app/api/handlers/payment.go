package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homedeco/marketplace/internal/app/api/middleware"
	"github.com/homedeco/marketplace/internal/app/service/payment"
	"github.com/homedeco/marketplace/pkg/response"
	"github.com/homedeco/marketplace/pkg/types"
)

type confirmRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// @Summary      Start Checkout
// @Description  Opens a hosted payment session for a booking and returns the redirect URL.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Router       /api/v1/payments/checkout [post]
func ApiStartCheckout(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.StartCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.StartCheckout(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Confirm Payment
// @Description  Idempotently reconciles a gateway session into the booking and payment ledger.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Router       /api/v1/payments/confirm [post]
func ApiConfirmPayment(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req confirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.Confirm(c.Request.Context(), req.SessionID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Payment History
// @Description  Lists the caller's payments; the email query must match the verified identity.
// @Tags         Payment
// @Produce      json
// @Router       /api/v1/payments/history [get]
func ApiPaymentHistory(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			email = middleware.CallerEmail(c)
		}
		if email != middleware.CallerEmail(c) {
			c.JSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "email does not match caller identity"))
			return
		}
		res, err := svc.History(c.Request.Context(), &payment.HistoryRequest{
			Email: email,
			Sort:  types.ParseSortOrder(c.Query("sort")),
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// RegisterPaymentRoutes wires payment endpoints; all require the identity
// check.
func RegisterPaymentRoutes(auth gin.IRouter, svc *payment.Service, log *zap.SugaredLogger) {
	auth.POST("/payments/checkout", ApiStartCheckout(svc, log))
	auth.POST("/payments/confirm", ApiConfirmPayment(svc, log))
	auth.GET("/payments/history", ApiPaymentHistory(svc, log))
}
