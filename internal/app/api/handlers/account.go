package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homedeco/marketplace/internal/app/api/middleware"
	"github.com/homedeco/marketplace/internal/app/service/account"
	"github.com/homedeco/marketplace/pkg/response"
)

// @Summary      Ensure Account
// @Description  Registers the caller's account on first sight; idempotent for existing accounts.
// @Tags         Account
// @Produce      json
// @Router       /api/v1/accounts/ensure [post]
func ApiEnsureAccount(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, err := svc.Ensure(c.Request.Context(), middleware.CallerEmail(c))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(acc))
	}
}

// @Summary      List Accounts
// @Description  Lists registered accounts.
// @Tags         Account
// @Produce      json
// @Router       /api/v1/accounts [get]
func ApiListAccounts(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Update Account Role (Admin)
// @Description  Sets an account's role; the acting admin is taken from the verified identity.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Router       /api/v1/accounts/{id}/role [patch]
func ApiUpdateAccountRole(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req account.UpdateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		req.AccountID = c.Param("id")
		req.AdminEmail = middleware.CallerEmail(c)
		acc, err := svc.UpdateRole(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(acc))
	}
}

// RegisterAccountRoutes wires account endpoints.
func RegisterAccountRoutes(auth, adm gin.IRouter, svc *account.Service, log *zap.SugaredLogger) {
	auth.POST("/accounts/ensure", ApiEnsureAccount(svc, log))
	auth.GET("/accounts", ApiListAccounts(svc, log))
	adm.PATCH("/accounts/:id/role", ApiUpdateAccountRole(svc, log))
}
