package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/homedeco/marketplace/internal/app/service/decorator"
	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/response"
)

// DecoratorListing is the public view of an accepted application.
type DecoratorListing struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	ServiceType string `json:"service_type"`
	WorkStatus  string `json:"work_status"`
}

// @Summary      Apply as Decorator
// @Description  Files a decorator application; a live application for the same email is reported as already existing.
// @Tags         Decorator
// @Accept       json
// @Produce      json
// @Router       /api/v1/decorators/apply [post]
func ApiApplyDecorator(svc *decorator.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req decorator.ApplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.Apply(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Decide Application (Admin)
// @Description  Accepts or rejects a pending application; acceptance promotes the account role to decorator.
// @Tags         Decorator
// @Accept       json
// @Produce      json
// @Router       /api/v1/decorators/{id}/decision [patch]
func ApiDecideApplication(svc *decorator.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req decorator.DecideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		req.ApplicationID = c.Param("id")
		app, err := svc.Decide(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(app))
	}
}

// @Summary      List Decorators
// @Description  Lists accepted decorator applications, optionally filtered by service type.
// @Tags         Decorator
// @Produce      json
// @Router       /api/v1/decorators [get]
func ApiListDecorators(svc *decorator.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.List(c.Request.Context(), &decorator.ListRequest{
			ServiceType: c.Query("service_type"),
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		listings := lo.Map(rows, func(app *models.DecoratorApplication, _ int) DecoratorListing {
			return DecoratorListing{
				ID:          app.ID,
				Email:       app.Email,
				ServiceType: app.ServiceType,
				WorkStatus:  app.WorkStatus,
			}
		})
		c.JSON(http.StatusOK, response.OKT(listings))
	}
}

// @Summary      Delete Application (Admin)
// @Description  Hard-deletes a decorator application by id.
// @Tags         Decorator
// @Produce      json
// @Router       /api/v1/decorators/{id} [delete]
func ApiDeleteApplication(svc *decorator.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"deleted": c.Param("id")}))
	}
}

// RegisterDecoratorRoutes wires decorator endpoints across the public,
// identity-checked, and admin route groups.
func RegisterDecoratorRoutes(pub, auth, adm gin.IRouter, svc *decorator.Service, log *zap.SugaredLogger) {
	pub.GET("/decorators", ApiListDecorators(svc, log))
	auth.POST("/decorators/apply", ApiApplyDecorator(svc, log))
	adm.PATCH("/decorators/:id/decision", ApiDecideApplication(svc, log))
	adm.DELETE("/decorators/:id", ApiDeleteApplication(svc, log))
}
