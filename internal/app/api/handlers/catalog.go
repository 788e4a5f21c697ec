package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homedeco/marketplace/internal/app/service/catalog"
	"github.com/homedeco/marketplace/pkg/response"
)

// @Summary      Create Service
// @Description  Adds a decoration service listing to the catalog.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Router       /api/v1/services [post]
func ApiCreateService(svc *catalog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(created))
	}
}

// @Summary      List Services
// @Tags         Catalog
// @Produce      json
// @Router       /api/v1/services [get]
func ApiListServices(svc *catalog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Get Service
// @Tags         Catalog
// @Produce      json
// @Router       /api/v1/services/{id} [get]
func ApiGetService(svc *catalog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(row))
	}
}

// @Summary      Top Rated Services
// @Description  Returns the highest-rated listings for the home page.
// @Tags         Catalog
// @Produce      json
// @Router       /api/v1/top_rating [get]
func ApiTopRatedServices(svc *catalog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.TopRated(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Delete Service (Admin)
// @Tags         Catalog
// @Produce      json
// @Router       /api/v1/services/{id} [delete]
func ApiDeleteService(svc *catalog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"deleted": c.Param("id")}))
	}
}

// RegisterCatalogRoutes wires catalog endpoints; deletion is admin-gated.
func RegisterCatalogRoutes(pub, adm gin.IRouter, svc *catalog.Service, log *zap.SugaredLogger) {
	pub.POST("/services", ApiCreateService(svc, log))
	pub.GET("/services", ApiListServices(svc, log))
	pub.GET("/services/:id", ApiGetService(svc, log))
	pub.GET("/top_rating", ApiTopRatedServices(svc, log))
	adm.DELETE("/services/:id", ApiDeleteService(svc, log))
}
