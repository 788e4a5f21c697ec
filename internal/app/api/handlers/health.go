package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homedeco/marketplace/pkg/response"
)

// @Summary      Health check
// @Description  Returns service availability
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, response.OKT(map[string]string{
		"status":  "ok",
		"service": "marketplace",
	}))
}

func RegisterHealthRoutes(r gin.IRouter) {
	r.GET("/healthz", Healthz)
}
