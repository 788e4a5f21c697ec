package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/homedeco/marketplace/internal/app/api/middleware"
	"github.com/homedeco/marketplace/internal/app/service/booking"
	"github.com/homedeco/marketplace/pkg/response"
	"github.com/homedeco/marketplace/pkg/types"
)

// @Summary      Create Booking
// @Description  Creates a booking with a freshly generated tracking id and pending payment status.
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Router       /api/v1/bookings [post]
func ApiCreateBooking(svc *booking.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req booking.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		b, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(b))
	}
}

// @Summary      Assign Decorator (Admin)
// @Description  Merges decorator contact fields into a paid booking and marks its work as assigned.
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Router       /api/v1/bookings/{id}/assign [patch]
func ApiAssignBooking(svc *booking.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req booking.AssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		req.BookingID = c.Param("id")
		b, err := svc.Assign(c.Request.Context(), &req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(b))
	}
}

// @Summary      List Bookings (Admin)
// @Description  Lists all bookings, optionally filtered by work status.
// @Tags         Booking
// @Produce      json
// @Router       /api/v1/bookings [get]
func ApiListBookings(svc *booking.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &booking.ListAllRequest{}
		if v, ok := c.GetQuery("work_status"); ok {
			req.WorkStatus = lo.ToPtr(types.WorkStatus(v))
		}
		res, err := svc.ListAll(c.Request.Context(), req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      My Bookings
// @Description  Lists the caller's bookings sorted by creation time.
// @Tags         Booking
// @Produce      json
// @Router       /api/v1/bookings/my [get]
func ApiMyBookings(svc *booking.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			email = middleware.CallerEmail(c)
		}
		if email != middleware.CallerEmail(c) {
			c.JSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "email does not match caller identity"))
			return
		}
		res, err := svc.ListByCustomer(c.Request.Context(), &booking.ListByCustomerRequest{
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

// @Summary      Delete Booking (Admin)
// @Description  Deletes a booking; payment ledger rows referencing it are retained.
// @Tags         Booking
// @Produce      json
// @Router       /api/v1/bookings/{id} [delete]
func ApiDeleteBooking(svc *booking.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"deleted": c.Param("id")}))
	}
}

// RegisterBookingRoutes wires booking endpoints: identity-checked routes on
// auth, admin-gated routes on adm.
func RegisterBookingRoutes(auth gin.IRouter, adm gin.IRouter, svc *booking.Service, log *zap.SugaredLogger) {
	auth.POST("/bookings", ApiCreateBooking(svc, log))
	auth.GET("/bookings/my", ApiMyBookings(svc, log))
	adm.GET("/bookings", ApiListBookings(svc, log))
	adm.PATCH("/bookings/:id/assign", ApiAssignBooking(svc, log))
	adm.DELETE("/bookings/:id", ApiDeleteBooking(svc, log))
}
