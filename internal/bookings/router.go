package bookings

import (
	"sabhyata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	bookings := router.Group("/bookings")
	bookings.Use(middleware.RequireHolder())
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("", controller.ListMyBookings)
		bookings.GET("/:bookingId", controller.GetBooking)
		bookings.POST("/:bookingId/confirm", controller.ConfirmBooking)
		bookings.POST("/:bookingId/cancel", controller.CancelBooking)
	}

	// Reference lookup works without identity so box office staff can pull
	// up a booking the customer quotes.
	router.GET("/bookings/reference/:reference", controller.GetBookingByReference)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/bookings/:bookingId/refund", controller.RefundBooking)
		admin.POST("/tickets/:ticketNumber/redeem", controller.RedeemTicket)
	}
}
