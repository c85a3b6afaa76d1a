package shows

import (
	"sabhyata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing resolves show instances lazily
	shows := router.Group("/shows")
	{
		shows.GET("/resolve", controller.ResolveShow)
		shows.GET("/:showId", controller.GetShow)
		shows.GET("/:showId/seats", controller.GetSeatMap)
	}

	router.GET("/events/:eventId/shows", controller.ListShowsByEvent)

	// Seat mutations need a holder identity to lease against
	heldShows := router.Group("/shows")
	heldShows.Use(middleware.RequireHolder())
	{
		heldShows.POST("/:showId/seats/hold", controller.HoldSeats)
		heldShows.POST("/:showId/seats/release", controller.ReleaseSeats)
	}

	// Admin house management
	adminShows := router.Group("/admin/shows")
	adminShows.Use(middleware.RequireAdmin())
	{
		adminShows.POST("/:showId/seats/hold", controller.AdminHoldSeats)
		adminShows.POST("/:showId/seats/release", controller.AdminReleaseSeats)
	}
}
