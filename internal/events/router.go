package events

import (
	"sabhyata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)
		publicEvents.GET("/:eventId", controller.GetEvent)
		publicEvents.GET("/slug/:slug", controller.GetEventBySlug)
	}

	// Admin routes - event management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)
		adminEvents.PUT("/:eventId", controller.UpdateEvent)
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)
	}
}
