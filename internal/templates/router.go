package templates

import (
	"sabhyata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTemplateRoutes(router *gin.RouterGroup, controller Controller) {
	// Template layouts are an admin concern end to end; the public surface
	// only ever sees the seats cloned into show instances.
	adminTemplates := router.Group("/admin/templates")
	adminTemplates.Use(middleware.RequireAdmin())
	{
		adminTemplates.POST("", controller.CreateTemplate)
		adminTemplates.GET("/:templateId", controller.GetTemplate)
		adminTemplates.PUT("/:templateId", controller.UpdateTemplate)
		adminTemplates.DELETE("/:templateId", controller.DeleteTemplate)
		adminTemplates.POST("/:templateId/publish", controller.PublishTemplate)
		adminTemplates.PUT("/:templateId/categories/:category/price", controller.UpdateCategoryPrice)
		adminTemplates.POST("/:templateId/propagate", controller.Propagate)
	}

	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.RequireAdmin())
	{
		adminEvents.GET("/:eventId/template", controller.GetTemplateByEvent)
	}
}
