package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sabhyata/internal/bookings"
	"sabhyata/internal/events"
	"sabhyata/internal/reservation"
	"sabhyata/internal/shared/config"
	"sabhyata/internal/shared/database"
	"sabhyata/internal/shared/middleware"
	"sabhyata/internal/shows"
	"sabhyata/internal/templates"
	"sabhyata/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	cacheService    cache.Service
	engine          reservation.Engine
	templateService templates.Service
	showService     shows.Service
	bookingService  bookings.Service
	publisher       bookings.EventPublisher
}

// NewRouter creates a new router instance. The publisher may be nil when
// Kafka is disabled; the booking service then skips event publishing.
func NewRouter(cfg *config.Config, db *database.DB, publisher bookings.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Shared infrastructure used across route groups
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}
	r.engine = reservation.NewEngine(r.db.GetPostgreSQL(), r.config.Reservation.SeatHoldTTL)

	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.Identity(r.config))
	{
		r.setupEventRoutes(api)
		r.setupTemplateRoutes(api)
		r.setupShowRoutes(api)
		r.setupBookingRoutes(api)
	}

	// Template edits propagate through the show service; wired after both
	// sides exist.
	r.templateService.SetPropagator(r.showService)
}

// Engine exposes the reservation engine for the reaper loop.
func (r *Router) Engine() reservation.Engine {
	return r.engine
}

// BookingService exposes the booking service for the reaper loop.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "sabhyata-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "sabhyata-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupTemplateRoutes configures seat template routes
func (r *Router) setupTemplateRoutes(rg *gin.RouterGroup) {
	templateRepo := templates.NewRepository(r.db.GetPostgreSQL())
	r.templateService = templates.NewService(templateRepo)
	templateController := templates.NewController(r.templateService)

	templates.SetupTemplateRoutes(rg, templateController)
}

// setupShowRoutes configures show instance and seat routes
func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	showRepo := shows.NewRepository(r.db.GetPostgreSQL())
	templateRepo := templates.NewRepository(r.db.GetPostgreSQL())

	r.showService = shows.NewService(
		showRepo,
		templateRepo,
		r.engine,
		r.config.Reservation.SeatHoldTTL,
		r.config.Redis.SeatMapTTL,
	)
	if r.cacheService != nil {
		r.showService.SetCacheService(r.cacheService)
	}

	showController := shows.NewController(r.showService)
	shows.SetupShowRoutes(rg, showController)
}

// setupBookingRoutes configures booking lifecycle routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())

	r.bookingService = bookings.NewService(
		bookingRepo,
		r.showService,
		r.engine,
		r.config.Reservation.LeaseWindow,
		r.config.Reservation.MaxSeatsPerBooking,
	)
	if r.publisher != nil {
		r.bookingService.SetEventPublisher(r.publisher)
	}

	bookingController := bookings.NewController(r.bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}
