package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cabbooking/internal/handler"
	"cabbooking/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler     *handler.RideHandler
	DiscountHandler *handler.DiscountHandler
	UserHandler     *handler.UserHandler
	DriverHandler   *handler.DriverHandler
	VehicleHandler  *handler.VehicleHandler
	CityHandler     *handler.CityHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
	Logger          logrus.FieldLogger
	IdempotencyTTL  time.Duration
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := handler.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributes())
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient, deps.IdempotencyTTL, deps.Logger))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("/by-date", deps.RideHandler.ByCreationDate)
			rides.GET("/completed-week", deps.RideHandler.CompletedForWeek)
			rides.GET("/in-progress/today", deps.RideHandler.InProgressToday)
			rides.GET("/high-value-week", deps.RideHandler.HighValueForWeek)
			rides.GET("/discount/:code", deps.RideHandler.ByDiscountCode)
			rides.GET("/:id", deps.RideHandler.GetRide)
		}

		// Discount routes.
		discounts := v1.Group("/discounts")
		{
			discounts.GET("/available", deps.DiscountHandler.Available)
			discounts.GET("/:code", deps.DiscountHandler.GetByCode)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.POST("", deps.UserHandler.Register)
			users.GET("/:id", deps.UserHandler.Get)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("", deps.DriverHandler.Register)
			drivers.GET("/:id", deps.DriverHandler.Get)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.Register)
			vehicles.GET("/:id", deps.VehicleHandler.Get)
		}

		v1.GET("/city", deps.CityHandler.Get)
	}

	return router, nil
}
