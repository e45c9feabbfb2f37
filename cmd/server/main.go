package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cabbooking/internal/app"
	"cabbooking/internal/config"
	"cabbooking/internal/handler"
	internalRedis "cabbooking/internal/redis"
	"cabbooking/internal/repository/postgres"
	"cabbooking/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	logger := app.NewLogger(cfg.Log)

	loc, err := cfg.City.Location()
	if err != nil {
		logger.WithError(err).Fatal("invalid city configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.WithError(err).Warn("failed to initialize New Relic")
		} else {
			logger.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	server, err := wireServer(db, redisClient, nrApp, cfg, loc, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build server")
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	loc *time.Location,
	logger *logrus.Logger,
) (*http.Server, error) {
	discountCache := internalRedis.NewDiscountCache(redisClient, cfg.Redis.DiscountCacheTTL)

	// Initialize repositories.
	transactor := postgres.NewTransactor(db)
	userRepo := postgres.NewUserRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	discountRepo := postgres.NewDiscountRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	// Initialize services.
	discountService := service.NewDiscountService(discountRepo, discountCache, loc, logger)
	rideService := service.NewRideService(transactor, rideRepo, locationRepo, paymentRepo, ratingRepo, discountService, loc, logger)
	rideQueryService := service.NewRideQueryService(rideRepo, loc, logger)
	userService := service.NewUserService(userRepo)
	driverService := service.NewDriverService(driverRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, driverRepo)
	cityService := service.NewCityService(cfg.City)

	router, err := app.NewRouter(app.RouterDeps{
		RideHandler:     handler.NewRideHandler(rideService, rideQueryService, loc),
		DiscountHandler: handler.NewDiscountHandler(discountService),
		UserHandler:     handler.NewUserHandler(userService),
		DriverHandler:   handler.NewDriverHandler(driverService),
		VehicleHandler:  handler.NewVehicleHandler(vehicleService),
		CityHandler:     handler.NewCityHandler(cityService),
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
		Logger:          logger,
		IdempotencyTTL:  cfg.Server.IdempotencyTTL,
	})
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
