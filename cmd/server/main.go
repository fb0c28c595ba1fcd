package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"turftrack/internal/config"
	"turftrack/internal/controller"
	"turftrack/internal/middleware"
	"turftrack/internal/repository"
	"turftrack/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	db, err := repository.Open(cfg)
	if err != nil {
		logger.Error("failed to open database", "error", err.Error())
		os.Exit(1)
	}

	if cfg.Seed {
		if err := repository.NewSeedRepository(db).SeedDatabase(); err != nil {
			logger.Error("failed to seed database", "error", err.Error())
			os.Exit(1)
		}
	}

	plotRepo := repository.NewPlotRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	grassTypeRepo := repository.NewGrassTypeRepository(db)
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)

	plotService := service.NewPlotService(plotRepo)
	treatmentService := service.NewTreatmentService(treatmentRepo, plotRepo)
	lookupService := service.NewLookupService(locationRepo, grassTypeRepo)
	contactService := service.NewContactService(contactRepo)

	plotController := controller.NewPlotController(plotService, treatmentService, logger)
	treatmentController := controller.NewTreatmentController(treatmentService, logger)
	lookupController := controller.NewLookupController(lookupService, logger)
	contactController := controller.NewContactController(contactService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.StructuredLoggingMiddleware(logger))
	router.Use(middleware.Identity(userRepo, logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/metrics", middleware.MetricsHandler)

		locations := v1.Group("/locations")
		{
			locations.POST("", lookupController.CreateLocation)
			locations.GET("", lookupController.ListLocations)
			locations.GET("/:id", lookupController.GetLocation)
			locations.PATCH("/:id", lookupController.UpdateLocation)
			locations.DELETE("/:id", lookupController.DeleteLocation)
		}

		grassTypes := v1.Group("/grass-types")
		{
			grassTypes.POST("", lookupController.CreateGrassType)
			grassTypes.GET("", lookupController.ListGrassTypes)
			grassTypes.GET("/:id", lookupController.GetGrassType)
			grassTypes.PATCH("/:id", lookupController.UpdateGrassType)
			grassTypes.DELETE("/:id", lookupController.DeleteGrassType)
		}

		plots := v1.Group("/plots")
		{
			plots.POST("", plotController.Create)
			plots.GET("", plotController.List)
			plots.GET("/:id", plotController.Get)
			plots.PATCH("/:id", plotController.Update)
			plots.DELETE("/:id", plotController.Delete)
			plots.PUT("/:id/parent", plotController.SetParent)
			plots.GET("/:id/subplots", plotController.Subplots)
			plots.GET("/:id/hierarchy", plotController.Hierarchy)
			plots.GET("/:id/treatments", plotController.TreatmentHistory)
		}

		treatments := v1.Group("/treatments")
		{
			treatments.POST("", treatmentController.Create)
			treatments.GET("", treatmentController.List)
			treatments.GET("/:id", treatmentController.Get)
			treatments.PATCH("/:id", treatmentController.Update)
			treatments.DELETE("/:id", treatmentController.Delete)
		}

		contact := v1.Group("/contact")
		{
			contact.POST("", contactController.Submit)
			contact.GET("", contactController.List)
		}
	}

	logger.Info("server starting",
		"port", cfg.Port,
		"db_driver", cfg.DBDriver,
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
