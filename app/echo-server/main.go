package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricingAdvisor/app/echo-server/router"
	"pricingAdvisor/business/simulation"
	"pricingAdvisor/business/simulator"
	"pricingAdvisor/business/training"
	"pricingAdvisor/internal/middleware"
	psqlRepo "pricingAdvisor/internal/repository/postgres"
	"pricingAdvisor/internal/rest"
	"pricingAdvisor/pkg/config"
	"pricingAdvisor/pkg/database"
	"pricingAdvisor/pkg/logger"
	"pricingAdvisor/pkg/metrics"
	"pricingAdvisor/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Pricing Strategy Advisor", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init repo
	datasetRepo := psqlRepo.NewDatasetRepository(db)
	scenarioRepo := psqlRepo.NewScenarioRepository(db)

	// Init core: one registry shared by training and simulation
	registry := simulator.NewRegistry()
	pricingSimulator := simulator.New(registry)

	// Init service
	trainingService := training.NewService(datasetRepo, registry)
	simulationService := simulation.NewService(
		pricingSimulator,
		registry,
		scenarioRepo,
		trainingService,
		cfg.Training.AutoTrainFallback,
		cfg.Training.SyntheticRecords,
	)

	if cfg.Training.TrainOnStartup {
		logger.Info("Training models on synthetic data at startup", "records", cfg.Training.SyntheticRecords)
		if err := trainingService.TrainSyntheticSnapshot(context.Background(), cfg.Training.SyntheticRecords); err != nil {
			logger.Error("Startup training failed", "error", err)
		} else {
			logger.Info("Models trained and ready")
		}
	}

	// Init handler
	authHandler := rest.NewAuthHandler(cfg.Admin.Username, cfg.Admin.PasswordHash)
	datasetHandler := rest.NewDatasetHandler(trainingService)
	modelHandler := rest.NewModelHandler(trainingService)
	simulationHandler := rest.NewSimulationHandler(simulationService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", "http://localhost:5174"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": cfg.App.Name + " is running",
			"version": cfg.App.Version,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupDatasetRoutes(api, datasetHandler)
	router.SetupModelRoutes(api, modelHandler)
	router.SetupSimulationRoutes(api, simulationHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
