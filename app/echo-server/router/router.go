package router

import (
	"pricingAdvisor/internal/middleware"
	"pricingAdvisor/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")
	auth.POST("/login", handler.Login)
}

func SetupDatasetRoutes(api *echo.Group, handler *rest.DatasetHandler) {
	datasets := api.Group("/datasets", middleware.AuthMiddleware())
	datasets.POST("/upload", handler.Upload)
	datasets.POST("/generate", handler.Generate)
	datasets.GET("", handler.List)
	datasets.GET("/:id/segments", handler.Segments)
}

func SetupModelRoutes(api *echo.Group, handler *rest.ModelHandler) {
	models := api.Group("/models")
	models.POST("/train", handler.Train, middleware.AuthMiddleware())
	models.GET("/status", handler.Status)
}

func SetupSimulationRoutes(api *echo.Group, handler *rest.SimulationHandler) {
	simulations := api.Group("/simulations", middleware.AuthMiddleware())
	simulations.POST("/scenario", handler.Scenario)
	simulations.POST("/optimal", handler.Optimal)
	simulations.GET("/history", handler.History)

	predictions := api.Group("/predictions", middleware.AuthMiddleware())
	predictions.POST("/demand", handler.PredictDemand)
	predictions.POST("/churn", handler.PredictChurn)
}
