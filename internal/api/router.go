// Package api assembles the HTTP presentation layer over the clinch engine.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"clinch-calc/internal/api/handlers"
	"clinch-calc/internal/api/middleware"
	"clinch-calc/internal/api/models"
	"clinch-calc/internal/config"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware, API routes and, when cfg.StaticDir exists,
// the single-page frontend.
func NewRouter(cfg *config.Server, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	clinchHandler := handlers.NewClinchHandler(cfg.MaxRemaining, logger)
	analysisHandler := handlers.NewAnalysisHandler(cfg.MaxRemaining)
	monteCarloHandler := handlers.NewMonteCarloHandler(cfg, logger)
	shareHandler := handlers.NewShareHandler(cfg.MaxRemaining)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.Capabilities(cfg.ProTokenSecret, logger))
	{
		api.POST("/clinch", clinchHandler.Evaluate)
		api.GET("/share", shareHandler.Open)
		api.POST("/share", shareHandler.Encode)

		pro := api.Group("", middleware.RequirePro())
		pro.POST("/clinch/csv", clinchHandler.ExportCSV)
		pro.POST("/sensitivity", analysisHandler.Sensitivity)
		pro.POST("/presets", analysisHandler.Presets)
		pro.POST("/montecarlo", monteCarloHandler.Simulate)
	}

	serveStatic(router, cfg.StaticDir, logger)
	return router
}

func serveStatic(router *gin.Engine, staticDir string, logger *slog.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "Not found",
			},
		})
	}

	if staticDir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		logger.Info("static directory not found, skipping static file serving", "dir", staticDir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

	// Serve index.html for all non-API routes (SPA routing)
	index := filepath.Join(staticDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	logger.Info("serving static files", "dir", staticDir)
}
