package main

import (
	"fmt"
	"log/slog"
	"os"

	"clinch-calc/internal/api"
	"clinch-calc/internal/config"
	"clinch-calc/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)
	if cfg.LogFormat == "json" {
		logger = logging.NewJSONLogger(cfg.LogLevel, os.Stderr)
	}
	slog.SetDefault(logger)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.ProTokenSecret == "" {
		logger.Warn("PRO_TOKEN_SECRET is not set, every caller gets pro features")
	}

	router := api.NewRouter(cfg, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting API server", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
