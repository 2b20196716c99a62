package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"clinch-calc/internal/api/models"
	"clinch-calc/internal/config"
	"clinch-calc/internal/montecarlo"

	"github.com/gin-gonic/gin"
)

// MonteCarloHandler handles simulation requests
type MonteCarloHandler struct {
	binder        scenarioBinder
	defaultTrials int
	maxTrials     int
	workers       int
	cache         *montecarlo.CurveCache
	logger        *slog.Logger
}

// NewMonteCarloHandler creates a new Monte Carlo handler from the server config
func NewMonteCarloHandler(cfg *config.Server, logger *slog.Logger) *MonteCarloHandler {
	return &MonteCarloHandler{
		binder:        scenarioBinder{maxRemaining: cfg.MaxRemaining},
		defaultTrials: cfg.DefaultTrials,
		maxTrials:     cfg.MaxTrials,
		workers:       cfg.Workers,
		cache:         montecarlo.NewCurveCache(cfg.CacheTTL, cfg.CacheSize),
		logger:        logger,
	}
}

// Simulate handles POST /api/v1/montecarlo
func (h *MonteCarloHandler) Simulate(c *gin.Context) {
	var req models.MonteCarloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	s, ok := h.binder.validate(c, req.Raw())
	if !ok {
		return
	}

	if req.Volatility < 0 || req.Volatility > montecarlo.MaxVolatility {
		h.invalidParam(c, "volatility", fmt.Sprintf("volatility must be within [0, %g]", montecarlo.MaxVolatility))
		return
	}
	trials := req.Trials
	if trials == 0 {
		trials = h.defaultTrials
	}
	if trials < 1 || trials > h.maxTrials {
		h.invalidParam(c, "trials", fmt.Sprintf("trials must be within [1, %d]", h.maxTrials))
		return
	}

	seed := montecarlo.RandomSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	opts := montecarlo.Options{
		Volatility: req.Volatility,
		Trials:     trials,
		Workers:    h.workers,
		Seed:       seed,
	}

	// Only caller-seeded runs are repeatable, so only those are cached.
	key := ""
	if req.Seed != nil {
		key = montecarlo.CacheKey(s, opts)
		if curve, ok := h.cache.Get(key); ok {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, models.MonteCarloResponse{Scenario: s, Seed: seed, Curve: curve})
			return
		}
	}

	curve, err := montecarlo.SimulateParallel(c.Request.Context(), s, opts)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SIMULATION_ERROR"
		if errors.Is(err, c.Request.Context().Err()) {
			status = http.StatusServiceUnavailable
			code = "SIMULATION_CANCELLED"
		}
		h.logger.Warn("simulation failed", "error", err, "trials", trials)
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}
	if key != "" {
		h.cache.Set(key, curve)
	}

	c.JSON(http.StatusOK, models.MonteCarloResponse{
		Scenario: s,
		Seed:     seed,
		Curve:    curve,
	})
}

func (h *MonteCarloHandler) invalidParam(c *gin.Context, field, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: msg,
			Details: map[string]interface{}{
				"field":  field,
				"reason": "out-of-range",
			},
		},
	})
}
