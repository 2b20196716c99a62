package handlers

import (
	"net/http"

	"clinch-calc/internal/analysis"
	"clinch-calc/internal/api/models"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles the rate sweep and what-if preset requests
type AnalysisHandler struct {
	binder scenarioBinder
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(maxRemaining int) *AnalysisHandler {
	return &AnalysisHandler{binder: scenarioBinder{maxRemaining: maxRemaining}}
}

// Sensitivity handles POST /api/v1/sensitivity
func (h *AnalysisHandler) Sensitivity(c *gin.Context) {
	var req models.ScenarioRequest
	s, ok := h.binder.bindJSON(c, &req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.SensitivityResponse{
		Scenario: s,
		Step:     analysis.SweepStep,
		Side:     analysis.SweepSide,
		Cells:    analysis.Sweep(s),
	})
}

// Presets handles POST /api/v1/presets
func (h *AnalysisHandler) Presets(c *gin.Context) {
	var req models.ScenarioRequest
	s, ok := h.binder.bindJSON(c, &req)
	if !ok {
		return
	}

	results := analysis.ComparePresets(s)
	c.JSON(http.StatusOK, models.PresetsResponse{
		Scenario: s,
		Results:  results,
		Ranking:  analysis.RankPresets(results),
	})
}
