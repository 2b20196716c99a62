package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"clinch-calc/internal/api/middleware"
	"clinch-calc/internal/api/models"
	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"

	"github.com/gin-gonic/gin"
)

// FreeRows is how many trace rows a free-tier caller sees.
const FreeRows = 4

// ClinchHandler handles clinch evaluation requests
type ClinchHandler struct {
	binder scenarioBinder
	logger *slog.Logger
}

// NewClinchHandler creates a new clinch handler
func NewClinchHandler(maxRemaining int, logger *slog.Logger) *ClinchHandler {
	return &ClinchHandler{binder: scenarioBinder{maxRemaining: maxRemaining}, logger: logger}
}

// Evaluate handles POST /api/v1/clinch
func (h *ClinchHandler) Evaluate(c *gin.Context) {
	var req models.ScenarioRequest
	s, ok := h.binder.bindJSON(c, &req)
	if !ok {
		return
	}

	out := clinch.Evaluate(s)
	h.logger.Debug("clinch evaluated", "remaining", s.Remaining, "winner", out.Winner)

	c.JSON(http.StatusOK, clinchResponse(c, s, out))
}

// clinchResponse cuts the trace to FreeRows for callers without pro.
func clinchResponse(c *gin.Context, s model.Scenario, out *clinch.Outcome) models.ClinchResponse {
	rows := out.Rows
	truncated := false
	if !middleware.CapabilitiesFrom(c).Pro && len(rows) > FreeRows {
		rows = rows[:FreeRows]
		truncated = true
	}
	return models.ClinchResponse{
		Scenario:  s,
		Summary:   models.NewClinchSummary(s, out),
		Rows:      rows,
		Truncated: truncated,
		TotalRows: len(out.Rows),
	}
}

// ExportCSV handles POST /api/v1/clinch/csv
func (h *ClinchHandler) ExportCSV(c *gin.Context) {
	var req models.ScenarioRequest
	s, ok := h.binder.bindJSON(c, &req)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := clinch.EncodeTraceCSV(&buf, clinch.Evaluate(s).Rows); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CSV_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clinch-trace.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
