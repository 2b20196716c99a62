package handlers

import (
	"net/http"

	"clinch-calc/internal/api/models"
	"clinch-calc/internal/clinch"
	"clinch-calc/internal/share"

	"github.com/gin-gonic/gin"
)

// ShareHandler encodes scenarios as links and opens shared links
type ShareHandler struct {
	binder scenarioBinder
}

// NewShareHandler creates a new share handler
func NewShareHandler(maxRemaining int) *ShareHandler {
	return &ShareHandler{binder: scenarioBinder{maxRemaining: maxRemaining}}
}

// Encode handles POST /api/v1/share
func (h *ShareHandler) Encode(c *gin.Context) {
	var req models.ScenarioRequest
	s, ok := h.binder.bindJSON(c, &req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ShareResponse{Query: share.EncodeQuery(s)})
}

// Open handles GET /api/v1/share?h=..&a=..
// The shared scenario is validated and evaluated like a fresh request.
func (h *ShareHandler) Open(c *gin.Context) {
	s, ok := h.binder.validate(c, share.Decode(c.Request.URL.Query()))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, clinchResponse(c, s, clinch.Evaluate(s)))
}
