package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"clinch-calc/internal/api/models"
	"clinch-calc/internal/model"

	"github.com/gin-gonic/gin"
)

// scenarioBinder turns request input into a validated scenario, writing the
// error response itself when that fails.
type scenarioBinder struct {
	maxRemaining int
}

func (b scenarioBinder) bindJSON(c *gin.Context, req *models.ScenarioRequest) (model.Scenario, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return model.Scenario{}, false
	}
	return b.validate(c, req.Raw())
}

func (b scenarioBinder) validate(c *gin.Context, raw model.RawInput) (model.Scenario, bool) {
	s, err := model.Validate(raw)
	if err != nil {
		writeValidationError(c, err)
		return model.Scenario{}, false
	}
	if b.maxRemaining > 0 && s.Remaining > b.maxRemaining {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: fmt.Sprintf("remaining contests must be at most %d", b.maxRemaining),
				Details: map[string]interface{}{
					"field":  "remaining",
					"reason": "remaining-too-large",
				},
			},
		})
		return model.Scenario{}, false
	}
	return s, true
}

func writeValidationError(c *gin.Context, err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: verr.Message,
			Details: map[string]interface{}{
				"field":  verr.Field,
				"reason": string(verr.Code),
			},
		},
	})
}
