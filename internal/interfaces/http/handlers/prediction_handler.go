package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/application/dto"
	"github.com/ecnlab/ecn/internal/application/service"
	"github.com/ecnlab/ecn/pkg/errors"
)

// PredictionHandler serves tsunami potential predictions.
type PredictionHandler struct {
	svc service.PredictionAppService
}

func NewPredictionHandler(svc service.PredictionAppService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// Predict handles POST /tsunamiPotential/predict with a {t0, td, mw} body.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("request body must be a JSON object with numeric t0, td and mw").WithError(err))
		return
	}

	resp, err := h.svc.Predict(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
