package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/application/dto"
)

// Welcome messages served at GET /.
const (
	RecordsWelcome    = "Check /earthquakes"
	PredictionWelcome = "POST to /tsunamiPotential/predict"
)

// RootHandler answers GET / with a fixed pointer to the service's main route.
type RootHandler struct {
	message string
}

func NewRootHandler(message string) *RootHandler {
	return &RootHandler{message: message}
}

func (h *RootHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.message})
}
