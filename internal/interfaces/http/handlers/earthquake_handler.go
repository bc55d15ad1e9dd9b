package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/application/service"
)

// EarthquakeHandler serves the earthquake catalogue.
type EarthquakeHandler struct {
	svc service.EarthquakeAppService
}

func NewEarthquakeHandler(svc service.EarthquakeAppService) *EarthquakeHandler {
	return &EarthquakeHandler{svc: svc}
}

// List handles GET /earthquakes.
func (h *EarthquakeHandler) List(c *gin.Context) {
	resp, err := h.svc.ListEarthquakes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /earthquakes/:id.
func (h *EarthquakeHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetEarthquake(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
