package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/application/service"
)

// TsunamiEventHandler serves the NOAA tsunami catalogue.
type TsunamiEventHandler struct {
	svc service.TsunamiEventAppService
}

func NewTsunamiEventHandler(svc service.TsunamiEventAppService) *TsunamiEventHandler {
	return &TsunamiEventHandler{svc: svc}
}

// List handles GET /tsunamiEvents.
func (h *TsunamiEventHandler) List(c *gin.Context) {
	resp, err := h.svc.ListRecentTsunamiEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
