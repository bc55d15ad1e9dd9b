// Package handlers implements the HTTP endpoints of the ECN services.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/application/dto"
)

// respondError writes err as the standard error body.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := dto.NewErrorResponse(err)
	c.JSON(status, body)
}
