package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/application/dto"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

// Logging stores a request-scoped logger in the request context, then logs one
// line per request once the handler chain has finished.
func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		scoped := log.WithFields(logger.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		})
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), constants.ContextKeyLogger, scoped))
		c.Next()

		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn(c.Request.Context(), "Request failed", fields)
			return
		}
		log.Info(c.Request.Context(), "Request processed", fields)
	}
}

// Recovery turns a panic into a 500 with the standard error body. The panic
// value and stack go to the log only.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error(c.Request.Context(), "Panic recovered", errors.New(fmt.Sprint(rec)), logger.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				})
				status, body := dto.NewErrorResponse(nil)
				c.AbortWithStatusJSON(status, body)
			}
		}()
		c.Next()
	}
}
