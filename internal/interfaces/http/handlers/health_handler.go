package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	checks map[string]repository.Pinger
	log    logger.Logger
}

// NewHealthHandler creates a handler whose readiness depends on every named
// dependency answering a ping. A nil or empty map means always ready.
func NewHealthHandler(checks map[string]repository.Pinger, log logger.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, log: log}
}

// LivenessCheck reports that the process is serving.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadinessCheck pings every dependency concurrently.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := h.performChecks(ctx)
	status, httpStatus := "ready", http.StatusOK
	for name, result := range checks {
		if result != "ok" {
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
			h.log.Warn(ctx, "Readiness check failed", logger.Fields{"dependency": name, "result": result})
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

func (h *HealthHandler) performChecks(ctx context.Context) map[string]string {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	checks := make(map[string]string, len(h.checks))

	for name, pinger := range h.checks {
		wg.Add(1)
		go func(name string, pinger repository.Pinger) {
			defer wg.Done()
			result := "ok"
			if err := pinger.Ping(ctx); err != nil {
				result = "error: " + err.Error()
			}
			mu.Lock()
			checks[name] = result
			mu.Unlock()
		}(name, pinger)
	}
	wg.Wait()
	return checks
}
