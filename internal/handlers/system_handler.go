package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"customers-api/internal/services"
)

const healthCheckTimeout = 2 * time.Second

// SystemHandler serves the root and health endpoints
type SystemHandler struct {
	customerService services.CustomerService
	errors          ErrorPolicy
	version         string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(customerService services.CustomerService, policy ErrorPolicy, version string) *SystemHandler {
	return &SystemHandler{
		customerService: customerService,
		errors:          policy,
		version:         version,
	}
}

// Welcome answers GET /
func (h *SystemHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome")
}

// PostRoot answers POST /
func (h *SystemHandler) PostRoot(c *gin.Context) {
	c.String(http.StatusOK, "This is a post request")
}

// @Summary Health check
// @Description Reports whether the customer store is reachable
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.customerService.Ping(ctx); err != nil {
		h.errors.Abort(c, http.StatusServiceUnavailable, "unhealthy", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "customers-api",
		"version":   h.version,
		"timestamp": time.Now().UTC(),
	})
}
