package handlers

import (
	"net/http"

	"github.com/NomadCrew/trcs2-health/services"
	"github.com/gin-gonic/gin"
)

// HealthHandler exposes the health evaluator over HTTP. Every route answers
// 200; a DEGRADED or UNHEALTHY status is carried in the body.
type HealthHandler struct {
	healthService services.HealthServiceInterface
}

func NewHealthHandler(healthService services.HealthServiceInterface) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// Health godoc
// @Summary General health
// @Description Reports that the process is up, with the current uptime
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheckResponse "Health status"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.GetHealthStatus(c.Request.Context()))
}

// Liveness godoc
// @Summary Liveness probe
// @Description Reports whether the process is running
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheckResponse "Liveness status"
// @Router /health/live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.GetLivenessStatus(c.Request.Context()))
}

// Readiness godoc
// @Summary Readiness probe
// @Description Reports heap usage; degraded when usage reaches the configured threshold
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheckResponse "Readiness status with memory details"
// @Router /health/ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.GetReadinessStatus(c.Request.Context()))
}

// Startup godoc
// @Summary Startup probe
// @Description Reports host information and the connectivity of configured dependencies
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheckResponse "Startup status with system details"
// @Router /health/startup [get]
func (h *HealthHandler) Startup(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.GetStartupStatus(c.Request.Context()))
}
