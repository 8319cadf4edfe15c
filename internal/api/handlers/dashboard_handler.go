package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplier-management-api-server/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

// GetMetrics returns the supplier-base aggregates for the dashboard.
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.Dashboard.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard metrics", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
