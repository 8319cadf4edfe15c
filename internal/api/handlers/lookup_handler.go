package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplier-management-api-server/internal/lookups"
)

// LookupHandler serves the static region and service tables backing the
// onboarding forms.
type LookupHandler struct{}

func (h *LookupHandler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, lookups.Regions())
}

func (h *LookupHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, lookups.Services())
}
