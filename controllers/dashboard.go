package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// GetDashboardMetrics serves the cached overview; ?refresh=true recomputes it.
func (dc *DashboardController) GetDashboardMetrics(c *gin.Context) {
	ctx := c.Request.Context()
	if queryBool(c, "refresh") {
		dc.dashboard.Invalidate(ctx)
	}

	metrics, err := dc.dashboard.Metrics(ctx)
	if err != nil {
		respondServiceError(c, err, "Failed to load dashboard metrics")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"metrics": metrics})
}
