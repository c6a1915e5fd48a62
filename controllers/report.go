// controllers/report.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

// ReportController handles all reporting functions
type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GetFinancialReport covers ?from=&to= (inclusive dates, default this month).
func (rc *ReportController) GetFinancialReport(c *gin.Context) {
	from, to, ok := queryRange(c)
	if !ok {
		return
	}

	report, err := rc.reports.Financial(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to build financial report")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"report": report})
}

func (rc *ReportController) GetPaymentReport(c *gin.Context) {
	report, err := rc.reports.Payments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to build payment report")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"report": report})
}
