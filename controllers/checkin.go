package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type CheckInController struct {
	checkIns *services.CheckInService
}

func NewCheckInController(checkIns *services.CheckInService) *CheckInController {
	return &CheckInController{checkIns: checkIns}
}

func (cc *CheckInController) CreateCheckIn(c *gin.Context) {
	var input services.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	checkIn, err := cc.checkIns.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create check-in")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"checkIn": checkIn})
}

// GetCheckIns filters by status, customerId, washerId and an optional
// from/to date range.
func (cc *CheckInController) GetCheckIns(c *gin.Context) {
	filter := services.CheckInFilter{Status: c.Query("status")}

	var ok bool
	if filter.CustomerID, ok = queryID(c, "customerId"); !ok {
		return
	}
	if filter.WasherID, ok = queryID(c, "washerId"); !ok {
		return
	}
	if c.Query("from") != "" || c.Query("to") != "" {
		from, to, ok := queryRange(c)
		if !ok {
			return
		}
		filter.From, filter.To = &from, &to
	}

	checkIns, err := cc.checkIns.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve check-ins")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"checkIns": checkIns})
}

func (cc *CheckInController) GetCheckIn(c *gin.Context) {
	id, ok := pathID(c, "check-in")
	if !ok {
		return
	}

	checkIn, err := cc.checkIns.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve check-in")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"checkIn": checkIn})
}

// UpdateCheckInStatus moves a check-in along its lifecycle. Completing it
// splits the commission between company and washers.
func (cc *CheckInController) UpdateCheckInStatus(c *gin.Context) {
	id, ok := pathID(c, "check-in")
	if !ok {
		return
	}

	var input services.CheckInStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	checkIn, err := cc.checkIns.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update check-in")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"checkIn": checkIn})
}
