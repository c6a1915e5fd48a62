package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type MilestoneController struct {
	milestones *services.MilestoneService
}

func NewMilestoneController(milestones *services.MilestoneService) *MilestoneController {
	return &MilestoneController{milestones: milestones}
}

func (mc *MilestoneController) CreateMilestone(c *gin.Context) {
	var input services.MilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	milestone, err := mc.milestones.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create milestone")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"milestone": milestone})
}

func (mc *MilestoneController) GetMilestones(c *gin.Context) {
	milestones, err := mc.milestones.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve milestones")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"milestones": milestones})
}

func (mc *MilestoneController) UpdateMilestone(c *gin.Context) {
	id, ok := pathID(c, "milestone")
	if !ok {
		return
	}

	var input services.MilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	milestone, err := mc.milestones.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update milestone")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"milestone": milestone})
}

func (mc *MilestoneController) DeleteMilestone(c *gin.Context) {
	id, ok := pathID(c, "milestone")
	if !ok {
		return
	}

	if err := mc.milestones.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete milestone")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}

func (mc *MilestoneController) GetAchievements(c *gin.Context) {
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}

	achievements, err := mc.milestones.ListAchievements(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve achievements")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"achievements": achievements})
}

// CheckAchievements evaluates one customer, or every active customer when
// no customerId is given.
func (mc *MilestoneController) CheckAchievements(c *gin.Context) {
	var input services.AchievementCheckInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if input.CustomerID == nil {
		result, err := mc.milestones.CheckAll(ctx, input.ForceCheck)
		if err != nil {
			respondServiceError(c, err, "Failed to check milestones")
			return
		}
		utils.RespondSuccess(c, http.StatusOK, gin.H{"sweep": result})
		return
	}

	result, err := mc.milestones.CheckCustomer(ctx, *input.CustomerID, input.ForceCheck)
	if err != nil {
		respondServiceError(c, err, "Failed to check milestones")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"result": result})
}
