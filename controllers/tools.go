package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

// ToolController covers equipment handed to washers and the charges for
// equipment they lose or damage.
type ToolController struct {
	tools *services.ToolService
}

func NewToolController(tools *services.ToolService) *ToolController {
	return &ToolController{tools: tools}
}

func (tc *ToolController) AssignTool(c *gin.Context) {
	var input services.WasherToolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tool, err := tc.tools.Assign(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to assign tool")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"tool": tool})
}

func (tc *ToolController) GetTools(c *gin.Context) {
	washerID, ok := queryID(c, "washerId")
	if !ok {
		return
	}

	tools, err := tc.tools.ListTools(c.Request.Context(), washerID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve tools")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"tools": tools})
}

func (tc *ToolController) UpdateToolStatus(c *gin.Context) {
	id, ok := pathID(c, "tool")
	if !ok {
		return
	}

	var input services.ToolStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tool, err := tc.tools.UpdateToolStatus(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update tool")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"tool": tool})
}

func (tc *ToolController) CreateCharge(c *gin.Context) {
	var input services.ToolChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	charge, err := tc.tools.CreateCharge(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create tool charge")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"charge": charge})
}

func (tc *ToolController) GetCharges(c *gin.Context) {
	washerID, ok := queryID(c, "washerId")
	if !ok {
		return
	}

	charges, err := tc.tools.ListCharges(c.Request.Context(), washerID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve tool charges")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"charges": charges})
}

func (tc *ToolController) UpdateChargeStatus(c *gin.Context) {
	id, ok := pathID(c, "charge")
	if !ok {
		return
	}

	var input services.ToolChargeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	charge, err := tc.tools.UpdateChargeStatus(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update tool charge")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"charge": charge})
}
