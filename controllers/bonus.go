package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type BonusController struct {
	bonuses *services.BonusService
}

func NewBonusController(bonuses *services.BonusService) *BonusController {
	return &BonusController{bonuses: bonuses}
}

// CreateBonus issues a money or item bonus. Item bonuses take stock
// immediately; customer bonuses trigger one SMS.
func (bc *BonusController) CreateBonus(c *gin.Context) {
	var input services.BonusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	bonus, err := bc.bonuses.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create bonus")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"bonus": bonus})
}

func (bc *BonusController) GetBonuses(c *gin.Context) {
	filter := services.BonusFilter{
		Status:        c.Query("status"),
		RecipientType: c.Query("recipientType"),
	}
	var ok bool
	if filter.CustomerID, ok = queryID(c, "customerId"); !ok {
		return
	}
	if filter.WasherID, ok = queryID(c, "washerId"); !ok {
		return
	}

	bonuses, err := bc.bonuses.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve bonuses")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"bonuses": bonuses})
}

func (bc *BonusController) UpdateBonusStatus(c *gin.Context) {
	id, ok := pathID(c, "bonus")
	if !ok {
		return
	}

	var input services.BonusStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	bonus, err := bc.bonuses.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update bonus")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"bonus": bonus})
}

// GetMyBonuses lists the bonuses of the signed-in washer.
func (bc *BonusController) GetMyBonuses(c *gin.Context) {
	washerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bonuses, err := bc.bonuses.ListForWasher(c.Request.Context(), washerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve bonuses")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"bonuses": bonuses})
}
