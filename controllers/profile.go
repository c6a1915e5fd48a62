package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

// ProfileController reads and edits the business profile: name, address,
// working hours and the SMS switch.
type ProfileController struct {
	settings *services.SettingsService
}

func NewProfileController(settings *services.SettingsService) *ProfileController {
	return &ProfileController{settings: settings}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	settings, err := pc.settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load business profile")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"settings": settings})
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var input services.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	settings, err := pc.settings.Update(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to update business profile")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"settings": settings})
}
