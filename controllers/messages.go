package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

// MessageController edits SMS templates and shows the notification log.
type MessageController struct {
	messaging *services.MessagingService
}

func NewMessageController(messaging *services.MessagingService) *MessageController {
	return &MessageController{messaging: messaging}
}

func (mc *MessageController) GetTemplates(c *gin.Context) {
	templates, err := mc.messaging.ListTemplates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve templates")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"templates": templates})
}

// SaveTemplate replaces the text for :type (bonus_issued, milestone_achieved).
func (mc *MessageController) SaveTemplate(c *gin.Context) {
	var input services.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template, err := mc.messaging.SaveTemplate(c.Request.Context(), c.Param("type"), input)
	if err != nil {
		respondServiceError(c, err, "Failed to save template")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"template": template})
}

func (mc *MessageController) GetNotifications(c *gin.Context) {
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}

	logs, err := mc.messaging.ListNotifications(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve notifications")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"notifications": logs})
}
