package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type AuthController struct {
	accounts *services.AccountService
}

func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// AdminLogin issues a token for the back-office staff.
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ac.accounts.LoginAdmin(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"token": result.Token, "expiresAt": result.ExpiresAt, "user": result.User})
}

func (ac *AuthController) WasherLogin(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ac.accounts.LoginWasher(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"token": result.Token, "expiresAt": result.ExpiresAt, "user": result.User})
}
