package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

// StaffController manages washer and admin accounts.
type StaffController struct {
	accounts *services.AccountService
}

func NewStaffController(accounts *services.AccountService) *StaffController {
	return &StaffController{accounts: accounts}
}

// CreateWasher returns the generated password once; it is also e-mailed
// when a mailer is configured.
func (sc *StaffController) CreateWasher(c *gin.Context) {
	var input services.WasherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	created, err := sc.accounts.CreateWasher(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create washer")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{
		"washer":            created.Account,
		"temporaryPassword": created.TemporaryPassword,
		"emailSent":         created.EmailSent,
	})
}

func (sc *StaffController) GetWashers(c *gin.Context) {
	washers, err := sc.accounts.ListWashers(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve washers")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"washers": washers})
}

func (sc *StaffController) GetWasher(c *gin.Context) {
	id, ok := pathID(c, "washer")
	if !ok {
		return
	}

	washer, err := sc.accounts.GetWasher(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve washer")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"washer": washer})
}

func (sc *StaffController) UpdateWasher(c *gin.Context) {
	id, ok := pathID(c, "washer")
	if !ok {
		return
	}

	var input services.WasherUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	washer, err := sc.accounts.UpdateWasher(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update washer")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"washer": washer})
}

func (sc *StaffController) DeleteWasher(c *gin.Context) {
	id, ok := pathID(c, "washer")
	if !ok {
		return
	}

	if err := sc.accounts.DeleteWasher(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete washer")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Washer deleted successfully"})
}

func (sc *StaffController) CreateAdmin(c *gin.Context) {
	var input services.AdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	created, err := sc.accounts.CreateAdmin(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create admin")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{
		"admin":             created.Account,
		"temporaryPassword": created.TemporaryPassword,
		"emailSent":         created.EmailSent,
	})
}

func (sc *StaffController) GetAdmins(c *gin.Context) {
	admins, err := sc.accounts.ListAdmins(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve admins")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"admins": admins})
}

func (sc *StaffController) UpdateAdmin(c *gin.Context) {
	id, ok := pathID(c, "admin")
	if !ok {
		return
	}

	var input services.AdminUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	admin, err := sc.accounts.UpdateAdmin(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update admin")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"admin": admin})
}

// DeleteAdmin refuses to remove the caller's own account.
func (sc *StaffController) DeleteAdmin(c *gin.Context) {
	id, ok := pathID(c, "admin")
	if !ok {
		return
	}
	if c.GetString(utils.ContextUserID) == id.String() {
		utils.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := sc.accounts.DeleteAdmin(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete admin")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}
