package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/store"
	"washpro-backend/utils"
)

// respondServiceError maps service errors onto HTTP statuses. fallback is
// the message shown for unexpected failures.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrAccountDisabled):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case store.IsUniqueViolation(err):
		utils.RespondWithError(c, http.StatusConflict, "A record with the same unique value already exists")
	case store.IsUndefinedTable(err):
		log.Printf("[api] %s %s: missing table: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":            false,
			"error":              fallback,
			"needsTableCreation": true,
		})
	default:
		log.Printf("[api] %s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
