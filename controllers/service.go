package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

// ServiceController exposes the wash service catalog.
type ServiceController struct {
	catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{catalog: catalog}
}

// CreateService rejects commission splits that do not add up to 100.
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input services.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.catalog.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create service")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"service": service})
}

// GetServices lists the catalog; ?active=true hides retired services.
func (sc *ServiceController) GetServices(c *gin.Context) {
	list, err := sc.catalog.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve services")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"services": list})
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := pathID(c, "service")
	if !ok {
		return
	}

	service, err := sc.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve service")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"service": service})
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "service")
	if !ok {
		return
	}

	var input services.ServiceUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.catalog.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update service")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"service": service})
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := pathID(c, "service")
	if !ok {
		return
	}

	if err := sc.catalog.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete service")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
