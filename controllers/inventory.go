package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type InventoryController struct {
	inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	var input services.InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := ic.inventory.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create inventory item")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"item": item})
}

// GetItems accepts ?category= and ?lowStock=true.
func (ic *InventoryController) GetItems(c *gin.Context) {
	items, err := ic.inventory.List(c.Request.Context(), services.InventoryFilter{
		Category:     c.Query("category"),
		LowStockOnly: queryBool(c, "lowStock"),
	})
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve inventory")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"items": items})
}

func (ic *InventoryController) GetItem(c *gin.Context) {
	id, ok := pathID(c, "item")
	if !ok {
		return
	}

	item, err := ic.inventory.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve inventory item")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"item": item})
}

func (ic *InventoryController) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "item")
	if !ok {
		return
	}

	var input services.InventoryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := ic.inventory.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update inventory item")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"item": item})
}

func (ic *InventoryController) RestockItem(c *gin.Context) {
	id, ok := pathID(c, "item")
	if !ok {
		return
	}

	var input services.RestockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := ic.inventory.Restock(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to restock inventory item")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"item": item})
}

func (ic *InventoryController) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "item")
	if !ok {
		return
	}

	if err := ic.inventory.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete inventory item")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}
