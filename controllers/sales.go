package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type SalesController struct {
	sales *services.SalesService
}

func NewSalesController(sales *services.SalesService) *SalesController {
	return &SalesController{sales: sales}
}

// CreateSale records a counter sale and takes the items out of stock.
func (sc *SalesController) CreateSale(c *gin.Context) {
	var input services.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, err := sc.sales.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to record sale")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"sale": sale})
}

func (sc *SalesController) GetSales(c *gin.Context) {
	var from, to *time.Time
	if c.Query("from") != "" || c.Query("to") != "" {
		start, end, ok := queryRange(c)
		if !ok {
			return
		}
		from, to = &start, &end
	}

	sales, err := sc.sales.List(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve sales")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"sales": sales})
}
