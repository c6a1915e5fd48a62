package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

func (pc *PaymentController) GetPaymentRequests(c *gin.Context) {
	washerID, ok := queryID(c, "washerId")
	if !ok {
		return
	}

	requests, err := pc.payments.List(c.Request.Context(), washerID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment requests")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"paymentRequests": requests})
}

func (pc *PaymentController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := pathID(c, "payment request")
	if !ok {
		return
	}

	var input services.PaymentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	request, err := pc.payments.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment request")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"paymentRequest": request})
}

// GetMyPaymentRequests returns the washer's own requests and current balance.
func (pc *PaymentController) GetMyPaymentRequests(c *gin.Context) {
	washerID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	requests, err := pc.payments.List(ctx, &washerID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment requests")
		return
	}
	balance, err := pc.payments.Balance(ctx, washerID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute balance")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"paymentRequests": requests, "balance": balance})
}

func (pc *PaymentController) CreatePaymentRequest(c *gin.Context) {
	washerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.PaymentRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	request, err := pc.payments.CreateRequest(c.Request.Context(), washerID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to create payment request")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"paymentRequest": request})
}
