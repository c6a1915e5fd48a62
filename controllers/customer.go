package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washpro-backend/services"
	"washpro-backend/utils"
)

type CustomerController struct {
	customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

// CreateCustomer registers a customer together with any vehicles sent along.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to create customer")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"customer": customer})
}

// GetCustomers supports ?search= over name, phone and plate.
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := cc.customers.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve customers")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"customers": customers})
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	customer, err := cc.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve customer")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"customer": customer})
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	var input services.CustomerUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update customer")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"customer": customer})
}

// DeleteCustomer soft deletes a customer
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete customer")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (cc *CustomerController) AddVehicle(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	var input services.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	vehicle, err := cc.customers.AddVehicle(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to add vehicle")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"vehicle": vehicle})
}
