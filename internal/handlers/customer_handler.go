package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
	"github.com/harhspalod/ecommerce-main/internal/services"
	"github.com/harhspalod/ecommerce-main/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	purchaseService *services.PurchaseService
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	eligibility := services.NewEligibilityService(purchaseRepo)

	return &CustomerHandler{
		customerService: services.NewCustomerService(customerRepo, productRepo, purchaseRepo, eligibility),
		purchaseService: services.NewPurchaseService(purchaseRepo, customerRepo, productRepo),
	}
}

// CreateCustomer godoc
// @Summary Create a new customer
// @Description Create a customer, optionally recording their purchase history in the same call
// @Tags customers
// @Accept json
// @Produce json
// @Param request body models.CreateCustomerRequest true "Create customer request"
// @Success 201 {object} models.Customer
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers godoc
// @Summary List customers
// @Description Get one page of customers
// @Tags customers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers [get]
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.customerService.GetCustomers(params.Offset(), params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(customers, total, params))
}

// GetCustomerPhones godoc
// @Summary Look up customer phone numbers
// @Description Filter customers by ID, email fragment and/or purchased product
// @Tags customers
// @Accept json
// @Produce json
// @Param customerId query string false "Customer ID"
// @Param email query string false "Email fragment, case-insensitive"
// @Param productId query string false "Only customers who purchased this product"
// @Success 200 {object} models.CustomerPhoneResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers/phone [get]
func (h *CustomerHandler) GetCustomerPhones(c *gin.Context) {
	response, err := h.customerService.LookupPhones(
		c.Query("customerId"), c.Query("email"), c.Query("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPurchaseHistory godoc
// @Summary Get purchase history
// @Description Get enriched purchase rows, optionally filtered by customer and/or product
// @Tags customers
// @Accept json
// @Produce json
// @Param customerId query string false "Customer ID"
// @Param productId query string false "Product ID"
// @Success 200 {object} models.PurchaseHistoryResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers/purchase-history [get]
func (h *CustomerHandler) GetPurchaseHistory(c *gin.Context) {
	records, err := h.purchaseService.History(c.Query("customerId"), c.Query("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PurchaseHistoryResponse{
		Success:   true,
		Purchases: records,
		Total:     len(records),
	})
}

// GetCustomerByID godoc
// @Summary Get customer by ID
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers/{id} [get]
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer godoc
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body models.UpdateCustomerRequest true "Update customer request"
// @Success 200 {object} models.Customer
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer godoc
// @Summary Delete customer
// @Description Delete a customer; their purchases and call triggers stay behind
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
