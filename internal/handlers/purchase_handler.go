package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
	"github.com/harhspalod/ecommerce-main/internal/services"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseHandler(db *gorm.DB) *PurchaseHandler {
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	return &PurchaseHandler{
		purchaseService: services.NewPurchaseService(purchaseRepo, customerRepo, productRepo),
	}
}

// CreatePurchase godoc
// @Summary Record a purchase
// @Description Record that a customer bought a product
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body models.CreatePurchaseRequest true "Create purchase request"
// @Success 201 {object} models.Purchase
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// GetPurchases godoc
// @Summary List purchases
// @Description Get all purchases with customer and product embedded
// @Tags purchases
// @Accept json
// @Produce json
// @Success 200 {array} models.Purchase
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/purchases [get]
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.purchaseService.GetPurchases()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// DeletePurchase godoc
// @Summary Delete purchase
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/purchases/{id} [delete]
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	if err := h.purchaseService.DeletePurchase(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted successfully"})
}
