package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
	"github.com/harhspalod/ecommerce-main/internal/services"
)

type CampaignHandler struct {
	campaignService  *services.CampaignService
	priceDropService *services.PriceDropService
	triggerService   *services.CallTriggerService
}

func NewCampaignHandler(db *gorm.DB, dispatcher services.PayloadDispatcher) *CampaignHandler {
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	triggerRepo := repository.NewCallTriggerRepository(db)

	eligibility := services.NewEligibilityService(purchaseRepo)
	triggerService := services.NewCallTriggerService(
		customerRepo, productRepo, campaignRepo, purchaseRepo, triggerRepo, dispatcher)
	return &CampaignHandler{
		campaignService:  services.NewCampaignService(campaignRepo, productRepo, triggerRepo),
		priceDropService: services.NewPriceDropService(productRepo, eligibility, triggerService),
		triggerService:   triggerService,
	}
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a new marketing campaign, optionally tied to a product
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetCampaigns godoc
// @Summary List campaigns
// @Description Get all campaigns with their derived stats
// @Tags campaigns
// @Accept json
// @Produce json
// @Success 200 {array} models.CampaignResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.GetCampaigns()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaignByID godoc
// @Summary Get campaign by ID
// @Description Get a specific campaign with its derived stats
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// GetCampaignStats godoc
// @Summary Get campaign stats
// @Description Get the triggered-call counters for one campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignStats
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/stats [get]
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	stats, err := h.campaignService.GetCampaignStats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateCampaign godoc
// @Summary Update campaign
// @Description Update a campaign's fields
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaign(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteCampaign godoc
// @Summary Delete campaign
// @Description Delete a campaign; its call triggers remain as audit rows
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignService.DeleteCampaign(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}

// TriggerPriceDrop godoc
// @Summary Trigger a price drop alert
// @Description Schedule refund calls for every customer who purchased the product
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body models.PriceDropRequest true "Price drop request"
// @Success 200 {object} models.PriceDropResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/price-drop [post]
func (h *CampaignHandler) TriggerPriceDrop(c *gin.Context) {
	var req models.PriceDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.priceDropService.TriggerPriceDrop(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// TriggerCall godoc
// @Summary Trigger a single customer call
// @Description Build and schedule one call payload for a customer who purchased the product
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body models.CallTriggerRequest true "Call trigger request"
// @Success 200 {object} models.CallTriggerResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/trigger-call [post]
func (h *CampaignHandler) TriggerCall(c *gin.Context) {
	var req models.CallTriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	result, err := h.triggerService.BuildAndPersist(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CallTriggerResponse{
		Success:       true,
		CallID:        result.CallID,
		CustomerPhone: result.CustomerPhone,
		Message:       result.Message,
		ScheduledAt:   result.ScheduledAt.Format(time.RFC3339),
		CallData:      result.Payload,
	})
}
