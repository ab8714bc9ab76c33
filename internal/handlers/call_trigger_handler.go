package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
)

// CallTriggerHandler serves the scheduled-call audit log
type CallTriggerHandler struct {
	triggerRepo *repository.CallTriggerRepository
}

func NewCallTriggerHandler(db *gorm.DB) *CallTriggerHandler {
	return &CallTriggerHandler{
		triggerRepo: repository.NewCallTriggerRepository(db),
	}
}

// GetCallTriggers godoc
// @Summary List call triggers
// @Description Get all recorded call triggers, newest first, optionally filtered by campaign
// @Tags call-triggers
// @Accept json
// @Produce json
// @Param campaignId query string false "Campaign ID"
// @Success 200 {array} models.CallTrigger
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-triggers [get]
func (h *CallTriggerHandler) GetCallTriggers(c *gin.Context) {
	campaignID := c.Query("campaignId")

	if campaignID != "" {
		triggers, err := h.triggerRepo.GetByCampaign(campaignID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, triggers)
		return
	}

	triggers, err := h.triggerRepo.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, triggers)
}
