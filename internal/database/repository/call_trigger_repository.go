package repository

import (
	"github.com/harhspalod/ecommerce-main/internal/models"

	"gorm.io/gorm"
)

type CallTriggerRepository struct {
	db *gorm.DB
}

func NewCallTriggerRepository(db *gorm.DB) *CallTriggerRepository {
	return &CallTriggerRepository{db: db}
}

// Create creates a new call trigger record
func (r *CallTriggerRepository) Create(trigger *models.CallTrigger) error {
	return r.db.Create(trigger).Error
}

// GetAll retrieves all call triggers with related records embedded,
// newest first
func (r *CallTriggerRepository) GetAll() ([]*models.CallTrigger, error) {
	var triggers []*models.CallTrigger
	err := r.db.Preload("Campaign").
		Preload("Customer").
		Preload("Product").
		Order("created_at DESC").
		Find(&triggers).Error
	return triggers, err
}

// GetByCampaign retrieves all call triggers for a campaign, newest first
func (r *CallTriggerRepository) GetByCampaign(campaignID string) ([]*models.CallTrigger, error) {
	var triggers []*models.CallTrigger
	err := r.db.Where("campaign_id = ?", campaignID).
		Preload("Customer").
		Preload("Product").
		Order("created_at DESC").
		Find(&triggers).Error
	return triggers, err
}

// CountByCampaign counts the call triggers recorded for a campaign
func (r *CallTriggerRepository) CountByCampaign(campaignID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CallTrigger{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	return count, err
}

// UpdateStatus updates the status of a call trigger
func (r *CallTriggerRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&models.CallTrigger{}).
		Where("id = ?", id).
		Update("status", status).Error
}
