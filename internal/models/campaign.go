package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campaign represents a marketing campaign. Discount is kept as the display
// string entered in the admin form (e.g. "15%"). Triggered counts and revenue
// are derived from call triggers on every read, never stored here.
type Campaign struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Type        string     `json:"type" gorm:"type:varchar(50);not null"`   // Discount, Welcome, Loyalty, Flash Sale, Bulk...
	Status      string     `json:"status" gorm:"type:varchar(50);not null"` // Active, Scheduled, Paused, Completed
	Condition   string     `json:"condition" gorm:"type:text"`
	Discount    string     `json:"discount" gorm:"type:varchar(20)"`
	ProductID   *string    `json:"product_id" gorm:"type:uuid;index"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate assigns a UUID when the ID is not set by the caller
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Name        string     `json:"name" binding:"required" example:"Summer Sale 20% Off"`
	Type        string     `json:"type" binding:"required" example:"Discount"`
	Status      string     `json:"status" example:"Active"`
	Condition   string     `json:"condition" example:"Purchase above $100"`
	Discount    string     `json:"discount" example:"20%"`
	ProductID   *string    `json:"product_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

// UpdateCampaignRequest represents the request to update a campaign
type UpdateCampaignRequest struct {
	Name        string     `json:"name" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Status      string     `json:"status" binding:"required"`
	Condition   string     `json:"condition"`
	Discount    string     `json:"discount"`
	ProductID   *string    `json:"product_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

// CampaignStats are the derived counters shown on the campaign dashboard.
// Revenue is a flat per-call placeholder, not real transaction attribution.
type CampaignStats struct {
	Triggered int     `json:"triggered"`
	Revenue   float64 `json:"revenue"`
	Progress  int     `json:"progress"`
}

// CampaignResponse is a campaign row plus its derived stats
type CampaignResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	Condition   string        `json:"condition"`
	Discount    string        `json:"discount"`
	ProductID   *string       `json:"product_id"`
	ProductName string        `json:"product_name,omitempty"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Description *string       `json:"description"`
	Stats       CampaignStats `json:"stats"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}
