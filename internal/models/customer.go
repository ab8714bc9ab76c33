package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a CRM customer record
type Customer struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid"`
	Name  string `json:"name" gorm:"type:varchar(255);not null"`
	Email string `json:"email" gorm:"type:varchar(255);not null;index"`
	Phone string `json:"phone" gorm:"type:varchar(50);not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate assigns a UUID when the ID is not set by the caller
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateCustomerRequest represents the request to create a new customer.
// Purchases may be included to record the customer's existing history in the
// same call; they are written sequentially after the customer row.
type CreateCustomerRequest struct {
	Name      string                  `json:"name" binding:"required" example:"Alice Johnson"`
	Email     string                  `json:"email" binding:"required,email" example:"alice@example.com"`
	Phone     string                  `json:"phone" binding:"required" example:"+1-555-123-4567"`
	Purchases []CustomerPurchaseEntry `json:"purchases"`
}

// CustomerPurchaseEntry is one historical purchase attached to a new customer
type CustomerPurchaseEntry struct {
	ProductID    string  `json:"productId" binding:"required"`
	Quantity     int     `json:"quantity" example:"1"`
	PricePaid    float64 `json:"pricePaid" example:"999.99"`
	PurchaseDate string  `json:"purchaseDate" example:"2024-01-10"`
}

// UpdateCustomerRequest represents the request to update a customer
type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// CustomerPhoneEntry is one row of the phone lookup response; the purchase
// fields are only populated when the lookup is filtered by product.
type CustomerPhoneEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	HasPurchased     *bool  `json:"hasPurchased,omitempty"`
	LastPurchaseDate string `json:"lastPurchaseDate,omitempty"`
}

// CustomerPhoneResponse is the envelope of GET /customers/phone
type CustomerPhoneResponse struct {
	Customers []CustomerPhoneEntry `json:"customers"`
}
