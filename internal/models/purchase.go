package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase links a customer to a product they bought. PricePaid is the price
// at the time of sale and may differ from the product's current list price.
type Purchase struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	CustomerID   string    `json:"customer_id" gorm:"not null;index;type:uuid"`
	ProductID    string    `json:"product_id" gorm:"not null;index;type:uuid"`
	Quantity     int       `json:"quantity" gorm:"not null;default:1"`
	PricePaid    float64   `json:"price_paid" gorm:"not null"`
	PurchaseDate time.Time `json:"purchase_date" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:ID"`
	Product  Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID"`
}

// TableName specifies the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// BeforeCreate assigns a UUID when the ID is not set by the caller
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TotalAmount is always derived, never stored
func (p *Purchase) TotalAmount() float64 {
	return p.PricePaid * float64(p.Quantity)
}

// CreatePurchaseRequest represents the request to record a purchase
type CreatePurchaseRequest struct {
	CustomerID   string  `json:"customerId" binding:"required"`
	ProductID    string  `json:"productId" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,min=1" example:"1"`
	PricePaid    float64 `json:"pricePaid" example:"999.99"`
	PurchaseDate string  `json:"purchaseDate" example:"2024-01-10"`
}

// PurchaseRecord is one enriched row of the purchase-history endpoint
type PurchaseRecord struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customerId"`
	ProductID     string  `json:"productId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	ProductName   string  `json:"productName"`
	ProductPrice  float64 `json:"productPrice"`
	Quantity      int     `json:"quantity"`
	PurchaseDate  string  `json:"purchaseDate"`
	TotalAmount   float64 `json:"totalAmount"`
}

// PurchaseHistoryResponse is the envelope of GET /customers/purchase-history
type PurchaseHistoryResponse struct {
	Success   bool             `json:"success"`
	Purchases []PurchaseRecord `json:"purchases"`
	Total     int              `json:"total"`
}
