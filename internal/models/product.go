package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock status labels derived from the stock count; never stored.
const (
	StockStatusInStock    = "In Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusOutOfStock = "Out of Stock"
)

// Product represents a catalog product
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string   `json:"name" gorm:"type:varchar(255);not null"`
	Category    string   `json:"category" gorm:"type:varchar(100);not null;index"`
	Price       float64  `json:"price" gorm:"not null"`
	SalePrice   *float64 `json:"sale_price" gorm:"default:null"`
	Stock       int      `json:"stock" gorm:"default:0"`
	Description *string  `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID when the ID is not set by the caller
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// StockStatus derives the display status from the stock count
func (p *Product) StockStatus() string {
	switch {
	case p.Stock > 20:
		return StockStatusInStock
	case p.Stock > 0:
		return StockStatusLowStock
	default:
		return StockStatusOutOfStock
	}
}

// CreateProductRequest represents the request to create a new product
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required" example:"iPhone 15 Pro"`
	Category    string   `json:"category" binding:"required" example:"Electronics"`
	Price       float64  `json:"price" binding:"required,gt=0" example:"999.99"`
	SalePrice   *float64 `json:"sale_price" example:"899.99"`
	Stock       int      `json:"stock" binding:"min=0" example:"45"`
	Description *string  `json:"description"`
}

// UpdateProductRequest represents the request to update a product
type UpdateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	SalePrice   *float64 `json:"sale_price"`
	Stock       int      `json:"stock" binding:"min=0"`
	Description *string  `json:"description"`
}

// ProductResponse is a product row plus its derived stock status
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Stock       int      `json:"stock"`
	StockStatus string   `json:"stock_status"`
	Description *string  `json:"description"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
