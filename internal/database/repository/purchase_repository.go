package repository

import (
	"github.com/harhspalod/ecommerce-main/internal/models"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create creates a new purchase record
func (r *PurchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

// GetByID retrieves a purchase by ID with customer and product embedded
func (r *PurchaseRepository) GetByID(id string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Preload("Customer").
		Preload("Product").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// GetAll retrieves all purchases with customer and product embedded,
// most recent purchase first
func (r *PurchaseRepository) GetAll() ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := r.db.Preload("Customer").
		Preload("Product").
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}

// GetByCustomer retrieves a customer's purchases with products embedded,
// most recent first
func (r *PurchaseRepository) GetByCustomer(customerID string) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := r.db.Where("customer_id = ?", customerID).
		Preload("Product").
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}

// GetByProduct retrieves a product's purchases with customers embedded,
// most recent first
func (r *PurchaseRepository) GetByProduct(productID string) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := r.db.Where("product_id = ?", productID).
		Preload("Customer").
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}

// GetByCustomerAndProduct retrieves one customer's purchases of one product,
// most recent first
func (r *PurchaseRepository) GetByCustomerAndProduct(customerID, productID string) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}

// Delete deletes a purchase record
func (r *PurchaseRepository) Delete(id string) error {
	return r.db.Delete(&models.Purchase{}, "id = ?", id).Error
}
