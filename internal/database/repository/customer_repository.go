package repository

import (
	"github.com/harhspalod/ecommerce-main/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetAll retrieves all customers, newest first
func (r *CustomerRepository) GetAll() ([]*models.Customer, error) {
	var customers []*models.Customer
	err := r.db.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

// GetPage retrieves one page of customers, newest first
func (r *CustomerRepository) GetPage(offset, limit int) ([]*models.Customer, int64, error) {
	var total int64
	if err := r.db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var customers []*models.Customer
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error
	return customers, total, err
}

// SearchByEmail retrieves customers whose email contains the given fragment
func (r *CustomerRepository) SearchByEmail(fragment string) ([]*models.Customer, error) {
	var customers []*models.Customer
	err := r.db.Where("LOWER(email) LIKE ?", "%"+fragment+"%").Find(&customers).Error
	return customers, err
}

// Update updates a customer
func (r *CustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete deletes a customer. Purchases and call triggers referencing the
// customer are left in place.
func (r *CustomerRepository) Delete(id string) error {
	return r.db.Delete(&models.Customer{}, "id = ?", id).Error
}
