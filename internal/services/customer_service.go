package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
	purchaseRepo *repository.PurchaseRepository
	eligibility  *EligibilityService
}

func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
	purchaseRepo *repository.PurchaseRepository,
	eligibility *EligibilityService,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		eligibility:  eligibility,
	}
}

// CreateCustomer creates a customer and, when the request carries history,
// records the purchases afterwards. The writes are sequential and not
// transactional: a purchase failure leaves the customer and any earlier
// purchases in place, and is reported without rolling back.
func (s *CustomerService) CreateCustomer(req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	for _, entry := range req.Purchases {
		if err := s.recordPurchaseEntry(customer.ID, entry); err != nil {
			logrus.WithError(err).WithField("customer_id", customer.ID).
				Warn("Customer created with partial purchase history")
			return nil, err
		}
	}
	return customer, nil
}

func (s *CustomerService) recordPurchaseEntry(customerID string, entry models.CustomerPurchaseEntry) error {
	product, err := s.productRepo.GetByID(entry.ProductID)
	if err != nil {
		return notFoundOr(err, "Product")
	}

	quantity := entry.Quantity
	if quantity < 1 {
		quantity = 1
	}
	pricePaid := entry.PricePaid
	if pricePaid == 0 {
		pricePaid = product.Price
	}
	purchaseDate := time.Now()
	if entry.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", entry.PurchaseDate)
		if err != nil {
			return apperrors.NewValidation("Invalid purchase date %q, expected YYYY-MM-DD", entry.PurchaseDate)
		}
		purchaseDate = parsed
	}

	purchase := &models.Purchase{
		CustomerID:   customerID,
		ProductID:    entry.ProductID,
		Quantity:     quantity,
		PricePaid:    pricePaid,
		PurchaseDate: purchaseDate,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	return nil
}

// GetCustomers retrieves one page of customers
func (s *CustomerService) GetCustomers(offset, limit int) ([]*models.Customer, int64, error) {
	customers, total, err := s.customerRepo.GetPage(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, total, nil
}

// GetCustomerByID retrieves a customer by ID
func (s *CustomerService) GetCustomerByID(id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Customer")
	}
	return customer, nil
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Customer")
	}
	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer deletes a customer; purchases and call triggers referencing
// the customer stay behind and render as "Unknown Customer" in joins
func (s *CustomerService) DeleteCustomer(id string) error {
	if _, err := s.customerRepo.GetByID(id); err != nil {
		return notFoundOr(err, "Customer")
	}
	if err := s.customerRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// LookupPhones filters customers by ID, email fragment and/or product
// purchased. The product filter narrows to purchasers ordered highest
// lifetime value first and annotates each row with their most recent
// purchase date of that product.
func (s *CustomerService) LookupPhones(customerID, email, productID string) (*models.CustomerPhoneResponse, error) {
	if productID != "" {
		return s.lookupProductBuyers(customerID, email, productID)
	}

	var customers []*models.Customer
	var err error

	switch {
	case customerID != "":
		customer, lookupErr := s.customerRepo.GetByID(customerID)
		switch {
		case lookupErr == nil:
			customers = []*models.Customer{customer}
		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			// an unknown ID filters down to an empty result
		default:
			err = lookupErr
		}
	case email != "":
		customers, err = s.customerRepo.SearchByEmail(strings.ToLower(email))
	default:
		customers, err = s.customerRepo.GetAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up customers: %w", err)
	}

	entries := make([]models.CustomerPhoneEntry, 0, len(customers))
	for _, c := range customers {
		entries = append(entries, models.CustomerPhoneEntry{
			ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone,
		})
	}
	return &models.CustomerPhoneResponse{Customers: entries}, nil
}

// lookupProductBuyers resolves the product's purchasers through the
// eligibility ranking so high-value customers surface first, then applies
// the remaining ID and email filters in memory.
func (s *CustomerService) lookupProductBuyers(customerID, email, productID string) (*models.CustomerPhoneResponse, error) {
	eligible, err := s.eligibility.FindEligibleCustomersByValue(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customers: %w", err)
	}

	entries := make([]models.CustomerPhoneEntry, 0, len(eligible))
	for _, e := range eligible {
		if customerID != "" && e.Customer.ID != customerID {
			continue
		}
		if email != "" && !strings.Contains(strings.ToLower(e.Customer.Email), strings.ToLower(email)) {
			continue
		}
		purchased := true
		entries = append(entries, models.CustomerPhoneEntry{
			ID:               e.Customer.ID,
			Name:             e.Customer.Name,
			Email:            e.Customer.Email,
			Phone:            e.Customer.Phone,
			HasPurchased:     &purchased,
			LastPurchaseDate: e.MostRecentPurchase.PurchaseDate.Format("2006-01-02"),
		})
	}
	return &models.CustomerPhoneResponse{Customers: entries}, nil
}
