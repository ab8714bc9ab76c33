package services

import (
	"fmt"
	"time"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

type PurchaseService struct {
	purchaseRepo *repository.PurchaseRepository
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
}

func NewPurchaseService(
	purchaseRepo *repository.PurchaseRepository,
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreatePurchase records a purchase after checking both ends of the relation
func (s *PurchaseService) CreatePurchase(req *models.CreatePurchaseRequest) (*models.Purchase, error) {
	if _, err := s.customerRepo.GetByID(req.CustomerID); err != nil {
		return nil, notFoundOr(err, "Customer")
	}
	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, notFoundOr(err, "Product")
	}

	pricePaid := req.PricePaid
	if pricePaid == 0 {
		pricePaid = product.Price
	}
	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, apperrors.NewValidation("Invalid purchase date %q, expected YYYY-MM-DD", req.PurchaseDate)
		}
		purchaseDate = parsed
	}

	purchase := &models.Purchase{
		CustomerID:   req.CustomerID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		PricePaid:    pricePaid,
		PurchaseDate: purchaseDate,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return purchase, nil
}

// GetPurchases retrieves all purchases with customer and product embedded
func (s *PurchaseService) GetPurchases() ([]*models.Purchase, error) {
	purchases, err := s.purchaseRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, nil
}

// DeletePurchase deletes a purchase record
func (s *PurchaseService) DeletePurchase(id string) error {
	if _, err := s.purchaseRepo.GetByID(id); err != nil {
		return notFoundOr(err, "Purchase")
	}
	if err := s.purchaseRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	return nil
}

// History builds the enriched purchase-history rows, optionally filtered by
// customer and/or product. Rows referencing deleted customers or products
// degrade to "Unknown" labels instead of failing.
func (s *PurchaseService) History(customerID, productID string) ([]models.PurchaseRecord, error) {
	var purchases []*models.Purchase
	var err error
	switch {
	case customerID != "":
		purchases, err = s.purchaseRepo.GetByCustomer(customerID)
	case productID != "":
		purchases, err = s.purchaseRepo.GetByProduct(productID)
	default:
		purchases, err = s.purchaseRepo.GetAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase history: %w", err)
	}

	records := make([]models.PurchaseRecord, 0, len(purchases))
	for _, p := range purchases {
		if customerID != "" && productID != "" && p.ProductID != productID {
			continue
		}

		record := models.PurchaseRecord{
			ID:           p.ID,
			CustomerID:   p.CustomerID,
			ProductID:    p.ProductID,
			Quantity:     p.Quantity,
			PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
			TotalAmount:  p.TotalAmount(),
		}

		record.CustomerName = "Unknown Customer"
		if p.Customer.ID != "" {
			record.CustomerName = p.Customer.Name
			record.CustomerEmail = p.Customer.Email
			record.CustomerPhone = p.Customer.Phone
		} else if customer, lookupErr := s.customerRepo.GetByID(p.CustomerID); lookupErr == nil {
			record.CustomerName = customer.Name
			record.CustomerEmail = customer.Email
			record.CustomerPhone = customer.Phone
		}

		record.ProductName = "Unknown Product"
		if p.Product.ID != "" {
			record.ProductName = p.Product.Name
			record.ProductPrice = p.Product.Price
		} else if product, lookupErr := s.productRepo.GetByID(p.ProductID); lookupErr == nil {
			record.ProductName = product.Name
			record.ProductPrice = product.Price
		}

		records = append(records, record)
	}
	return records, nil
}
