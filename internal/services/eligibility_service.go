package services

import (
	"fmt"
	"sort"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

// EligibleCustomer is one distinct purchaser of a product. When several
// purchases exist, MostRecentPurchase keeps only the latest one; the
// TotalAmount/Quantity fields describe that purchase. LifetimeValue is only
// populated by the value-sorted variant and spans all of the customer's
// purchases of any product.
type EligibleCustomer struct {
	Customer           models.Customer
	MostRecentPurchase models.Purchase
	TotalAmount        float64
	Quantity           int
	LifetimeValue      float64
}

type EligibilityService struct {
	purchaseRepo *repository.PurchaseRepository
}

func NewEligibilityService(purchaseRepo *repository.PurchaseRepository) *EligibilityService {
	return &EligibilityService{purchaseRepo: purchaseRepo}
}

// FindEligibleCustomers returns the distinct customers who purchased the
// product, each with their most recent purchase of it. An unknown product ID
// simply yields no rows; fetch failures propagate.
func (s *EligibilityService) FindEligibleCustomers(productID string) ([]EligibleCustomer, error) {
	purchases, err := s.purchaseRepo.GetByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchases for product %s: %w", productID, err)
	}

	// Purchases arrive newest-first, so the first row seen per customer is
	// their most recent purchase of this product.
	seen := make(map[string]bool, len(purchases))
	eligible := make([]EligibleCustomer, 0, len(purchases))
	for _, p := range purchases {
		if seen[p.CustomerID] {
			continue
		}
		seen[p.CustomerID] = true
		eligible = append(eligible, EligibleCustomer{
			Customer:           p.Customer,
			MostRecentPurchase: *p,
			TotalAmount:        p.TotalAmount(),
			Quantity:           p.Quantity,
		})
	}
	return eligible, nil
}

// FindEligibleCustomersByValue enriches each eligible customer with their
// lifetime purchase value (all products) and returns them highest-value
// first, so high-value customers surface first for manual selection.
func (s *EligibilityService) FindEligibleCustomersByValue(productID string) ([]EligibleCustomer, error) {
	eligible, err := s.FindEligibleCustomers(productID)
	if err != nil {
		return nil, err
	}

	for i := range eligible {
		value, err := s.LifetimeValue(eligible[i].Customer.ID)
		if err != nil {
			return nil, err
		}
		eligible[i].LifetimeValue = value
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].LifetimeValue > eligible[j].LifetimeValue
	})
	return eligible, nil
}

// LifetimeValue sums price_paid x quantity across every purchase the
// customer has ever made
func (s *EligibilityService) LifetimeValue(customerID string) (float64, error) {
	purchases, err := s.purchaseRepo.GetByCustomer(customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch purchase history for customer %s: %w", customerID, err)
	}
	var total float64
	for _, p := range purchases {
		total += p.TotalAmount()
	}
	return total, nil
}
