package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/metrics"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

// TriggerBuilder is the per-customer call builder the dispatcher fans out to
type TriggerBuilder interface {
	BuildAndPersist(req *models.CallTriggerRequest) (*models.CallTriggerResult, error)
}

// PriceDropService turns one price drop into a batch of call triggers, one
// per customer who ever purchased the product.
type PriceDropService struct {
	productRepo *repository.ProductRepository
	eligibility *EligibilityService
	builder     TriggerBuilder
}

func NewPriceDropService(
	productRepo *repository.ProductRepository,
	eligibility *EligibilityService,
	builder TriggerBuilder,
) *PriceDropService {
	return &PriceDropService{
		productRepo: productRepo,
		eligibility: eligibility,
		builder:     builder,
	}
}

// TriggerPriceDrop validates the drop, resolves eligible customers and builds
// one call trigger per customer concurrently. Per-customer failures are
// logged and omitted from CallsTriggered without aborting the batch, so
// AffectedCustomers >= len(CallsTriggered) is the partial-failure signal.
func (s *PriceDropService) TriggerPriceDrop(req *models.PriceDropRequest) (*models.PriceDropResponse, error) {
	if req.ProductID == "" || req.OldPrice == 0 || req.NewPrice == 0 || req.DiscountPercent == 0 {
		return nil, apperrors.NewValidation("Missing required fields: productId, oldPrice, newPrice, discountPercent")
	}
	if req.NewPrice >= req.OldPrice {
		return nil, apperrors.NewValidation("New price must be lower than old price")
	}

	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	eligible, err := s.eligibility.FindEligibleCustomers(req.ProductID)
	if err != nil {
		return nil, err
	}

	campaignID := req.CampaignID
	if campaignID == "" {
		campaignID = models.DefaultCampaignID
	}

	metrics.PriceDropBatches.Inc()

	// Fan out one build per customer; results keep the input order of the
	// eligible list regardless of completion order.
	callIDs := make([]string, len(eligible))
	var wg sync.WaitGroup
	for i, candidate := range eligible {
		wg.Add(1)
		go func(i int, customer models.Customer) {
			defer wg.Done()
			discount := req.DiscountPercent
			result, err := s.builder.BuildAndPersist(&models.CallTriggerRequest{
				CampaignID:      campaignID,
				CustomerID:      customer.ID,
				ProductID:       req.ProductID,
				TriggerType:     models.TriggerTypePriceDrop,
				DiscountPercent: &discount,
				NewPrice:        &req.NewPrice,
				OriginalPrice:   &req.OldPrice,
			})
			if err != nil {
				metrics.PriceDropCalls.WithLabelValues("failure").Inc()
				logrus.WithError(err).WithFields(logrus.Fields{
					"customer_id": customer.ID,
					"product_id":  req.ProductID,
				}).Warn("Failed to trigger call for customer")
				return
			}
			metrics.PriceDropCalls.WithLabelValues("success").Inc()
			callIDs[i] = result.CallID
		}(i, candidate.Customer)
	}
	wg.Wait()

	triggered := make([]string, 0, len(callIDs))
	for _, id := range callIDs {
		if id != "" {
			triggered = append(triggered, id)
		}
	}

	return &models.PriceDropResponse{
		Success:           true,
		AffectedCustomers: len(eligible),
		CallsTriggered:    triggered,
		Message: fmt.Sprintf("Price drop alert triggered for %s. %d customers will be contacted.",
			product.Name, len(eligible)),
	}, nil
}
