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
	"github.com/harhspalod/ecommerce-main/internal/metrics"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

// highValueDiscount is the absolute price-drop amount that always escalates a
// call to high priority, regardless of customer value.
const highValueDiscount = 100.0

// fallbackDiscountPercent is used in coupon codes and scripts when the
// request carries no discount.
const fallbackDiscountPercent = 10

// PayloadDispatcher hands an assembled payload to the external call system
// stand-in (log sink plus optional queue).
type PayloadDispatcher interface {
	Dispatch(payload *models.CallSystemPayload) error
}

// CallTriggerService assembles and persists call triggers: it validates the
// request, loads the customer/product/campaign context and purchase history,
// derives coupon/priority/script, records the trigger and hands the payload
// to the dispatcher.
type CallTriggerService struct {
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
	campaignRepo *repository.CampaignRepository
	purchaseRepo *repository.PurchaseRepository
	triggerRepo  *repository.CallTriggerRepository
	dispatcher   PayloadDispatcher
}

func NewCallTriggerService(
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
	campaignRepo *repository.CampaignRepository,
	purchaseRepo *repository.PurchaseRepository,
	triggerRepo *repository.CallTriggerRepository,
	dispatcher PayloadDispatcher,
) *CallTriggerService {
	return &CallTriggerService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		campaignRepo: campaignRepo,
		purchaseRepo: purchaseRepo,
		triggerRepo:  triggerRepo,
		dispatcher:   dispatcher,
	}
}

// BuildAndPersist validates a trigger request, builds the call payload and
// persists the call trigger record. The only durable effect is the trigger
// row; no call is placed here.
func (s *CallTriggerService) BuildAndPersist(req *models.CallTriggerRequest) (*models.CallTriggerResult, error) {
	start := time.Now()
	result, err := s.build(req)
	if err != nil {
		metrics.RecordTriggerBuild(req.TriggerType, "failure", time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordTriggerBuild(req.TriggerType, "success", time.Since(start).Seconds())
	return result, nil
}

func (s *CallTriggerService) build(req *models.CallTriggerRequest) (*models.CallTriggerResult, error) {
	if req.CampaignID == "" || req.CustomerID == "" || req.ProductID == "" || req.TriggerType == "" {
		return nil, apperrors.NewValidation("Missing required fields: campaignId, customerId, productId, triggerType")
	}

	customer, err := s.customerRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, notFoundOr(err, "Customer")
	}

	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, notFoundOr(err, "Product")
	}

	// The sentinel campaign marks ad-hoc batches with no stored campaign to
	// embed, so the lookup is skipped for it.
	campaignName := ""
	if req.CampaignID != models.DefaultCampaignID {
		campaign, err := s.campaignRepo.GetByID(req.CampaignID)
		if err != nil {
			return nil, notFoundOr(err, "Campaign")
		}
		campaignName = campaign.Name
	}

	// Hard precondition for every trigger type: the customer must have bought
	// this product at least once.
	productPurchases, err := s.purchaseRepo.GetByCustomerAndProduct(req.CustomerID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase history: %w", err)
	}
	if len(productPurchases) == 0 {
		return nil, apperrors.NewBusinessRule("Customer has not purchased this product")
	}
	lastPurchase := productPurchases[0]

	history, err := s.purchaseRepo.GetByCustomer(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase history: %w", err)
	}
	var lifetimeValue float64
	historyItems := make([]models.PurchaseHistoryItem, 0, len(history))
	for _, p := range history {
		lifetimeValue += p.TotalAmount()
		productName := p.Product.Name
		if productName == "" {
			productName = "Unknown Product"
		}
		historyItems = append(historyItems, models.PurchaseHistoryItem{
			ProductName:  productName,
			PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
			AmountPaid:   p.TotalAmount(),
		})
	}

	settings := mergeCallSettings(req.CallSettings)

	discountPercent := fallbackDiscountPercent
	if req.DiscountPercent != nil {
		discountPercent = *req.DiscountPercent
	}
	var newPrice, originalPrice, savings float64
	if req.NewPrice != nil {
		newPrice = *req.NewPrice
	}
	if req.OriginalPrice != nil {
		originalPrice = *req.OriginalPrice
	}
	if req.NewPrice != nil && req.OriginalPrice != nil {
		savings = originalPrice - newPrice
		if savings < 0 {
			savings = 0
		}
	}

	priority := settings.Priority
	if lifetimeValue >= settings.CustomerValueThreshold {
		priority = escalatePriority(priority, models.PriorityHigh)
	}
	if req.TriggerType == models.TriggerTypePriceDrop && originalPrice-newPrice >= highValueDiscount {
		priority = escalatePriority(priority, models.PriorityHigh)
	}

	coupon := couponCode(req.TriggerType, discountPercent, time.Now())
	script := buildCallScript(scriptContext{
		TriggerType:     req.TriggerType,
		CustomerName:    customer.Name,
		ProductName:     product.Name,
		PurchaseDate:    lastPurchase.PurchaseDate.Format("2006-01-02"),
		NewPrice:        newPrice,
		OriginalPrice:   originalPrice,
		DiscountPercent: discountPercent,
		Savings:         savings,
		CouponCode:      coupon,
		Priority:        priority,
	})

	scheduledAt := time.Now().Add(5 * time.Minute)
	trigger := &models.CallTrigger{
		CampaignID:      req.CampaignID,
		CustomerID:      req.CustomerID,
		ProductID:       req.ProductID,
		TriggerType:     req.TriggerType,
		DiscountPercent: req.DiscountPercent,
		NewPrice:        req.NewPrice,
		OriginalPrice:   req.OriginalPrice,
		Status:          models.CallTriggerStatusScheduled,
		ScheduledAt:     scheduledAt,
	}
	if err := s.triggerRepo.Create(trigger); err != nil {
		return nil, fmt.Errorf("failed to create call trigger: %w", err)
	}

	payload := &models.CallSystemPayload{
		CallID:             trigger.ID,
		CampaignID:         req.CampaignID,
		CampaignName:       campaignName,
		CustomerID:         customer.ID,
		CustomerName:       customer.Name,
		CustomerPhone:      customer.Phone,
		CustomerEmail:      customer.Email,
		ProductID:          product.ID,
		ProductName:        product.Name,
		TriggerType:        req.TriggerType,
		DiscountPercent:    discountPercent,
		NewPrice:           newPrice,
		OriginalPrice:      originalPrice,
		SavingsAmount:      savings,
		CouponCode:         coupon,
		Reason:             triggerReason(req.TriggerType, product.Name, originalPrice, newPrice, discountPercent),
		CallScript:         script,
		Priority:           priority,
		CallTimePreference: settings.CallTimePreference,
		Timezone:           settings.Timezone,
		UrgencyLevel:       settings.UrgencyLevel,
		MaxCallsPerDay:     settings.MaxCallsPerDay,
		EnableWeekendCalls: *settings.EnableWeekendCalls,
		AutoSchedule:       *settings.AutoSchedule,
		ScheduledAt:        scheduledAt.Format(time.RFC3339),
		PurchaseHistory:    historyItems,
	}

	// Hand-off is best effort; the trigger record already exists.
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(payload); err != nil {
			logrus.WithError(err).WithField("call_id", trigger.ID).Warn("Failed to dispatch call payload")
		}
	}

	return &models.CallTriggerResult{
		CallID:        trigger.ID,
		CustomerPhone: customer.Phone,
		Message:       triggerMessage(req.TriggerType, customer.Name, product.Name, originalPrice, newPrice, discountPercent),
		ScheduledAt:   scheduledAt,
		Payload:       payload,
	}, nil
}

// notFoundOr converts a gorm record miss into the 404 taxonomy and leaves
// other fetch failures untouched
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(resource)
	}
	return fmt.Errorf("failed to fetch %s: %w", strings.ToLower(resource), err)
}

// mergeCallSettings fills the caller's settings with defaults for every
// field left unset
func mergeCallSettings(in *models.CallSettings) models.CallSettings {
	out := models.DefaultCallSettings()
	if in == nil {
		return out
	}
	switch strings.ToLower(in.Priority) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		out.Priority = strings.ToLower(in.Priority)
	}
	if in.CallTimePreference != "" {
		out.CallTimePreference = in.CallTimePreference
	}
	if in.Timezone != "" {
		out.Timezone = in.Timezone
	}
	if in.MaxCallsPerDay > 0 {
		out.MaxCallsPerDay = in.MaxCallsPerDay
	}
	if in.EnableWeekendCalls != nil {
		out.EnableWeekendCalls = in.EnableWeekendCalls
	}
	if in.CustomerValueThreshold > 0 {
		out.CustomerValueThreshold = in.CustomerValueThreshold
	}
	if in.UrgencyLevel > 0 {
		out.UrgencyLevel = in.UrgencyLevel
	}
	if in.AutoSchedule != nil {
		out.AutoSchedule = in.AutoSchedule
	}
	return out
}

var priorityRank = map[string]int{
	models.PriorityLow:    0,
	models.PriorityMedium: 1,
	models.PriorityHigh:   2,
}

// escalatePriority raises the current priority to target if target outranks
// it; escalation never downgrades
func escalatePriority(current, target string) string {
	if priorityRank[target] > priorityRank[current] {
		return target
	}
	return current
}

// couponCode derives the short code embedded in call scripts:
// {TYPE}-{percent}-{last 6 digits of the unix-milli timestamp}
func couponCode(triggerType string, percent int, now time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", strings.ToUpper(triggerType), percent, now.UnixMilli()%1_000_000)
}

type scriptContext struct {
	TriggerType     string
	CustomerName    string
	ProductName     string
	PurchaseDate    string
	NewPrice        float64
	OriginalPrice   float64
	DiscountPercent int
	Savings         float64
	CouponCode      string
	Priority        string
}

// buildCallScript renders the agent script for the trigger type. Unrecognized
// types get the generic template rather than an error so new campaign types
// can ship before the scripts catch up.
func buildCallScript(ctx scriptContext) string {
	var script string
	switch ctx.TriggerType {
	case models.TriggerTypePriceDrop:
		script = fmt.Sprintf(
			"Hello %s, this is a courtesy call from our sales team. The %s you purchased on %s has dropped from $%.2f to $%.2f. With your %d%% discount code %s you save $%.2f on a new order.",
			ctx.CustomerName, ctx.ProductName, ctx.PurchaseDate, ctx.OriginalPrice, ctx.NewPrice, ctx.DiscountPercent, ctx.CouponCode, ctx.Savings)
	case models.TriggerTypeStockAlert:
		script = fmt.Sprintf(
			"Hello %s, good news: the %s is back in stock. Since you purchased it on %s, you can reorder with code %s for %d%% off.",
			ctx.CustomerName, ctx.ProductName, ctx.PurchaseDate, ctx.CouponCode, ctx.DiscountPercent)
	case models.TriggerTypePromotion:
		script = fmt.Sprintf(
			"Hello %s, we are running a special promotion: %d%% off the %s with code %s. As a previous buyer from %s, you qualify immediately.",
			ctx.CustomerName, ctx.DiscountPercent, ctx.ProductName, ctx.CouponCode, ctx.PurchaseDate)
	default:
		script = fmt.Sprintf(
			"Hello %s, we have an update about the %s you purchased on %s. Use code %s for %d%% off your next order.",
			ctx.CustomerName, ctx.ProductName, ctx.PurchaseDate, ctx.CouponCode, ctx.DiscountPercent)
	}
	if ctx.Priority == models.PriorityHigh {
		script += " This customer is marked high priority; please call within the preferred window at the earliest opportunity."
	}
	return script
}

// triggerReason is the short machine-usable summary of why the call exists
func triggerReason(triggerType, productName string, originalPrice, newPrice float64, discountPercent int) string {
	switch triggerType {
	case models.TriggerTypePriceDrop:
		return fmt.Sprintf("price_drop: %s fell from $%.2f to $%.2f", productName, originalPrice, newPrice)
	case models.TriggerTypeStockAlert:
		return fmt.Sprintf("stock_alert: %s is back in stock", productName)
	case models.TriggerTypePromotion:
		return fmt.Sprintf("promotion: %d%% off %s", discountPercent, productName)
	default:
		return fmt.Sprintf("update: %s", productName)
	}
}

// triggerMessage is the human-readable confirmation shown in the admin UI,
// distinct from the agent call script
func triggerMessage(triggerType, customerName, productName string, originalPrice, newPrice float64, discountPercent int) string {
	switch triggerType {
	case models.TriggerTypePriceDrop:
		return fmt.Sprintf("Great news %s! The %s you purchased has dropped in price from $%.2f to $%.2f. You're eligible for a %d%% refund!",
			customerName, productName, originalPrice, newPrice, discountPercent)
	case models.TriggerTypeStockAlert:
		return fmt.Sprintf("Hi %s! The %s is back in stock. Would you like to purchase another one?", customerName, productName)
	case models.TriggerTypePromotion:
		return fmt.Sprintf("Special offer for %s! Get %d%% off on %s - limited time only!", customerName, discountPercent, productName)
	default:
		return fmt.Sprintf("Hi %s! We have an update about your %s.", customerName, productName)
	}
}
