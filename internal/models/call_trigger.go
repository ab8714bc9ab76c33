package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trigger types understood by the call script templates. Unrecognized types
// are still accepted and rendered with a generic script.
const (
	TriggerTypePriceDrop  = "price_drop"
	TriggerTypeStockAlert = "stock_alert"
	TriggerTypePromotion  = "promotion"
)

// Call priority tiers, ordered low < medium < high
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// CallTriggerStatusScheduled is the initial (and currently only) status of a
// call trigger; the external dialer owns any further transitions.
const CallTriggerStatusScheduled = "scheduled"

// DefaultCampaignID is the sentinel campaign used for ad-hoc price-drop
// batches that were not started from a stored campaign.
const DefaultCampaignID = "00000000-0000-0000-0000-000000000000"

// CallTrigger is the audit record of a dispatched call request. No call is
// placed by this service; the record tracks what was handed to the dialer.
type CallTrigger struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	CampaignID      string    `json:"campaign_id" gorm:"not null;index;type:uuid"`
	CustomerID      string    `json:"customer_id" gorm:"not null;index;type:uuid"`
	ProductID       string    `json:"product_id" gorm:"not null;index;type:uuid"`
	TriggerType     string    `json:"trigger_type" gorm:"type:varchar(50);not null"`
	DiscountPercent *int      `json:"discount_percent"`
	NewPrice        *float64  `json:"new_price"`
	OriginalPrice   *float64  `json:"original_price"`
	Status          string    `json:"status" gorm:"type:varchar(50);not null;default:'scheduled'"`
	ScheduledAt     time.Time `json:"scheduled_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Campaign *Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID;references:ID"`
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:ID"`
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID"`
}

// TableName specifies the table name for the CallTrigger model
func (CallTrigger) TableName() string {
	return "call_triggers"
}

// BeforeCreate assigns a UUID when the ID is not set by the caller
func (t *CallTrigger) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// CallSettings are the scheduling preferences attached to a trigger request.
// Every field is optional on the wire; missing fields take the defaults below.
type CallSettings struct {
	Priority               string  `json:"priority" example:"medium"`
	CallTimePreference     string  `json:"callTimePreference" example:"2:00 PM - 4:00 PM"`
	Timezone               string  `json:"timezone" example:"EST"`
	MaxCallsPerDay         int     `json:"maxCallsPerDay" example:"50"`
	EnableWeekendCalls     *bool   `json:"enableWeekendCalls"`
	CustomerValueThreshold float64 `json:"customerValueThreshold" example:"500"`
	UrgencyLevel           int     `json:"urgencyLevel" example:"5"`
	AutoSchedule           *bool   `json:"autoSchedule"`
}

// DefaultCallSettings mirror the admin panel's priority settings defaults
func DefaultCallSettings() CallSettings {
	weekend := false
	auto := true
	return CallSettings{
		Priority:               PriorityMedium,
		CallTimePreference:     "2:00 PM - 4:00 PM",
		Timezone:               "EST",
		MaxCallsPerDay:         50,
		EnableWeekendCalls:     &weekend,
		CustomerValueThreshold: 500,
		UrgencyLevel:           5,
		AutoSchedule:           &auto,
	}
}

// CallTriggerRequest is the body of POST /campaigns/trigger-call
type CallTriggerRequest struct {
	CampaignID      string        `json:"campaignId"`
	CustomerID      string        `json:"customerId"`
	ProductID       string        `json:"productId"`
	TriggerType     string        `json:"triggerType"`
	DiscountPercent *int          `json:"discountPercent"`
	NewPrice        *float64      `json:"newPrice"`
	OriginalPrice   *float64      `json:"originalPrice"`
	CallSettings    *CallSettings `json:"callSettings"`
}

// PurchaseHistoryItem is one line of call context handed to the dialer
type PurchaseHistoryItem struct {
	ProductName  string  `json:"productName"`
	PurchaseDate string  `json:"purchaseDate"`
	AmountPaid   float64 `json:"amountPaid"`
}

// CallSystemPayload is the hand-off contract to the external call system
type CallSystemPayload struct {
	CallID          string  `json:"callId"`
	CampaignID      string  `json:"campaignId"`
	CampaignName    string  `json:"campaignName,omitempty"`
	CustomerID      string  `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   string  `json:"customerEmail"`
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	TriggerType     string  `json:"triggerType"`
	DiscountPercent int     `json:"discountPercent"`
	NewPrice        float64 `json:"newPrice"`
	OriginalPrice   float64 `json:"originalPrice"`
	SavingsAmount   float64 `json:"savingsAmount"`
	CouponCode      string  `json:"couponCode"`
	Reason          string  `json:"reason"`
	CallScript      string  `json:"callScript"`
	Priority        string  `json:"priority"`

	// Scheduling preferences
	CallTimePreference string `json:"callTimePreference"`
	Timezone           string `json:"timezone"`
	UrgencyLevel       int    `json:"urgencyLevel"`
	MaxCallsPerDay     int    `json:"maxCallsPerDay"`
	EnableWeekendCalls bool   `json:"enableWeekendCalls"`
	AutoSchedule       bool   `json:"autoSchedule"`
	ScheduledAt        string `json:"scheduledAt"`

	PurchaseHistory []PurchaseHistoryItem `json:"purchaseHistory"`
}

// CallTriggerResult is what the builder returns to its callers: the persisted
// trigger's identity, the short UI message, and the full dialer payload.
type CallTriggerResult struct {
	CallID        string
	CustomerPhone string
	Message       string
	ScheduledAt   time.Time
	Payload       *CallSystemPayload
}

// CallTriggerResponse is the body of a successful POST /campaigns/trigger-call
type CallTriggerResponse struct {
	Success       bool               `json:"success"`
	CallID        string             `json:"callId"`
	CustomerPhone string             `json:"customerPhone"`
	Message       string             `json:"message"`
	ScheduledAt   string             `json:"scheduledAt"`
	CallData      *CallSystemPayload `json:"callData"`
}

// PriceDropRequest is the body of POST /campaigns/price-drop. Zero values
// count as missing, matching the original endpoint's validation.
type PriceDropRequest struct {
	ProductID       string  `json:"productId"`
	OldPrice        float64 `json:"oldPrice"`
	NewPrice        float64 `json:"newPrice"`
	DiscountPercent int     `json:"discountPercent"`
	CampaignID      string  `json:"campaignId"`
}

// PriceDropResponse is the body of a successful POST /campaigns/price-drop.
// AffectedCustomers counts every eligible customer even when some call builds
// failed, so AffectedCustomers >= len(CallsTriggered) signals partial failure.
type PriceDropResponse struct {
	Success           bool     `json:"success"`
	AffectedCustomers int      `json:"affectedCustomers"`
	CallsTriggered    []string `json:"callsTriggered"`
	Message           string   `json:"message"`
}
