package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

func TestBuildAndPersist_PriceDrop(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	dispatcher := &recordingDispatcher{}
	svc := repos.triggerService(dispatcher)

	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)
	campaign := seedCampaign(t, repos, "Price Drop Alert", &iphone.ID)

	discount := 11
	newPrice := 899.0
	oldPrice := 999.0
	result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
		CampaignID:      campaign.ID,
		CustomerID:      alice.ID,
		ProductID:       iphone.ID,
		TriggerType:     models.TriggerTypePriceDrop,
		DiscountPercent: &discount,
		NewPrice:        &newPrice,
		OriginalPrice:   &oldPrice,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.CallID)
	assert.Equal(t, alice.Phone, result.CustomerPhone)
	assert.Contains(t, result.Message, "Alice Johnson")
	assert.Contains(t, result.Message, "dropped in price from $999.00 to $899.00")
	assert.Contains(t, result.Message, "11% refund")

	payload := result.Payload
	require.NotNil(t, payload)
	assert.Equal(t, result.CallID, payload.CallID)
	assert.Equal(t, campaign.Name, payload.CampaignName)
	assert.Equal(t, 100.0, payload.SavingsAmount)
	assert.Contains(t, payload.CallScript, "iPhone 15")
	assert.Len(t, payload.PurchaseHistory, 1)

	// Scheduled roughly five minutes out
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), result.ScheduledAt, 10*time.Second)

	// Trigger row persisted and the payload dispatched
	triggers, err := repos.triggers.GetAll()
	require.NoError(t, err)
	require.Len(t, triggers, 1)
	assert.Equal(t, models.CallTriggerStatusScheduled, triggers[0].Status)
	require.Len(t, dispatcher.payloads, 1)
}

func TestBuildAndPersist_MissingFields(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := repos.triggerService(nil)

	_, err := svc.BuildAndPersist(&models.CallTriggerRequest{
		CampaignID: "some-id",
	})
	require.Error(t, err)
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "Missing required fields")
}

func TestBuildAndPersist_CustomerNeverPurchased(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := repos.triggerService(nil)

	bob := seedCustomer(t, repos, "Bob Smith", "bob@example.com", "+1-555-987-6543")
	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	campaign := seedCampaign(t, repos, "Price Drop Alert", &iphone.ID)

	_, err := svc.BuildAndPersist(&models.CallTriggerRequest{
		CampaignID:  campaign.ID,
		CustomerID:  bob.ID,
		ProductID:   iphone.ID,
		TriggerType: models.TriggerTypePriceDrop,
	})
	require.Error(t, err)
	var businessErr *apperrors.BusinessRuleError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "Customer has not purchased this product", err.Error())

	// Nothing persisted on rejection
	triggers, err := repos.triggers.GetAll()
	require.NoError(t, err)
	assert.Empty(t, triggers)
}

func TestBuildAndPersist_UnknownLookups(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := repos.triggerService(nil)

	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)

	cases := []struct {
		name string
		req  models.CallTriggerRequest
		want string
	}{
		{
			name: "unknown customer",
			req: models.CallTriggerRequest{
				CampaignID:  models.DefaultCampaignID,
				CustomerID:  "b2c3d4e5-0000-0000-0000-000000000000",
				ProductID:   iphone.ID,
				TriggerType: models.TriggerTypePriceDrop,
			},
			want: "Customer not found",
		},
		{
			name: "unknown product",
			req: models.CallTriggerRequest{
				CampaignID:  models.DefaultCampaignID,
				CustomerID:  alice.ID,
				ProductID:   "b2c3d4e5-0000-0000-0000-000000000000",
				TriggerType: models.TriggerTypePriceDrop,
			},
			want: "Product not found",
		},
		{
			name: "unknown campaign",
			req: models.CallTriggerRequest{
				CampaignID:  "b2c3d4e5-0000-0000-0000-000000000000",
				CustomerID:  alice.ID,
				ProductID:   iphone.ID,
				TriggerType: models.TriggerTypePriceDrop,
			},
			want: "Campaign not found",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BuildAndPersist(&tc.req)
			require.Error(t, err)
			var notFoundErr *apperrors.NotFoundError
			require.ErrorAs(t, err, &notFoundErr)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestBuildAndPersist_SentinelCampaignSkipsLookup(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := repos.triggerService(nil)

	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)

	result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
		CampaignID:  models.DefaultCampaignID,
		CustomerID:  alice.ID,
		ProductID:   iphone.ID,
		TriggerType: models.TriggerTypePromotion,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Payload.CampaignName)
}

func TestBuildAndPersist_PriorityEscalation(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := repos.triggerService(nil)

	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)

	t.Run("lifetime value over threshold escalates to high", func(t *testing.T) {
		// Alice has $1500 of history, above the default $500 threshold
		alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
		seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)
		seedPurchase(t, repos, alice.ID, iphone.ID, 1, 501, 10)

		result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
			CampaignID:  models.DefaultCampaignID,
			CustomerID:  alice.ID,
			ProductID:   iphone.ID,
			TriggerType: models.TriggerTypePromotion,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityHigh, result.Payload.Priority)
		assert.Contains(t, result.Payload.CallScript, "high priority")
	})

	t.Run("large price drop escalates to high", func(t *testing.T) {
		carol := seedCustomer(t, repos, "Carol White", "carol@example.com", "+1-555-222-3333")
		seedPurchase(t, repos, carol.ID, iphone.ID, 1, 100, 5)

		newPrice := 899.0
		oldPrice := 999.0
		result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
			CampaignID:    models.DefaultCampaignID,
			CustomerID:    carol.ID,
			ProductID:     iphone.ID,
			TriggerType:   models.TriggerTypePriceDrop,
			NewPrice:      &newPrice,
			OriginalPrice: &oldPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityHigh, result.Payload.Priority)
	})

	t.Run("low-value customer with small drop keeps requested priority", func(t *testing.T) {
		dave := seedCustomer(t, repos, "Dave Green", "dave@example.com", "+1-555-444-5555")
		seedPurchase(t, repos, dave.ID, iphone.ID, 1, 100, 5)

		newPrice := 979.0
		oldPrice := 999.0
		result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
			CampaignID:    models.DefaultCampaignID,
			CustomerID:    dave.ID,
			ProductID:     iphone.ID,
			TriggerType:   models.TriggerTypePriceDrop,
			NewPrice:      &newPrice,
			OriginalPrice: &oldPrice,
			CallSettings:  &models.CallSettings{Priority: models.PriorityLow},
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityLow, result.Payload.Priority)
	})

	t.Run("escalation never downgrades an explicit high", func(t *testing.T) {
		erin := seedCustomer(t, repos, "Erin Black", "erin@example.com", "+1-555-666-7777")
		seedPurchase(t, repos, erin.ID, iphone.ID, 1, 100, 5)

		result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
			CampaignID:   models.DefaultCampaignID,
			CustomerID:   erin.ID,
			ProductID:    iphone.ID,
			TriggerType:  models.TriggerTypePromotion,
			CallSettings: &models.CallSettings{Priority: models.PriorityHigh},
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityHigh, result.Payload.Priority)
	})
}

func TestCouponCode(t *testing.T) {
	now := time.UnixMilli(1704067200123)

	code := couponCode(models.TriggerTypePriceDrop, 15, now)
	assert.True(t, strings.HasPrefix(code, "PRICE_DROP-15-"), code)

	suffix := code[strings.LastIndex(code, "-")+1:]
	assert.Len(t, suffix, 6)
	assert.Equal(t, fmt.Sprintf("%06d", now.UnixMilli()%1_000_000), suffix)

	// Default discount applies when the request carries none
	code = couponCode(models.TriggerTypePromotion, fallbackDiscountPercent, now)
	assert.True(t, strings.HasPrefix(code, "PROMOTION-10-"), code)
}

func TestBuildCallScript_Templates(t *testing.T) {
	base := scriptContext{
		CustomerName:    "Alice Johnson",
		ProductName:     "iPhone 15",
		PurchaseDate:    "2024-01-10",
		NewPrice:        899,
		OriginalPrice:   999,
		DiscountPercent: 10,
		Savings:         100,
		CouponCode:      "PRICE_DROP-10-123456",
		Priority:        models.PriorityMedium,
	}

	cases := []struct {
		triggerType string
		want        string
	}{
		{models.TriggerTypePriceDrop, "dropped from $999.00 to $899.00"},
		{models.TriggerTypeStockAlert, "back in stock"},
		{models.TriggerTypePromotion, "special promotion"},
		{"mystery_event", "we have an update"},
	}
	for _, tc := range cases {
		t.Run(tc.triggerType, func(t *testing.T) {
			ctx := base
			ctx.TriggerType = tc.triggerType
			script := buildCallScript(ctx)
			assert.Contains(t, script, "Alice Johnson")
			assert.Contains(t, script, tc.want)
			assert.NotContains(t, script, "high priority")
		})
	}
}

func TestMergeCallSettings(t *testing.T) {
	t.Run("nil settings take every default", func(t *testing.T) {
		merged := mergeCallSettings(nil)
		assert.Equal(t, models.DefaultCallSettings(), merged)
	})

	t.Run("explicit fields override, the rest default", func(t *testing.T) {
		weekend := true
		merged := mergeCallSettings(&models.CallSettings{
			Priority:           "HIGH",
			Timezone:           "PST",
			EnableWeekendCalls: &weekend,
		})
		assert.Equal(t, models.PriorityHigh, merged.Priority)
		assert.Equal(t, "PST", merged.Timezone)
		assert.True(t, *merged.EnableWeekendCalls)
		assert.Equal(t, "2:00 PM - 4:00 PM", merged.CallTimePreference)
		assert.Equal(t, 500.0, merged.CustomerValueThreshold)
	})

	t.Run("unknown priority falls back to medium", func(t *testing.T) {
		merged := mergeCallSettings(&models.CallSettings{Priority: "urgent"})
		assert.Equal(t, models.PriorityMedium, merged.Priority)
	})
}

func TestBuildAndPersist_DispatchFailureStillSucceeds(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	dispatcher := &recordingDispatcher{err: fmt.Errorf("broker unavailable")}
	svc := repos.triggerService(dispatcher)

	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)

	result, err := svc.BuildAndPersist(&models.CallTriggerRequest{
		CampaignID:  models.DefaultCampaignID,
		CustomerID:  alice.ID,
		ProductID:   iphone.ID,
		TriggerType: models.TriggerTypePromotion,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.CallID)

	triggers, err := repos.triggers.GetAll()
	require.NoError(t, err)
	assert.Len(t, triggers, 1)
}
