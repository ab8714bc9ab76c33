package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

func newCampaignService(repos testRepos) *CampaignService {
	return NewCampaignService(repos.campaigns, repos.products, repos.triggers)
}

func TestCampaignCRUD(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCampaignService(repos)

	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)

	created, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Name:      "Summer Sale 20% Off",
		Type:      "Discount",
		Discount:  "20%",
		ProductID: &iphone.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Active", created.Status, "status defaults to Active")
	assert.Equal(t, models.CampaignStats{}, created.Stats)

	fetched, err := svc.GetCampaignByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale 20% Off", fetched.Name)
	assert.Equal(t, "iPhone 15", fetched.ProductName)

	updated, err := svc.UpdateCampaign(created.ID, &models.UpdateCampaignRequest{
		Name:     "Summer Sale 25% Off",
		Type:     "Discount",
		Status:   "Paused",
		Discount: "25%",
	})
	require.NoError(t, err)
	assert.Equal(t, "Paused", updated.Status)
	assert.Nil(t, updated.ProductID)

	require.NoError(t, svc.DeleteCampaign(created.ID))
	_, err = svc.GetCampaignByID(created.ID)
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestCreateCampaign_UnknownProduct(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCampaignService(repos)

	missing := "b2c3d4e5-0000-0000-0000-000000000000"
	_, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Name:      "Ghost Campaign",
		Type:      "Discount",
		ProductID: &missing,
	})
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Product not found", err.Error())
}

func TestGetCampaignStats(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCampaignService(repos)

	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)
	campaign := seedCampaign(t, repos, "Price Drop Alert", &iphone.ID)

	trigger := repos.triggerService(nil)
	for i := 0; i < 3; i++ {
		_, err := trigger.BuildAndPersist(&models.CallTriggerRequest{
			CampaignID:  campaign.ID,
			CustomerID:  alice.ID,
			ProductID:   iphone.ID,
			TriggerType: models.TriggerTypePromotion,
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetCampaignStats(campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Triggered)
	assert.Equal(t, 150.0, stats.Revenue)
	assert.Equal(t, 30, stats.Progress)
}

func TestGetCampaignStats_ProgressCaps(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCampaignService(repos)

	campaign := seedCampaign(t, repos, "Busy Campaign", nil)

	// 12 triggers pushes raw progress past 100
	for i := 0; i < 12; i++ {
		require.NoError(t, repos.triggers.Create(&models.CallTrigger{
			CampaignID:  campaign.ID,
			CustomerID:  "b2c3d4e5-0000-0000-0000-000000000001",
			ProductID:   "b2c3d4e5-0000-0000-0000-000000000002",
			TriggerType: models.TriggerTypePromotion,
			Status:      models.CallTriggerStatusScheduled,
			ScheduledAt: campaign.CreatedAt,
		}))
	}

	stats, err := svc.GetCampaignStats(campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Triggered)
	assert.Equal(t, 600.0, stats.Revenue)
	assert.Equal(t, 100, stats.Progress)
}

func TestGetCampaignStats_UnknownCampaign(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCampaignService(repos)

	_, err := svc.GetCampaignStats("b2c3d4e5-0000-0000-0000-000000000000")
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
