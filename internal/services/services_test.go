package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harhspalod/ecommerce-main/internal/database"
	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

// openTestDB opens a per-test in-memory database with the full schema
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testRepos struct {
	customers *repository.CustomerRepository
	products  *repository.ProductRepository
	purchases *repository.PurchaseRepository
	campaigns *repository.CampaignRepository
	triggers  *repository.CallTriggerRepository
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		customers: repository.NewCustomerRepository(db),
		products:  repository.NewProductRepository(db),
		purchases: repository.NewPurchaseRepository(db),
		campaigns: repository.NewCampaignRepository(db),
		triggers:  repository.NewCallTriggerRepository(db),
	}
}

func (r testRepos) triggerService(dispatcher PayloadDispatcher) *CallTriggerService {
	return NewCallTriggerService(r.customers, r.products, r.campaigns, r.purchases, r.triggers, dispatcher)
}

func seedCustomer(t *testing.T, r testRepos, name, email, phone string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, Email: email, Phone: phone}
	require.NoError(t, r.customers.Create(customer))
	return customer
}

func seedProduct(t *testing.T, r testRepos, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "Electronics", Price: price, Stock: stock}
	require.NoError(t, r.products.Create(product))
	return product
}

func seedPurchase(t *testing.T, r testRepos, customerID, productID string, quantity int, pricePaid float64, daysAgo int) *models.Purchase {
	t.Helper()
	purchase := &models.Purchase{
		CustomerID:   customerID,
		ProductID:    productID,
		Quantity:     quantity,
		PricePaid:    pricePaid,
		PurchaseDate: time.Now().AddDate(0, 0, -daysAgo),
	}
	require.NoError(t, r.purchases.Create(purchase))
	return purchase
}

func seedCampaign(t *testing.T, r testRepos, name string, productID *string) *models.Campaign {
	t.Helper()
	campaign := &models.Campaign{
		Name:      name,
		Type:      "Discount",
		Status:    "Active",
		Discount:  "15%",
		ProductID: productID,
	}
	require.NoError(t, r.campaigns.Create(campaign))
	return campaign
}

// recordingDispatcher captures every payload handed off during a test
type recordingDispatcher struct {
	payloads []*models.CallSystemPayload
	err      error
}

func (d *recordingDispatcher) Dispatch(payload *models.CallSystemPayload) error {
	if d.err != nil {
		return d.err
	}
	d.payloads = append(d.payloads, payload)
	return nil
}
