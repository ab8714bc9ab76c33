package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

func newCustomerService(repos testRepos) *CustomerService {
	return NewCustomerService(repos.customers, repos.products, repos.purchases, NewEligibilityService(repos.purchases))
}

func TestCreateCustomer_WithHistory(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCustomerService(repos)

	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)

	customer, err := svc.CreateCustomer(&models.CreateCustomerRequest{
		Name:  "Alice Johnson",
		Email: "alice@example.com",
		Phone: "+1-555-123-4567",
		Purchases: []models.CustomerPurchaseEntry{
			{ProductID: iphone.ID, Quantity: 2, PricePaid: 999, PurchaseDate: "2024-01-10"},
			{ProductID: iphone.ID}, // quantity and price default
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)

	purchases, err := repos.purchases.GetByCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 2)

	// Defaults: quantity 1, price from the product's list price
	for _, p := range purchases {
		if p.Quantity == 1 {
			assert.Equal(t, 999.0, p.PricePaid)
		}
	}
}

func TestCreateCustomer_UnknownProductInHistory(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCustomerService(repos)

	_, err := svc.CreateCustomer(&models.CreateCustomerRequest{
		Name:  "Alice Johnson",
		Email: "alice@example.com",
		Phone: "+1-555-123-4567",
		Purchases: []models.CustomerPurchaseEntry{
			{ProductID: "b2c3d4e5-0000-0000-0000-000000000000"},
		},
	})
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	// The customer row is not rolled back
	customers, err := repos.customers.GetAll()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestGetCustomers_Pagination(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCustomerService(repos)

	for i := 0; i < 5; i++ {
		seedCustomer(t, repos, "Customer", "customer@example.com", "+1-555-000-0000")
	}

	page, total, err := svc.GetCustomers(0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 3)

	page, total, err = svc.GetCustomers(3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}

func TestLookupPhones(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCustomerService(repos)

	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	bob := seedCustomer(t, repos, "Bob Smith", "bob@example.com", "+1-555-987-6543")
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 30)

	t.Run("no filters returns everyone", func(t *testing.T) {
		response, err := svc.LookupPhones("", "", "")
		require.NoError(t, err)
		assert.Len(t, response.Customers, 2)
		assert.Nil(t, response.Customers[0].HasPurchased)
	})

	t.Run("email fragment is case-insensitive", func(t *testing.T) {
		response, err := svc.LookupPhones("", "ALICE", "")
		require.NoError(t, err)
		require.Len(t, response.Customers, 1)
		assert.Equal(t, alice.ID, response.Customers[0].ID)
	})

	t.Run("product filter narrows to purchasers", func(t *testing.T) {
		response, err := svc.LookupPhones("", "", iphone.ID)
		require.NoError(t, err)
		require.Len(t, response.Customers, 1)
		entry := response.Customers[0]
		assert.Equal(t, alice.ID, entry.ID)
		require.NotNil(t, entry.HasPurchased)
		assert.True(t, *entry.HasPurchased)
		assert.NotEmpty(t, entry.LastPurchaseDate)
	})

	t.Run("customer filter with product they never bought", func(t *testing.T) {
		response, err := svc.LookupPhones(bob.ID, "", iphone.ID)
		require.NoError(t, err)
		assert.Empty(t, response.Customers)
	})

	t.Run("unknown customer id yields empty, not error", func(t *testing.T) {
		response, err := svc.LookupPhones("b2c3d4e5-0000-0000-0000-000000000000", "", "")
		require.NoError(t, err)
		assert.Empty(t, response.Customers)
	})
}

func TestLookupPhones_PersistenceFailurePropagates(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCustomerService(repos)

	require.NoError(t, db.Migrator().DropTable(&models.Customer{}))

	response, err := svc.LookupPhones("b2c3d4e5-0000-0000-0000-000000000000", "", "")
	require.Error(t, err)
	assert.Nil(t, response)
	assert.Contains(t, err.Error(), "failed to look up customers")
}

func TestLookupPhones_ProductFilterOrdersByLifetimeValue(t *testing.T) {
	db := openTestDB(t)
	repos := newTestRepos(db)
	svc := newCustomerService(repos)

	iphone := seedProduct(t, repos, "iPhone 15", 999, 50)
	alice := seedCustomer(t, repos, "Alice Johnson", "alice@example.com", "+1-555-123-4567")
	bob := seedCustomer(t, repos, "Bob Smith", "bob@example.com", "+1-555-987-6543")
	seedPurchase(t, repos, alice.ID, iphone.ID, 1, 999, 10)
	seedPurchase(t, repos, bob.ID, iphone.ID, 2, 999, 30)

	response, err := svc.LookupPhones("", "", iphone.ID)
	require.NoError(t, err)
	require.Len(t, response.Customers, 2)

	// Bob's lifetime value ($1998) outranks Alice's ($999) despite her
	// purchase being more recent
	assert.Equal(t, bob.ID, response.Customers[0].ID)
	assert.Equal(t, alice.ID, response.Customers[1].ID)
}
