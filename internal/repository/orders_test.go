package repository

import (
	"testing"

	"foodcourt/internal/domain"
	"foodcourt/internal/orderflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedCustomerWithCatalog creates a customer, a published restaurant
// and two products, returning the customer id and the products
func seedCustomerWithCatalog(t *testing.T, conn *gorm.DB) (uint, domain.Product, domain.Product) {
	t.Helper()
	user := domain.User{
		Username:           "Hungry",
		NormalizedUsername: "hungry",
		PasswordHash:       "x",
		Role:               domain.RoleCustomer,
		IsActivated:        true,
	}
	require.NoError(t, conn.Create(&user).Error)
	customer := domain.Customer{UserID: user.ID, Category: domain.CategoryRegular, Cart: &domain.Cart{}}
	require.NoError(t, conn.Create(&customer).Error)

	restaurant := domain.Restaurant{Name: "Bistro", OwnerID: 99, IsPublished: true, IsOpen: true}
	require.NoError(t, conn.Create(&restaurant).Error)
	pasta := domain.Product{RestaurantID: restaurant.ID, Name: "Pasta", Price: 9.50, IsActive: true}
	soda := domain.Product{RestaurantID: restaurant.ID, Name: "Soda", Price: 3.00, IsActive: true}
	require.NoError(t, conn.Create(&pasta).Error)
	require.NoError(t, conn.Create(&soda).Error)
	return user.ID, pasta, soda
}

func TestCheckoutEmptyCart(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, _, _ := seedCustomerWithCatalog(t, conn)

	_, err := repo.Checkout(customerID)
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	var count int64
	require.NoError(t, conn.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count, "failed checkout writes nothing")
}

func TestCheckoutTotalsAndConsumesCart(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, soda := seedCustomerWithCatalog(t, conn)

	_, err := repo.AddItem(customerID, &pasta, 2)
	require.NoError(t, err)
	_, err = repo.AddItem(customerID, &soda, 1)
	require.NoError(t, err)

	order, err := repo.Checkout(customerID)
	require.NoError(t, err)
	assert.InDelta(t, 22.00, order.TotalPrice, 0.001)
	assert.True(t, order.IsPassed)
	require.Len(t, order.Items, 2)
	require.Len(t, order.Statuses, 1)
	assert.Equal(t, orderflow.StatusPlaced, order.Statuses[0].Status)

	// The cart is consumed: a second checkout needs new items
	cart, err := repo.Cart(customerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	_, err = repo.Checkout(customerID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutSnapshotsSurviveCatalogEdits(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	_, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)

	// Catalog price change after the item was added
	require.NoError(t, conn.Model(&domain.Product{}).Where("id = ?", pasta.ID).Update("price", 99.0).Error)

	order, err := repo.Checkout(customerID)
	require.NoError(t, err)
	assert.InDelta(t, 9.50, order.TotalPrice, 0.001, "order uses the add-time snapshot price")
	assert.Equal(t, "Pasta", order.Items[0].Name)
}

func TestCheckoutSurvivesProductDeletion(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, soda := seedCustomerWithCatalog(t, conn)

	_, err := repo.AddItem(customerID, &pasta, 2)
	require.NoError(t, err)
	_, err = repo.AddItem(customerID, &soda, 1)
	require.NoError(t, err)

	// Both products leave the catalog while the cart still holds them
	require.NoError(t, conn.Delete(&domain.Product{}, pasta.ID).Error)
	require.NoError(t, conn.Delete(&domain.Product{}, soda.ID).Error)

	order, err := repo.Checkout(customerID)
	require.NoError(t, err, "checkout runs off the cart snapshots, not the live catalog")
	assert.Equal(t, pasta.RestaurantID, order.RestaurantID)
	assert.InDelta(t, 22.00, order.TotalPrice, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Pasta", order.Items[0].Name)
}

func TestAddItemRejectsSecondRestaurant(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	other := domain.Restaurant{Name: "Elsewhere", OwnerID: 77, IsPublished: true}
	require.NoError(t, conn.Create(&other).Error)
	burger := domain.Product{RestaurantID: other.ID, Name: "Burger", Price: 8.0, IsActive: true}
	require.NoError(t, conn.Create(&burger).Error)

	_, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)
	_, err = repo.AddItem(customerID, &burger, 1)
	assert.ErrorIs(t, err, domain.ErrMixedCart)
}

func TestAddItemGuardSurvivesProductDeletion(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	other := domain.Restaurant{Name: "Elsewhere", OwnerID: 77, IsPublished: true}
	require.NoError(t, conn.Create(&other).Error)
	burger := domain.Product{RestaurantID: other.ID, Name: "Burger", Price: 8.0, IsActive: true}
	require.NoError(t, conn.Create(&burger).Error)

	_, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)

	// Deleting the product behind the existing item must not open the
	// cart to a second restaurant
	require.NoError(t, conn.Delete(&domain.Product{}, pasta.ID).Error)
	_, err = repo.AddItem(customerID, &burger, 1)
	assert.ErrorIs(t, err, domain.ErrMixedCart)
}

func TestRemoveItem(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	item, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)
	require.NoError(t, repo.RemoveItem(customerID, item.ID))
	assert.ErrorIs(t, repo.RemoveItem(customerID, item.ID), domain.ErrNotFound)
}

func TestAppendStatusValidatesTransitions(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	_, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)
	order, err := repo.Checkout(customerID)
	require.NoError(t, err)

	// placed → ready skips two steps
	_, err = repo.AppendStatus(order.ID, orderflow.StatusReady, "")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// placed → accepted → in_preparation is legal
	_, err = repo.AppendStatus(order.ID, orderflow.StatusAccepted, "seen by kitchen")
	require.NoError(t, err)
	_, err = repo.AppendStatus(order.ID, orderflow.StatusInPreparation, "")
	require.NoError(t, err)

	// History is append-only and in order
	loaded, err := repo.FindOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Statuses, 3)
	assert.Equal(t, orderflow.StatusPlaced, loaded.Statuses[0].Status)
	assert.Equal(t, orderflow.StatusAccepted, loaded.Statuses[1].Status)
	assert.Equal(t, orderflow.StatusInPreparation, loaded.Statuses[2].Status)
}

func TestAppendStatusRejectsUnknownStatus(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	_, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)
	order, err := repo.Checkout(customerID)
	require.NoError(t, err)

	_, err = repo.AppendStatus(order.ID, "teleported", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListByRestaurant(t *testing.T) {
	conn := newTestDB(t)
	repo := NewOrderRepository(conn)
	customerID, pasta, _ := seedCustomerWithCatalog(t, conn)

	_, err := repo.AddItem(customerID, &pasta, 1)
	require.NoError(t, err)
	order, err := repo.Checkout(customerID)
	require.NoError(t, err)

	list, err := repo.ListByRestaurant(order.RestaurantID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)

	empty, err := repo.ListByRestaurant(order.RestaurantID + 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
