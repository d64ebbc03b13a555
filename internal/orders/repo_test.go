package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/pagination"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL,
  subtotal_minor INTEGER NOT NULL,
  shipping_minor INTEGER NOT NULL,
  tax_minor INTEGER NOT NULL,
  total_minor INTEGER NOT NULL,
  shipping_address TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  product_image TEXT NOT NULL,
  size TEXT NOT NULL,
  color TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_minor INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec(`DELETE FROM order_items`).Error)
	require.NoError(t, db.Exec(`DELETE FROM orders`).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, number string, total int, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   number,
		UserID:        userID,
		Status:        enums.OrderStatusConfirmed,
		SubtotalMinor: total,
		TotalMinor:    total,
		ShippingAddress: types.ShippingAddress{
			Name:       "Test Shopper",
			Address:    "42 Linen Lane",
			City:       "Mumbai",
			PostalCode: "400001",
			Country:    "India",
			Phone:      "9876543210",
		},
		PaymentMethod: enums.PaymentMethodCard,
		PaymentStatus: enums.PaymentStatusPaid,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Omit("Items").Create(order).Error)

	item := &models.OrderItem{
		ID:           uuid.New(),
		OrderID:      order.ID,
		ProductID:    uuid.New(),
		ProductName:  "Test Item",
		ProductImage: "/assets/test.jpg",
		Size:         "M",
		Color:        "Black",
		Quantity:     2,
		PriceMinor:   total / 2,
		CreatedAt:    created,
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "BH-20260828-TEST01",
		UserID:        userID,
		Status:        enums.OrderStatusConfirmed,
		SubtotalMinor: 5000,
		ShippingMinor: 0,
		TaxMinor:      900,
		TotalMinor:    5900,
		ShippingAddress: types.ShippingAddress{
			Name:       "Test Shopper",
			Address:    "42 Linen Lane",
			City:       "Mumbai",
			PostalCode: "400001",
			Country:    "India",
			Phone:      "9876543210",
		},
		PaymentMethod: enums.PaymentMethodUPI,
		PaymentStatus: enums.PaymentStatusPaid,
	}

	created, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	items := []models.OrderItem{
		{ID: uuid.New(), OrderID: created.ID, ProductID: uuid.New(), ProductName: "Sweater", ProductImage: "/a.jpg", Size: "M", Color: "Black", Quantity: 2, PriceMinor: 1000},
		{ID: uuid.New(), OrderID: created.ID, ProductID: uuid.New(), ProductName: "Blazer", ProductImage: "/b.jpg", Size: "L", Color: "White", Quantity: 1, PriceMinor: 3000},
	}
	require.NoError(t, repo.CreateOrderItems(context.Background(), items))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "BH-20260828-TEST01", found.OrderNumber)
	assert.Equal(t, 5900, found.TotalMinor)
	assert.Equal(t, "Mumbai", found.ShippingAddress.City)
	require.Len(t, found.Items, 2)
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListForUserPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	otherID := uuid.New()

	now := time.Now().UTC()
	createTestOrder(t, db, userID, "BH-1", 2000, now.Add(-2*time.Hour))
	createTestOrder(t, db, userID, "BH-2", 4000, now.Add(-time.Hour))
	createTestOrder(t, db, userID, "BH-3", 6000, now)
	createTestOrder(t, db, otherID, "BH-4", 8000, now)

	first, err := repo.ListForUser(context.Background(), userID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	assert.Equal(t, "BH-3", first.Orders[0].OrderNumber)
	assert.Equal(t, "BH-2", first.Orders[1].OrderNumber)
	assert.NotEmpty(t, first.NextCursor)

	second, err := repo.ListForUser(context.Background(), userID, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, "BH-1", second.Orders[0].OrderNumber)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListAllSpansUsers(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	createTestOrder(t, db, uuid.New(), "BH-A", 2000, now.Add(-time.Hour))
	createTestOrder(t, db, uuid.New(), "BH-B", 4000, now)

	list, err := repo.ListAll(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, "BH-B", list.Orders[0].OrderNumber)
	assert.Equal(t, "BH-A", list.Orders[1].OrderNumber)
}

func TestRepositoryListForUserItemCounts(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	createTestOrder(t, db, userID, "BH-COUNT", 2000, time.Now().UTC())

	list, err := repo.ListForUser(context.Background(), userID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, 2, list.Orders[0].TotalItems)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	order := createTestOrder(t, db, userID, "BH-STATUS", 2000, time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusShipped))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, found.Status)
}
