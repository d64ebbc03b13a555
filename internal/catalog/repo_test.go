package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  material TEXT NOT NULL,
  category TEXT NOT NULL,
  subcategory TEXT NOT NULL,
  price_minor INTEGER NOT NULL,
  original_price_minor INTEGER,
  image_url TEXT NOT NULL,
  images TEXT NOT NULL,
  sizes TEXT NOT NULL,
  colors TEXT NOT NULL,
  is_new INTEGER NOT NULL DEFAULT 0,
  is_best_seller INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  rating REAL NOT NULL DEFAULT 0,
  review_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(`DELETE FROM products`).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, name string, category enums.ProductCategory, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "test description",
		Material:    "100% Wool",
		Category:    category,
		Subcategory: "Knitwear",
		PriceMinor:  8999,
		ImageURL:    "/assets/test.jpg",
		Images:      types.StringList{"/assets/test.jpg"},
		Sizes:       types.StringList{"S", "M", "L"},
		Colors:      types.ColorList{{Name: "Navy", Hex: "#1e3a5f"}},
		IsActive:    true,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListFiltersByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	newProduct(t, db, "Sweater", enums.ProductCategoryWomen, nil)
	newProduct(t, db, "Blazer", enums.ProductCategoryMen, nil)
	newProduct(t, db, "Jumpsuit", enums.ProductCategoryTrending, nil)

	men := enums.ProductCategoryMen
	list, err := repo.List(context.Background(), ListFilters{Category: &men})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Blazer", list[0].Name)
}

func TestRepositoryListExcludesInactiveByDefault(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	newProduct(t, db, "Visible", enums.ProductCategoryWomen, nil)
	newProduct(t, db, "Hidden", enums.ProductCategoryWomen, func(p *models.Product) {
		p.IsActive = false
	})

	list, err := repo.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Visible", list[0].Name)

	all, err := repo.List(context.Background(), ListFilters{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositoryListNewArrivalsAndBestSellers(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	newProduct(t, db, "Fresh", enums.ProductCategoryWomen, func(p *models.Product) { p.IsNew = true })
	newProduct(t, db, "Popular", enums.ProductCategoryMen, func(p *models.Product) { p.IsBestSeller = true })
	newProduct(t, db, "Plain", enums.ProductCategorySale, nil)

	arrivals, err := repo.List(context.Background(), ListFilters{NewArrivals: true})
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, "Fresh", arrivals[0].Name)

	sellers, err := repo.List(context.Background(), ListFilters{BestSellers: true})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "Popular", sellers[0].Name)
}

func TestRepositoryFindByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	created := newProduct(t, db, "Trench", enums.ProductCategorySale, func(p *models.Product) {
		original := 44999
		p.PriceMinor = 34999
		p.OriginalPriceMinor = &original
	})

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
	require.NotNil(t, found.OriginalPriceMinor)
	assert.Equal(t, 44999, *found.OriginalPriceMinor)
	assert.Equal(t, types.StringList{"S", "M", "L"}, found.Sizes)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateRatingStats(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	created := newProduct(t, db, "Rated", enums.ProductCategoryMen, nil)

	require.NoError(t, repo.UpdateRatingStats(context.Background(), created.ID, 4.5, 12))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, found.Rating, 0.001)
	assert.Equal(t, 12, found.ReviewCount)
}

func TestRepositorySetActive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	created := newProduct(t, db, "Toggled", enums.ProductCategoryMen, nil)

	require.NoError(t, repo.SetActive(context.Background(), created.ID, false))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	created := newProduct(t, db, "Retired", enums.ProductCategoryMen, nil)
	keeper := newProduct(t, db, "Keeper", enums.ProductCategoryMen, nil)

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	_, err := repo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindByID(context.Background(), keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keeper", found.Name)
}
