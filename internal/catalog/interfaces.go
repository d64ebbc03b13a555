package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	UpdateRatingStats(ctx context.Context, productID uuid.UUID, rating float64, reviewCount int) error
	SetActive(ctx context.Context, productID uuid.UUID, active bool) error
	Delete(ctx context.Context, productID uuid.UUID) error
}
