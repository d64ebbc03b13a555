package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
)

// Repository defines persistence operations for product reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, reviewID uuid.UUID) (*models.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.Review, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	RatingStats(ctx context.Context, productID uuid.UUID) (avg float64, count int, err error)
	HasVerifiedPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
}
