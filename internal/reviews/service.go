package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
)

type ratingUpdater interface {
	UpdateRatingStats(ctx context.Context, productID uuid.UUID, rating float64, reviewCount int) error
}

type productChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes review submission and reads.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*models.Review, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
	AdminDelete(ctx context.Context, reviewID uuid.UUID) error
}

type service struct {
	repo     Repository
	catalog  ratingUpdater
	products productChecker
}

// ServiceParams bundles the dependencies required to build a reviews service.
type ServiceParams struct {
	Repo     Repository
	Catalog  ratingUpdater
	Products productChecker
}

// NewService constructs a reviews service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reviews repository is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("rating updater is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product checker is required")
	}
	return &service{
		repo:     params.Repo,
		catalog:  params.Catalog,
		products: params.Products,
	}, nil
}

// Create stores the review and refreshes the product's aggregate rating. The
// verified-purchase badge is derived from order history, never from input.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*models.Review, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to review products")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if _, err := s.repo.FindByUserAndProduct(ctx, userID, input.ProductID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup review")
	}

	verified, err := s.repo.HasVerifiedPurchase(ctx, userID, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check purchase history")
	}

	review, err := s.repo.Create(ctx, &models.Review{
		ProductID:          input.ProductID,
		UserID:             userID,
		Rating:             input.Rating,
		Title:              strings.TrimSpace(input.Title),
		Comment:            strings.TrimSpace(input.Comment),
		Images:             input.Images,
		IsVerifiedPurchase: verified,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	if err := s.refreshRatingStats(ctx, input.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *service) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	reviews, err := s.repo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}

// Delete removes the caller's own review and refreshes the aggregate rating.
func (s *service) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to manage reviews")
	}

	review, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup review")
	}

	if err := s.repo.Delete(ctx, review.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return s.refreshRatingStats(ctx, productID)
}

// ListAll serves the moderation queue, newest first across all products.
func (s *service) ListAll(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}

// AdminDelete removes any review by id regardless of author and refreshes the
// product's aggregate rating.
func (s *service) AdminDelete(ctx context.Context, reviewID uuid.UUID) error {
	if reviewID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup review")
	}

	if err := s.repo.Delete(ctx, review.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return s.refreshRatingStats(ctx, review.ProductID)
}

func (s *service) refreshRatingStats(ctx context.Context, productID uuid.UUID) error {
	avg, count, err := s.repo.RatingStats(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate ratings")
	}
	if err := s.catalog.UpdateRatingStats(ctx, productID, avg, count); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product rating")
	}
	return nil
}
