package catalog

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

// Service exposes catalog reads for the storefront and product CRUD for the
// back office.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	NewArrivals(ctx context.Context) ([]models.Product, error)
	BestSellers(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// GetByID returns the product or a not-found error. Storefront callers treat
// inactive products as missing; the back office loads them directly.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	if filters.Category != nil && !filters.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) NewArrivals(ctx context.Context) ([]models.Product, error) {
	return s.List(ctx, ListFilters{NewArrivals: true})
}

func (s *service) BestSellers(ctx context.Context) ([]models.Product, error) {
	return s.List(ctx, ListFilters{BestSellers: true})
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		Material:           input.Material,
		Category:           input.Category,
		Subcategory:        input.Subcategory,
		PriceMinor:         input.PriceMinor,
		OriginalPriceMinor: input.OriginalPriceMinor,
		ImageURL:           input.ImageURL,
		Images:             input.Images,
		Sizes:              input.Sizes,
		Colors:             input.Colors,
		IsNew:              input.IsNew,
		IsBestSeller:       input.IsBestSeller,
		IsActive:           true,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(product, input)

	if product.PriceMinor <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if !product.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product visibility")
	}
	return nil
}

// Delete removes a listing permanently. Order line items keep their own
// snapshot of product data, so history survives the removal.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if input.PriceMinor <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.OriginalPriceMinor != nil && *input.OriginalPriceMinor <= input.PriceMinor {
		return pkgerrors.New(pkgerrors.CodeValidation, "original price must exceed the sale price")
	}
	if len(input.Sizes) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one size is required")
	}
	if len(input.Colors) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one color is required")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Material != nil {
		product.Material = *input.Material
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Subcategory != nil {
		product.Subcategory = *input.Subcategory
	}
	if input.PriceMinor != nil {
		product.PriceMinor = *input.PriceMinor
	}
	if input.OriginalPriceMinor != nil {
		product.OriginalPriceMinor = input.OriginalPriceMinor
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Sizes != nil {
		product.Sizes = *input.Sizes
	}
	if input.Colors != nil {
		product.Colors = *input.Colors
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.IsBestSeller != nil {
		product.IsBestSeller = *input.IsBestSeller
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}
