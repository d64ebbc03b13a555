package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
)

type stubCatalogRepo struct {
	product    *models.Product
	deletedIDs []uuid.UUID
	deleteErr  error
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCatalogRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	return product, nil
}

func (s *stubCatalogRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}

func (s *stubCatalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubCatalogRepo) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	return nil, nil
}

func (s *stubCatalogRepo) UpdateRatingStats(ctx context.Context, productID uuid.UUID, rating float64, reviewCount int) error {
	return nil
}

func (s *stubCatalogRepo) SetActive(ctx context.Context, productID uuid.UUID, active bool) error {
	return nil
}

func (s *stubCatalogRepo) Delete(ctx context.Context, productID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, productID)
	return nil
}

func newCatalogTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestDeleteRemovesListing(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New(), Name: "Retired Coat"}
	repo := &stubCatalogRepo{product: product}
	svc := newCatalogTestService(t, repo)

	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != product.ID {
		t.Fatalf("expected product deleted, got %v", repo.deletedIDs)
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{}
	svc := newCatalogTestService(t, repo)

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if len(repo.deletedIDs) != 0 {
		t.Fatalf("nothing should be deleted, got %v", repo.deletedIDs)
	}
}

func TestDeleteWrapsRepoFailure(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	repo := &stubCatalogRepo{product: product, deleteErr: gorm.ErrInvalidDB}
	svc := newCatalogTestService(t, repo)

	err := svc.Delete(context.Background(), product.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
