package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
	"github.com/bhumi-studio/bhumi-backend/pkg/logger"
)

const cacheTTL = 24 * time.Hour

type cacheStore interface {
	SAdd(ctx context.Context, key string, members ...any) error
	SRem(ctx context.Context, key string, members ...any) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	WishlistKey(userID string) string
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes wishlist mutations and reads. Mutations are two-phase: the
// Redis id-set cache is updated first for fast membership checks, then the
// database write follows. If the write fails the cache change is rolled back
// so the cache never advertises state the database refused.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type service struct {
	repo     Repository
	cache    cacheStore
	products productLoader
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build a wishlist service.
type ServiceParams struct {
	Repo     Repository
	Cache    cacheStore
	Products productLoader
	Logger   *logger.Logger
}

// NewService constructs a wishlist service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     params.Repo,
		cache:    params.Cache,
		products: params.Products,
		logg:     params.Logger,
	}, nil
}

func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to save products")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	key := s.cache.WishlistKey(userID.String())
	cached := s.cache.SAdd(ctx, key, productID.String()) == nil

	if err := s.repo.Add(ctx, userID, productID); err != nil {
		if cached {
			s.rollbackCache(ctx, key, productID, s.cache.SRem)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist item")
	}

	if cached {
		if err := s.cache.Expire(ctx, key, cacheTTL); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "refreshing wishlist cache ttl failed")
		}
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to manage your wishlist")
	}

	key := s.cache.WishlistKey(userID.String())
	cached := s.cache.SRem(ctx, key, productID.String()) == nil

	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		if cached {
			s.rollbackCache(ctx, key, productID, s.cache.SAdd)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return nil
}

// List reads the saved products from the database. The cache only answers
// membership checks; the database stays the source of truth for listings.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your wishlist")
	}
	products, err := s.repo.ListProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	return products, nil
}

// Contains answers from the cache when possible, falling back to the database
// and rewarming the id set on a miss.
func (s *service) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your wishlist")
	}

	key := s.cache.WishlistKey(userID.String())
	members, err := s.cache.SMembers(ctx, key)
	if err == nil && len(members) > 0 {
		for _, member := range members {
			if member == productID.String() {
				return true, nil
			}
		}
		return false, nil
	}

	ids, err := s.repo.ListProductIDs(ctx, userID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist ids")
	}

	found := false
	warm := make([]any, 0, len(ids))
	for _, id := range ids {
		if id == productID {
			found = true
		}
		warm = append(warm, id.String())
	}
	if len(warm) > 0 {
		if err := s.cache.SAdd(ctx, key, warm...); err == nil {
			if err := s.cache.Expire(ctx, key, cacheTTL); err != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "refreshing wishlist cache ttl failed")
			}
		}
	}
	return found, nil
}

func (s *service) rollbackCache(ctx context.Context, key string, productID uuid.UUID, undo func(context.Context, string, ...any) error) {
	if err := undo(ctx, key, productID.String()); err != nil {
		// The cache now disagrees with the database until the TTL expires
		// or the next warm. Log loudly so the drift is visible.
		s.logg.Error(ctx, "wishlist cache rollback failed", err)
	}
}
